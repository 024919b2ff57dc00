package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateProfileRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateProfileRequest{Name: "Alice"}).Validate())
	assert.NoError(t, (&UpdateProfileRequest{Email: "alice@example.com"}).Validate())
	assert.NoError(t, (&UpdateProfileRequest{Name: "Alice", Email: "alice@example.com"}).Validate())
	assert.Error(t, (&UpdateProfileRequest{}).Validate())
	assert.Error(t, (&UpdateProfileRequest{Email: "not-an-email"}).Validate())
}
