package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateEventRequest_Validate(t *testing.T) {
	valid := CreateEventRequest{
		Title:     "Go Meetup",
		StartTime: mustTime(t, "2026-09-01T10:00:00Z"),
		EndTime:   mustTime(t, "2026-09-01T12:00:00Z"),
		Capacity:  50,
	}
	assert.NoError(t, valid.Validate())

	backwards := valid
	backwards.EndTime = mustTime(t, "2026-09-01T09:00:00Z")
	assert.ErrorIs(t, backwards.Validate(), errEndBeforeStart)

	noCapacity := valid
	noCapacity.Capacity = 0
	assert.Error(t, noCapacity.Validate())
}
