package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errEmptyProfileUpdate = errors.New("at least one of name or email must be provided")

// UpdateProfileRequest is a partial update; empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (req *UpdateProfileRequest) Validate() error {
	if req.Name == "" && req.Email == "" {
		return errEmptyProfileUpdate
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Name, validation.Length(1, 100)),
	)
}
