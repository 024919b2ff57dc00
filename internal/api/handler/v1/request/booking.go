package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateBookingRequest struct {
	EventID uint `json:"event_id"`
}

func (req *CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
	)
}

type UpdateBookingRequest struct {
	Status string `json:"status"`
}

func (req *UpdateBookingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("active", "cancelled")),
	)
}
