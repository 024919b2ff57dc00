package response

import "github.com/evsys/event-scheduling-api/internal/domain"

type CancelBookingResponse struct {
	Message string               `json:"message"`
	Status  domain.BookingStatus `json:"status"`
}
