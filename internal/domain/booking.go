package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	return s == BookingStatusActive || s == BookingStatusCancelled
}

type Booking struct {
	ID          uint          `json:"id"`
	AttendeeID  uint          `json:"attendee_id"`
	EventID     uint          `json:"event_id"`
	BookingDate time.Time     `json:"booking_date"`
	Status      BookingStatus `json:"status"`
}

func (b Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}
