package domain

import "time"

// TimeStatus classifies an event relative to a clock reading.
type TimeStatus string

const (
	TimeStatusFuture  TimeStatus = "future"
	TimeStatusOngoing TimeStatus = "ongoing"
	TimeStatusPast    TimeStatus = "past"
)

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	CreatorID   uint      `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Classify returns the event's time-window status at the given instant.
// Callers must use a single now snapshot per logical decision so one
// operation never straddles a boundary.
func (e Event) Classify(now time.Time) TimeStatus {
	if now.After(e.EndTime) {
		return TimeStatusPast
	}
	if !now.Before(e.StartTime) {
		return TimeStatusOngoing
	}

	return TimeStatusFuture
}

func (e Event) IsPast(now time.Time) bool {
	return e.Classify(now) == TimeStatusPast
}

func (e Event) IsOngoing(now time.Time) bool {
	return e.Classify(now) == TimeStatusOngoing
}

// AvailableSlots derives the free capacity from the current number of
// active bookings. The count is never cached: a stale value here directly
// causes overselling, so it must come from the store at decision time.
func (e Event) AvailableSlots(activeBookings int) int {
	if slots := e.Capacity - activeBookings; slots > 0 {
		return slots
	}

	return 0
}

func (e Event) IsFull(activeBookings int) bool {
	return e.AvailableSlots(activeBookings) <= 0
}
