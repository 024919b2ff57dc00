package response

import (
	"time"

	"github.com/evsys/event-scheduling-api/internal/domain"
)

// EventResponse carries the event with its derived capacity fields.
// available_slots and is_full are best-effort snapshots.
type EventResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Capacity       int       `json:"capacity"`
	AvailableSlots int       `json:"available_slots"`
	IsFull         bool      `json:"is_full"`
	CreatorID      uint      `json:"creator_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewEventResponse(event domain.Event, availableSlots int, isFull bool) EventResponse {
	return EventResponse{
		ID:             event.ID,
		Title:          event.Title,
		Description:    event.Description,
		StartTime:      event.StartTime,
		EndTime:        event.EndTime,
		Capacity:       event.Capacity,
		AvailableSlots: availableSlots,
		IsFull:         isFull,
		CreatorID:      event.CreatorID,
		CreatedAt:      event.CreatedAt,
		UpdatedAt:      event.UpdatedAt,
	}
}
