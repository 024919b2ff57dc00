package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository"
)

var (
	ErrEventNotFound   = repository.ErrEventNotFound
	ErrNotAnOrganizer  = errors.New("only organizers can manage events")
	ErrNotEventCreator = errors.New("only the event creator can modify this event")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByCreatorID(ctx context.Context, creatorID uint) ([]domain.Event, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error)
	FindPast(ctx context.Context, now time.Time) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	CountActiveBookings(ctx context.Context, eventID uint) (int, error)
}

type EventService struct {
	repo    EventRepository
	auditor AuditNotifier
}

func NewEventService(repo EventRepository, auditor AuditNotifier) *EventService {
	return &EventService{
		repo:    repo,
		auditor: auditor,
	}
}

// validateEvent enforces the event invariants at every create and update.
func validateEvent(event domain.Event) error {
	if !event.EndTime.After(event.StartTime) {
		return ErrEndBeforeStart
	}
	if event.Capacity < 1 {
		return ErrInvalidCapacity
	}

	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error) {
	if !principal.IsOrganizer() {
		return domain.Event{}, ErrNotAnOrganizer
	}

	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	event.CreatorID = principal.OrganizerID

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.auditor.Notify(ctx, domain.AuditRecord{
		ActorID:    principal.UserID,
		Action:     domain.AuditActionCreate,
		EntityType: domain.AuditEntityEvent,
		EntityID:   created.ID,
		Details:    map[string]string{"title": created.Title},
	})

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// GetEventAvailability returns a best-effort snapshot of the event's free
// capacity for display. The write path never trusts this value; it re-counts
// under the event row lock.
func (s *EventService) GetEventAvailability(ctx context.Context, event domain.Event) (int, bool, error) {
	activeCount, err := s.repo.CountActiveBookings(ctx, event.ID)
	if err != nil {
		return 0, false, fmt.Errorf("s.repo.CountActiveBookings -> %w", err)
	}

	return event.AvailableSlots(activeCount), event.IsFull(activeCount), nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListMyEvents(ctx context.Context, principal domain.Principal) ([]domain.Event, error) {
	if !principal.IsOrganizer() {
		return nil, ErrNotAnOrganizer
	}

	events, err := s.repo.FindByCreatorID(ctx, principal.OrganizerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCreatorID -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListUpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindUpcoming -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListPastEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindPast(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPast -> %w", err)
	}

	return events, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error) {
	existing, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !principal.IsOrganizer() || existing.CreatorID != principal.OrganizerID {
		return domain.Event{}, ErrNotEventCreator
	}

	if err = validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.auditor.Notify(ctx, domain.AuditRecord{
		ActorID:    principal.UserID,
		Action:     domain.AuditActionUpdate,
		EntityType: domain.AuditEntityEvent,
		EntityID:   updated.ID,
		Details:    map[string]string{"title": updated.Title},
	})

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, principal domain.Principal, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !principal.IsOrganizer() || existing.CreatorID != principal.OrganizerID {
		return ErrNotEventCreator
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.auditor.Notify(ctx, domain.AuditRecord{
		ActorID:    principal.UserID,
		Action:     domain.AuditActionDelete,
		EntityType: domain.AuditEntityEvent,
		EntityID:   id,
		Details:    map[string]string{"capacity": strconv.Itoa(existing.Capacity)},
	})

	return nil
}
