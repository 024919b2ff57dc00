package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindByCreatorID(ctx context.Context, creatorID uint) ([]dao.Event, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]dao.Event, error)
	FindPast(ctx context.Context, now time.Time) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	CountActiveBookings(ctx context.Context, eventID uint) (int, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Capacity:    e.Capacity,
		CreatorID:   e.CreatorID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Capacity:    e.Capacity,
		CreatorID:   e.CreatorID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) eventsDaoToDomain(events []dao.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i] = r.eventDaoToDomain(e)
	}

	return result
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.eventDaoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.eventDaoToDomain(event), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	events, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.eventsDaoToDomain(events), nil
}

func (r *EventRepository) FindByCreatorID(ctx context.Context, creatorID uint) ([]domain.Event, error) {
	events, err := r.dao.FindByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCreatorID -> %w", err)
	}

	return r.eventsDaoToDomain(events), nil
}

func (r *EventRepository) FindUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error) {
	events, err := r.dao.FindUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUpcoming -> %w", err)
	}

	return r.eventsDaoToDomain(events), nil
}

func (r *EventRepository) FindPast(ctx context.Context, now time.Time) ([]domain.Event, error) {
	events, err := r.dao.FindPast(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPast -> %w", err)
	}

	return r.eventsDaoToDomain(events), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.eventDaoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) CountActiveBookings(ctx context.Context, eventID uint) (int, error) {
	count, err := r.dao.CountActiveBookings(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActiveBookings -> %w", err)
	}

	return count, nil
}
