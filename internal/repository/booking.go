package repository

import (
	"context"
	"fmt"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository/dao"
)

var (
	ErrBookingNotFound  = dao.ErrBookingNotFound
	ErrBookingNotActive = dao.ErrBookingNotActive
	ErrDuplicateBooking = dao.ErrDuplicateBooking
	ErrEventFull        = dao.ErrEventFull
	ErrEventEnded       = dao.ErrEventEnded
	ErrEventOngoing     = dao.ErrEventOngoing
)

type BookingDAO interface {
	AdmitNew(ctx context.Context, attendeeID, eventID uint) (dao.Booking, error)
	AdmitReactivation(ctx context.Context, bookingID uint) (dao.Booking, error)
	Cancel(ctx context.Context, bookingID uint) (dao.Booking, error)
	FindByID(ctx context.Context, id uint) (dao.Booking, error)
	FindByAttendeeID(ctx context.Context, attendeeID uint) ([]dao.Booking, error)
	FindByEventCreatorID(ctx context.Context, creatorID uint) ([]dao.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type BookingRepository struct {
	dao BookingDAO
}

func NewBookingRepository(dao BookingDAO) *BookingRepository {
	return &BookingRepository{
		dao: dao,
	}
}

func (r *BookingRepository) bookingDaoToDomain(b dao.Booking) domain.Booking {
	return domain.Booking{
		ID:          b.ID,
		AttendeeID:  b.AttendeeID,
		EventID:     b.EventID,
		BookingDate: b.BookingDate,
		Status:      domain.BookingStatus(b.Status),
	}
}

func (r *BookingRepository) bookingsDaoToDomain(bookings []dao.Booking) []domain.Booking {
	result := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		result[i] = r.bookingDaoToDomain(b)
	}

	return result
}

func (r *BookingRepository) AdmitNew(ctx context.Context, attendeeID, eventID uint) (domain.Booking, error) {
	booking, err := r.dao.AdmitNew(ctx, attendeeID, eventID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.AdmitNew -> %w", err)
	}

	return r.bookingDaoToDomain(booking), nil
}

func (r *BookingRepository) AdmitReactivation(ctx context.Context, bookingID uint) (domain.Booking, error) {
	booking, err := r.dao.AdmitReactivation(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.AdmitReactivation -> %w", err)
	}

	return r.bookingDaoToDomain(booking), nil
}

func (r *BookingRepository) Cancel(ctx context.Context, bookingID uint) (domain.Booking, error) {
	booking, err := r.dao.Cancel(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return r.bookingDaoToDomain(booking), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (domain.Booking, error) {
	booking, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.bookingDaoToDomain(booking), nil
}

func (r *BookingRepository) FindByAttendeeID(ctx context.Context, attendeeID uint) ([]domain.Booking, error) {
	bookings, err := r.dao.FindByAttendeeID(ctx, attendeeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAttendeeID -> %w", err)
	}

	return r.bookingsDaoToDomain(bookings), nil
}

func (r *BookingRepository) FindByEventCreatorID(ctx context.Context, creatorID uint) ([]domain.Booking, error) {
	bookings, err := r.dao.FindByEventCreatorID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventCreatorID -> %w", err)
	}

	return r.bookingsDaoToDomain(bookings), nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
