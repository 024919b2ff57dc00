package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository"
)

var (
	ErrBookingNotFound     = repository.ErrBookingNotFound
	ErrBookingNotActive    = repository.ErrBookingNotActive
	ErrDuplicateBooking    = repository.ErrDuplicateBooking
	ErrEventFull           = repository.ErrEventFull
	ErrEventEnded          = repository.ErrEventEnded
	ErrEventOngoing        = repository.ErrEventOngoing
	ErrNotACustomer        = errors.New("only customers can create bookings")
	ErrBookingAccessDenied = errors.New("booking does not belong to this user")
	ErrInvalidStatus       = errors.New("status must be active or cancelled")
)

type BookingRepository interface {
	AdmitNew(ctx context.Context, attendeeID, eventID uint) (domain.Booking, error)
	AdmitReactivation(ctx context.Context, bookingID uint) (domain.Booking, error)
	Cancel(ctx context.Context, bookingID uint) (domain.Booking, error)
	FindByID(ctx context.Context, id uint) (domain.Booking, error)
	FindByAttendeeID(ctx context.Context, attendeeID uint) ([]domain.Booking, error)
	FindByEventCreatorID(ctx context.Context, creatorID uint) ([]domain.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type BookingEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

// BookingService is the admission boundary: every mutation of a booking's
// status goes through here, and every domain error is recovered here and
// surfaced as a caller-visible rejection.
type BookingService struct {
	repo      BookingRepository
	eventRepo BookingEventRepository
	auditor   AuditNotifier
}

func NewBookingService(repo BookingRepository, eventRepo BookingEventRepository, auditor AuditNotifier) *BookingService {
	return &BookingService{
		repo:      repo,
		eventRepo: eventRepo,
		auditor:   auditor,
	}
}

// CreateBooking admits a new booking for the principal against the event.
// Validation order is fixed: event exists, principal is a customer, then the
// time-window, duplicate and fullness checks run inside the repository's
// atomic check-then-commit unit against freshly read state.
func (s *BookingService) CreateBooking(ctx context.Context, principal domain.Principal, eventID uint) (domain.Booking, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Booking{}, ErrEventNotFound
		}

		return domain.Booking{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if !principal.IsCustomer() {
		return domain.Booking{}, ErrNotACustomer
	}

	booking, err := s.repo.AdmitNew(ctx, principal.CustomerID, eventID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.AdmitNew -> %w", err)
	}

	s.auditor.Notify(ctx, domain.AuditRecord{
		ActorID:    principal.UserID,
		Action:     domain.AuditActionCreate,
		EntityType: domain.AuditEntityBooking,
		EntityID:   booking.ID,
		Details:    map[string]string{"event_id": strconv.FormatUint(uint64(eventID), 10)},
	})

	return booking, nil
}

// UpdateBookingStatus handles the PATCH-style transition. A same-status
// update is a no-op that emits no audit record. cancelled -> active routes
// through the full admission check, exactly like creation.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, principal domain.Principal, bookingID uint, newStatus domain.BookingStatus) (domain.Booking, error) {
	if !newStatus.Valid() {
		return domain.Booking{}, ErrInvalidStatus
	}

	booking, err := s.findOwnBooking(ctx, principal, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}

	if booking.Status == newStatus {
		return booking, nil
	}

	previous := booking.Status

	switch newStatus {
	case domain.BookingStatusActive:
		booking, err = s.repo.AdmitReactivation(ctx, bookingID)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("s.repo.AdmitReactivation -> %w", err)
		}

		s.auditor.Notify(ctx, statusChangeRecord(principal, booking, domain.AuditActionReactivate, previous))

	case domain.BookingStatusCancelled:
		booking, err = s.repo.Cancel(ctx, bookingID)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("s.repo.Cancel -> %w", err)
		}

		s.auditor.Notify(ctx, statusChangeRecord(principal, booking, domain.AuditActionUpdate, previous))
	}

	return booking, nil
}

// CancelBooking is the dedicated cancel operation. It fails with a domain
// error when the booking is not active or the event has started.
func (s *BookingService) CancelBooking(ctx context.Context, principal domain.Principal, bookingID uint) (domain.Booking, error) {
	booking, err := s.findOwnBooking(ctx, principal, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}

	previous := booking.Status

	booking, err = s.repo.Cancel(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	s.auditor.Notify(ctx, statusChangeRecord(principal, booking, domain.AuditActionCancel, previous))

	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, principal domain.Principal, bookingID uint) error {
	booking, err := s.findOwnBooking(ctx, principal, bookingID)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.auditor.Notify(ctx, domain.AuditRecord{
		ActorID:    principal.UserID,
		Action:     domain.AuditActionDelete,
		EntityType: domain.AuditEntityBooking,
		EntityID:   booking.ID,
		Details:    map[string]string{"event_id": strconv.FormatUint(uint64(booking.EventID), 10)},
	})

	return nil
}

// GetBooking returns the booking to its attendee, or read-only to the
// organizer of the booked event.
func (s *BookingService) GetBooking(ctx context.Context, principal domain.Principal, bookingID uint) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if principal.IsCustomer() && booking.AttendeeID == principal.CustomerID {
		return booking, nil
	}

	if principal.IsOrganizer() {
		event, err := s.eventRepo.FindByID(ctx, booking.EventID)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
		}
		if event.CreatorID == principal.OrganizerID {
			return booking, nil
		}
	}

	return domain.Booking{}, ErrBookingAccessDenied
}

// ListBookings returns the principal's own bookings for customers, and the
// bookings against the principal's events for organizers.
func (s *BookingService) ListBookings(ctx context.Context, principal domain.Principal) ([]domain.Booking, error) {
	switch {
	case principal.IsCustomer():
		bookings, err := s.repo.FindByAttendeeID(ctx, principal.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByAttendeeID -> %w", err)
		}

		return bookings, nil

	case principal.IsOrganizer():
		bookings, err := s.repo.FindByEventCreatorID(ctx, principal.OrganizerID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByEventCreatorID -> %w", err)
		}

		return bookings, nil
	}

	return []domain.Booking{}, nil
}

// findOwnBooking loads the booking and enforces that the principal is its
// attendee. Only attendees may mutate bookings.
func (s *BookingService) findOwnBooking(ctx context.Context, principal domain.Principal, bookingID uint) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !principal.IsCustomer() || booking.AttendeeID != principal.CustomerID {
		return domain.Booking{}, ErrBookingAccessDenied
	}

	return booking, nil
}

func statusChangeRecord(principal domain.Principal, booking domain.Booking, action domain.AuditAction, previous domain.BookingStatus) domain.AuditRecord {
	return domain.AuditRecord{
		ActorID:    principal.UserID,
		Action:     action,
		EntityType: domain.AuditEntityBooking,
		EntityID:   booking.ID,
		Details: map[string]string{
			"previous_status": string(previous),
			"new_status":      string(booking.Status),
		},
	}
}
