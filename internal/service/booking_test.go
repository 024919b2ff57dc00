package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evsys/event-scheduling-api/internal/domain"
)

type fakeBookingRepo struct {
	admitNew             func(attendeeID, eventID uint) (domain.Booking, error)
	admitReactivation    func(bookingID uint) (domain.Booking, error)
	cancel               func(bookingID uint) (domain.Booking, error)
	findByID             func(id uint) (domain.Booking, error)
	findByAttendeeID     func(attendeeID uint) ([]domain.Booking, error)
	findByEventCreatorID func(creatorID uint) ([]domain.Booking, error)
	deleteByID           func(id uint) error
}

func (f *fakeBookingRepo) AdmitNew(_ context.Context, attendeeID, eventID uint) (domain.Booking, error) {
	return f.admitNew(attendeeID, eventID)
}

func (f *fakeBookingRepo) AdmitReactivation(_ context.Context, bookingID uint) (domain.Booking, error) {
	return f.admitReactivation(bookingID)
}

func (f *fakeBookingRepo) Cancel(_ context.Context, bookingID uint) (domain.Booking, error) {
	return f.cancel(bookingID)
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uint) (domain.Booking, error) {
	return f.findByID(id)
}

func (f *fakeBookingRepo) FindByAttendeeID(_ context.Context, attendeeID uint) ([]domain.Booking, error) {
	return f.findByAttendeeID(attendeeID)
}

func (f *fakeBookingRepo) FindByEventCreatorID(_ context.Context, creatorID uint) ([]domain.Booking, error) {
	return f.findByEventCreatorID(creatorID)
}

func (f *fakeBookingRepo) Delete(_ context.Context, id uint) error {
	return f.deleteByID(id)
}

type fakeEventFinder struct {
	findByID func(id uint) (domain.Event, error)
}

func (f *fakeEventFinder) FindByID(_ context.Context, id uint) (domain.Event, error) {
	return f.findByID(id)
}

// recordingAuditor captures every record so tests can assert on the exact
// audit trail an operation emits.
type recordingAuditor struct {
	records []domain.AuditRecord
}

func (r *recordingAuditor) Notify(_ context.Context, record domain.AuditRecord) {
	r.records = append(r.records, record)
}

func testCustomer() domain.Principal {
	return domain.Principal{UserID: 1, Role: domain.RoleCustomer, CustomerID: 10}
}

func testOrganizer() domain.Principal {
	return domain.Principal{UserID: 2, Role: domain.RoleOrganizer, OrganizerID: 20}
}

func futureEvent(id uint) domain.Event {
	return domain.Event{
		ID:        id,
		Title:     "Go Meetup",
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(26 * time.Hour),
		Capacity:  2,
		CreatorID: 20,
	}
}

func TestBookingService_CreateBooking_EventNotFoundBeforeRoleCheck(t *testing.T) {
	auditor := &recordingAuditor{}
	events := &fakeEventFinder{
		findByID: func(id uint) (domain.Event, error) {
			return domain.Event{}, ErrEventNotFound
		},
	}

	svc := NewBookingService(&fakeBookingRepo{}, events, auditor)

	// Even a non-customer gets the not-found error when the event is missing.
	_, err := svc.CreateBooking(context.Background(), testOrganizer(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Empty(t, auditor.records)
}

func TestBookingService_CreateBooking_RejectsOrganizer(t *testing.T) {
	auditor := &recordingAuditor{}
	events := &fakeEventFinder{
		findByID: func(id uint) (domain.Event, error) {
			return futureEvent(id), nil
		},
	}

	svc := NewBookingService(&fakeBookingRepo{}, events, auditor)

	_, err := svc.CreateBooking(context.Background(), testOrganizer(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotACustomer)
	assert.Empty(t, auditor.records)
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	auditor := &recordingAuditor{}
	events := &fakeEventFinder{
		findByID: func(id uint) (domain.Event, error) {
			return futureEvent(id), nil
		},
	}
	repo := &fakeBookingRepo{
		admitNew: func(attendeeID, eventID uint) (domain.Booking, error) {
			return domain.Booking{ID: 7, AttendeeID: attendeeID, EventID: eventID, Status: domain.BookingStatusActive}, nil
		},
	}

	svc := NewBookingService(repo, events, auditor)

	booking, err := svc.CreateBooking(context.Background(), testCustomer(), 1)

	require.NoError(t, err)
	assert.Equal(t, uint(10), booking.AttendeeID)
	assert.Equal(t, domain.BookingStatusActive, booking.Status)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, domain.AuditActionCreate, auditor.records[0].Action)
	assert.Equal(t, domain.AuditEntityBooking, auditor.records[0].EntityType)
	assert.Equal(t, uint(7), auditor.records[0].EntityID)
	assert.Equal(t, "1", auditor.records[0].Details["event_id"])
}

func TestBookingService_CreateBooking_FullEvent(t *testing.T) {
	auditor := &recordingAuditor{}
	events := &fakeEventFinder{
		findByID: func(id uint) (domain.Event, error) {
			return futureEvent(id), nil
		},
	}
	repo := &fakeBookingRepo{
		admitNew: func(attendeeID, eventID uint) (domain.Booking, error) {
			return domain.Booking{}, ErrEventFull
		},
	}

	svc := NewBookingService(repo, events, auditor)

	_, err := svc.CreateBooking(context.Background(), testCustomer(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Empty(t, auditor.records)
}

func TestBookingService_UpdateBookingStatus_InvalidStatus(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{}, &fakeEventFinder{}, &recordingAuditor{})

	_, err := svc.UpdateBookingStatus(context.Background(), testCustomer(), 1, domain.BookingStatus("pending"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBookingService_UpdateBookingStatus_SameStatusIsNoOp(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusActive}, nil
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	booking, err := svc.UpdateBookingStatus(context.Background(), testCustomer(), 5, domain.BookingStatusActive)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusActive, booking.Status)
	assert.Empty(t, auditor.records)
}

func TestBookingService_UpdateBookingStatus_Reactivation(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusCancelled}, nil
		},
		admitReactivation: func(bookingID uint) (domain.Booking, error) {
			return domain.Booking{ID: bookingID, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusActive}, nil
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	booking, err := svc.UpdateBookingStatus(context.Background(), testCustomer(), 5, domain.BookingStatusActive)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusActive, booking.Status)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, domain.AuditActionReactivate, auditor.records[0].Action)
	assert.Equal(t, "cancelled", auditor.records[0].Details["previous_status"])
	assert.Equal(t, "active", auditor.records[0].Details["new_status"])
}

func TestBookingService_UpdateBookingStatus_ReactivationIntoFullEvent(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusCancelled}, nil
		},
		admitReactivation: func(bookingID uint) (domain.Booking, error) {
			return domain.Booking{}, ErrEventFull
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	_, err := svc.UpdateBookingStatus(context.Background(), testCustomer(), 5, domain.BookingStatusActive)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Empty(t, auditor.records)
}

func TestBookingService_UpdateBookingStatus_CancellationAuditsAsUpdate(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusActive}, nil
		},
		cancel: func(bookingID uint) (domain.Booking, error) {
			return domain.Booking{ID: bookingID, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusCancelled}, nil
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	booking, err := svc.UpdateBookingStatus(context.Background(), testCustomer(), 5, domain.BookingStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, domain.AuditActionUpdate, auditor.records[0].Action)
	assert.Equal(t, "active", auditor.records[0].Details["previous_status"])
	assert.Equal(t, "cancelled", auditor.records[0].Details["new_status"])
}

func TestBookingService_UpdateBookingStatus_NotOwner(t *testing.T) {
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 999, EventID: 1, Status: domain.BookingStatusActive}, nil
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, &recordingAuditor{})

	_, err := svc.UpdateBookingStatus(context.Background(), testCustomer(), 5, domain.BookingStatusCancelled)

	assert.ErrorIs(t, err, ErrBookingAccessDenied)
}

func TestBookingService_CancelBooking_Success(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusActive}, nil
		},
		cancel: func(bookingID uint) (domain.Booking, error) {
			return domain.Booking{ID: bookingID, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusCancelled}, nil
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	booking, err := svc.CancelBooking(context.Background(), testCustomer(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, domain.AuditActionCancel, auditor.records[0].Action)
}

func TestBookingService_CancelBooking_NotActive(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusCancelled}, nil
		},
		cancel: func(bookingID uint) (domain.Booking, error) {
			return domain.Booking{}, ErrBookingNotActive
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	_, err := svc.CancelBooking(context.Background(), testCustomer(), 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotActive)
	assert.Empty(t, auditor.records)
}

func TestBookingService_GetBooking_Access(t *testing.T) {
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 1, Status: domain.BookingStatusActive}, nil
		},
	}
	events := &fakeEventFinder{
		findByID: func(id uint) (domain.Event, error) {
			return futureEvent(id), nil
		},
	}

	svc := NewBookingService(repo, events, &recordingAuditor{})

	// The attendee can read their booking.
	_, err := svc.GetBooking(context.Background(), testCustomer(), 5)
	require.NoError(t, err)

	// The event's organizer can read bookings on their events.
	_, err = svc.GetBooking(context.Background(), testOrganizer(), 5)
	require.NoError(t, err)

	// Another customer cannot.
	other := domain.Principal{UserID: 3, Role: domain.RoleCustomer, CustomerID: 11}
	_, err = svc.GetBooking(context.Background(), other, 5)
	assert.ErrorIs(t, err, ErrBookingAccessDenied)

	// Another organizer cannot.
	stranger := domain.Principal{UserID: 4, Role: domain.RoleOrganizer, OrganizerID: 21}
	_, err = svc.GetBooking(context.Background(), stranger, 5)
	assert.ErrorIs(t, err, ErrBookingAccessDenied)
}

func TestBookingService_ListBookings_ByRole(t *testing.T) {
	repo := &fakeBookingRepo{
		findByAttendeeID: func(attendeeID uint) ([]domain.Booking, error) {
			return []domain.Booking{{ID: 1, AttendeeID: attendeeID}}, nil
		},
		findByEventCreatorID: func(creatorID uint) ([]domain.Booking, error) {
			return []domain.Booking{{ID: 2}, {ID: 3}}, nil
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, &recordingAuditor{})

	own, err := svc.ListBookings(context.Background(), testCustomer())
	require.NoError(t, err)
	assert.Len(t, own, 1)

	onMyEvents, err := svc.ListBookings(context.Background(), testOrganizer())
	require.NoError(t, err)
	assert.Len(t, onMyEvents, 2)
}

func TestBookingService_DeleteBooking(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 4, Status: domain.BookingStatusCancelled}, nil
		},
		deleteByID: func(id uint) error {
			return nil
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	err := svc.DeleteBooking(context.Background(), testCustomer(), 5)

	require.NoError(t, err)
	require.Len(t, auditor.records, 1)
	assert.Equal(t, domain.AuditActionDelete, auditor.records[0].Action)
	assert.Equal(t, "4", auditor.records[0].Details["event_id"])
}

func TestBookingService_DeleteBooking_RepoError(t *testing.T) {
	auditor := &recordingAuditor{}
	repo := &fakeBookingRepo{
		findByID: func(id uint) (domain.Booking, error) {
			return domain.Booking{ID: id, AttendeeID: 10, EventID: 4}, nil
		},
		deleteByID: func(id uint) error {
			return errors.New("db error")
		},
	}

	svc := NewBookingService(repo, &fakeEventFinder{}, auditor)

	err := svc.DeleteBooking(context.Background(), testCustomer(), 5)

	require.Error(t, err)
	assert.Empty(t, auditor.records)
}
