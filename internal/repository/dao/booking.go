package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/evsys/event-scheduling-api/internal/domain"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingNotActive = errors.New("only active bookings can be cancelled")
	ErrDuplicateBooking = errors.New("you already have an active booking for this event")
	ErrEventFull        = errors.New("this event is at full capacity")
	ErrEventEnded       = errors.New("this event has already ended")
	ErrEventOngoing     = errors.New("this event is currently ongoing")
)

type Booking struct {
	ID uint `gorm:"primaryKey"`

	AttendeeID uint     `gorm:"not null;index;uniqueIndex:idx_bookings_attendee_event"`
	Attendee   Customer `gorm:"foreignKey:AttendeeID;constraint:OnDelete:CASCADE"`

	EventID uint  `gorm:"not null;index;uniqueIndex:idx_bookings_attendee_event"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	BookingDate time.Time `gorm:"not null"`
	Status      string    `gorm:"not null;index;default:active"`
}

type BookingDAO struct {
	db *gorm.DB
}

func NewBookingDAO(db *gorm.DB) *BookingDAO {
	return &BookingDAO{
		db: db,
	}
}

// AdmitNew decides a fresh booking attempt and commits it as one atomic unit.
//
// The event row is locked with SELECT ... FOR UPDATE for the whole
// check-then-insert sequence, so concurrent admissions against the same event
// serialize on that lock and two attempts can never both win the last slot.
// A loser that finds the event full after acquiring the lock gets the same
// ErrEventFull as an event that was full all along.
//
// Check order is fixed: event exists, time window (ended, then ongoing),
// duplicate booking, fullness last.
func (d *BookingDAO) AdmitNew(ctx context.Context, attendeeID, eventID uint) (Booking, error) {
	var booking Booking

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}

		// One clock reading for the whole decision.
		now := time.Now()

		if err = checkAdmissible(tx, event, attendeeID, 0, now); err != nil {
			return err
		}

		booking = Booking{
			AttendeeID:  attendeeID,
			EventID:     eventID,
			BookingDate: now,
			Status:      string(domain.BookingStatusActive),
		}
		if result := tx.Create(&booking); result.Error != nil {
			// The unique (attendee, event) index is the fail-closed backstop.
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrDuplicateBooking
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	return booking, nil
}

// AdmitReactivation flips a cancelled booking back to active, re-running the
// full admission check under the event row lock. Reactivation adds to the
// active count exactly like a fresh booking, so it goes through the same gate.
func (d *BookingDAO) AdmitReactivation(ctx context.Context, bookingID uint) (Booking, error) {
	var booking Booking

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		located, err := findBooking(tx, bookingID)
		if err != nil {
			return err
		}

		event, err := lockEvent(tx, located.EventID)
		if err != nil {
			return err
		}

		// The read above only located the event row. The status decision
		// uses a fresh read taken under the lock, where concurrent status
		// changes for this event have already committed or are blocked.
		booking, err = findBooking(tx, bookingID)
		if err != nil {
			return err
		}

		if booking.Status == string(domain.BookingStatusActive) {
			return ErrDuplicateBooking
		}

		now := time.Now()

		if err = checkAdmissible(tx, event, booking.AttendeeID, booking.ID, now); err != nil {
			return err
		}

		booking.Status = string(domain.BookingStatusActive)

		return tx.Model(&booking).Update("status", booking.Status).Error
	})
	if err != nil {
		return Booking{}, err
	}

	return booking, nil
}

// Cancel transitions an active booking to cancelled. A cancelled booking or
// an event that has started is a domain error, never a silent no-op. The
// event row lock keeps the active count consistent with a serial history of
// admit/cancel operations per event.
func (d *BookingDAO) Cancel(ctx context.Context, bookingID uint) (Booking, error) {
	var booking Booking

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		located, err := findBooking(tx, bookingID)
		if err != nil {
			return err
		}

		event, err := lockEvent(tx, located.EventID)
		if err != nil {
			return err
		}

		// Re-read after the lock: a concurrent cancel commits while this
		// transaction waits on the event row, and the status guard must
		// see that, not the pre-lock snapshot.
		booking, err = findBooking(tx, bookingID)
		if err != nil {
			return err
		}

		if booking.Status != string(domain.BookingStatusActive) {
			return ErrBookingNotActive
		}

		switch timeWindow(event).Classify(time.Now()) {
		case domain.TimeStatusPast:
			return ErrEventEnded
		case domain.TimeStatusOngoing:
			return ErrEventOngoing
		}

		booking.Status = string(domain.BookingStatusCancelled)

		return tx.Model(&booking).Update("status", booking.Status).Error
	})
	if err != nil {
		return Booking{}, err
	}

	return booking, nil
}

func (d *BookingDAO) FindByID(ctx context.Context, id uint) (Booking, error) {
	var booking Booking

	result := d.db.WithContext(ctx).Preload("Event").First(&booking, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Booking{}, ErrBookingNotFound
		}

		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) FindByAttendeeID(ctx context.Context, attendeeID uint) ([]Booking, error) {
	var bookings []Booking

	result := d.db.WithContext(ctx).
		Where("attendee_id = ?", attendeeID).
		Order("booking_date DESC").
		Find(&bookings)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookings, nil
}

// FindByEventCreatorID lists bookings on events created by the given
// organizer, newest booking first.
func (d *BookingDAO) FindByEventCreatorID(ctx context.Context, creatorID uint) ([]Booking, error) {
	var bookings []Booking

	result := d.db.WithContext(ctx).
		Joins("JOIN events ON events.id = bookings.event_id").
		Where("events.creator_id = ?", creatorID).
		Order("bookings.booking_date DESC").
		Find(&bookings)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookings, nil
}

func (d *BookingDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func findBooking(tx *gorm.DB, bookingID uint) (Booking, error) {
	var booking Booking

	result := tx.First(&booking, bookingID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Booking{}, ErrBookingNotFound
		}

		return Booking{}, result.Error
	}

	return booking, nil
}

// lockEvent reads the event row under an exclusive row lock. Everything the
// admission decision depends on (capacity, time window, the active count)
// is read after this point, never from earlier in the request.
func lockEvent(tx *gorm.DB, eventID uint) (Event, error) {
	var event Event

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// checkAdmissible runs the admission checks in their documented order
// against state read under the event lock. excludeBookingID skips the
// booking being reactivated in the duplicate check; zero excludes nothing.
func checkAdmissible(tx *gorm.DB, event Event, attendeeID, excludeBookingID uint, now time.Time) error {
	switch timeWindow(event).Classify(now) {
	case domain.TimeStatusPast:
		return ErrEventEnded
	case domain.TimeStatusOngoing:
		return ErrEventOngoing
	}

	duplicates := tx.Model(&Booking{}).
		Where("event_id = ? AND attendee_id = ? AND status = ?",
			event.ID, attendeeID, string(domain.BookingStatusActive))
	if excludeBookingID != 0 {
		duplicates = duplicates.Where("id <> ?", excludeBookingID)
	}

	var duplicateCount int64
	if err := duplicates.Count(&duplicateCount).Error; err != nil {
		return err
	}
	if duplicateCount > 0 {
		return ErrDuplicateBooking
	}

	// Fullness last: the most contended check, against the count as it
	// stands under the lock.
	var activeCount int64
	err := tx.Model(&Booking{}).
		Where("event_id = ? AND status = ?", event.ID, string(domain.BookingStatusActive)).
		Count(&activeCount).Error
	if err != nil {
		return err
	}

	if timeWindow(event).IsFull(int(activeCount)) {
		return ErrEventFull
	}

	return nil
}

func timeWindow(event Event) domain.Event {
	return domain.Event{
		ID:        event.ID,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		Capacity:  event.Capacity,
	}
}
