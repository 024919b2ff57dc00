package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureWindow() (time.Time, time.Time) {
	start := time.Now().Add(24 * time.Hour)

	return start, start.Add(2 * time.Hour)
}

func TestBookingDAO_AdmitNew_ConcurrentLastSlots(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 2, start, end)

	const attempts = 3

	attendees := make([]uint, 0, attempts)
	for i := 0; i < attempts; i++ {
		customer := seedCustomer(t, fmt.Sprintf("customer%d@example.com", i))
		attendees = append(attendees, customer.ID)
	}

	d := NewBookingDAO(testDB)

	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.AdmitNew(context.Background(), attendees[i], event.ID)
		}(i)
	}
	wg.Wait()

	var won, full int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrEventFull):
			full++
		}
	}

	// Capacity 2, three racing attempts: exactly two admitted, one rejected.
	assert.Equal(t, 2, won)
	assert.Equal(t, 1, full)

	var activeCount int64
	err := testDB.Model(&Booking{}).
		Where("event_id = ? AND status = ?", event.ID, "active").
		Count(&activeCount).Error
	require.NoError(t, err)
	assert.EqualValues(t, 2, activeCount)
}

func TestBookingDAO_AdmitNew_DuplicateActiveBooking(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	customer := seedCustomer(t, "customer@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 10, start, end)

	d := NewBookingDAO(testDB)

	_, err := d.AdmitNew(context.Background(), customer.ID, event.ID)
	require.NoError(t, err)

	_, err = d.AdmitNew(context.Background(), customer.ID, event.ID)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestBookingDAO_AdmitNew_TimeWindow(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	customer := seedCustomer(t, "customer@example.com")

	past := seedEvent(t, organizer.ID, 10,
		time.Now().Add(-4*time.Hour), time.Now().Add(-2*time.Hour))
	ongoing := seedEvent(t, organizer.ID, 10,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	d := NewBookingDAO(testDB)

	_, err := d.AdmitNew(context.Background(), customer.ID, past.ID)
	assert.ErrorIs(t, err, ErrEventEnded)

	_, err = d.AdmitNew(context.Background(), customer.ID, ongoing.ID)
	assert.ErrorIs(t, err, ErrEventOngoing)
}

func TestBookingDAO_AdmitNew_EventNotFound(t *testing.T) {
	truncateTables(t)

	customer := seedCustomer(t, "customer@example.com")

	d := NewBookingDAO(testDB)

	_, err := d.AdmitNew(context.Background(), customer.ID, 9999)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestBookingDAO_Cancel_FreesSlot(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	alice := seedCustomer(t, "alice@example.com")
	bob := seedCustomer(t, "bob@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 1, start, end)

	d := NewBookingDAO(testDB)

	booking, err := d.AdmitNew(context.Background(), alice.ID, event.ID)
	require.NoError(t, err)

	_, err = d.AdmitNew(context.Background(), bob.ID, event.ID)
	require.ErrorIs(t, err, ErrEventFull)

	cancelled, err := d.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	// The freed slot is immediately available to the next admission.
	_, err = d.AdmitNew(context.Background(), bob.ID, event.ID)
	assert.NoError(t, err)
}

func TestBookingDAO_Cancel_ConcurrentDoubleCancel(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	customer := seedCustomer(t, "customer@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 5, start, end)

	d := NewBookingDAO(testDB)

	booking, err := d.AdmitNew(context.Background(), customer.ID, event.ID)
	require.NoError(t, err)

	const attempts = 2

	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.Cancel(context.Background(), booking.ID)
		}(i)
	}
	wg.Wait()

	var won, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrBookingNotActive):
			rejected++
		}
	}

	// Exactly one cancel wins; the loser sees the committed status, not
	// its pre-lock snapshot.
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, rejected)

	var cancelledCount int64
	err = testDB.Model(&Booking{}).
		Where("id = ? AND status = ?", booking.ID, "cancelled").
		Count(&cancelledCount).Error
	require.NoError(t, err)
	assert.EqualValues(t, 1, cancelledCount)
}

func TestBookingDAO_Cancel_OnlyActive(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	customer := seedCustomer(t, "customer@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 5, start, end)

	d := NewBookingDAO(testDB)

	booking, err := d.AdmitNew(context.Background(), customer.ID, event.ID)
	require.NoError(t, err)

	_, err = d.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = d.Cancel(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestBookingDAO_Cancel_StartedEvent(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	customer := seedCustomer(t, "customer@example.com")

	// Book while the event is in the future, then move the start time back.
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 5, start, end)

	d := NewBookingDAO(testDB)

	booking, err := d.AdmitNew(context.Background(), customer.ID, event.ID)
	require.NoError(t, err)

	err = testDB.Model(&Event{}).Where("id = ?", event.ID).
		Updates(map[string]any{
			"start_time": time.Now().Add(-time.Hour),
			"end_time":   time.Now().Add(time.Hour),
		}).Error
	require.NoError(t, err)

	_, err = d.Cancel(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrEventOngoing)

	err = testDB.Model(&Event{}).Where("id = ?", event.ID).
		Updates(map[string]any{
			"start_time": time.Now().Add(-3 * time.Hour),
			"end_time":   time.Now().Add(-time.Hour),
		}).Error
	require.NoError(t, err)

	_, err = d.Cancel(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrEventEnded)
}

func TestBookingDAO_AdmitReactivation(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	alice := seedCustomer(t, "alice@example.com")
	bob := seedCustomer(t, "bob@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 1, start, end)

	d := NewBookingDAO(testDB)

	booking, err := d.AdmitNew(context.Background(), alice.ID, event.ID)
	require.NoError(t, err)

	_, err = d.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	reactivated, err := d.AdmitReactivation(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", reactivated.Status)

	// Cancel again, give the slot to someone else, then try to reactivate.
	_, err = d.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = d.AdmitNew(context.Background(), bob.ID, event.ID)
	require.NoError(t, err)

	_, err = d.AdmitReactivation(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestBookingDAO_AdmitReactivation_AlreadyActive(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	customer := seedCustomer(t, "customer@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 2, start, end)

	d := NewBookingDAO(testDB)

	booking, err := d.AdmitNew(context.Background(), customer.ID, event.ID)
	require.NoError(t, err)

	// A booking that is already active cannot be admitted again; two
	// racing reactivations resolve the same way, one winner.
	_, err = d.AdmitReactivation(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestBookingDAO_AdmitReactivation_NotFound(t *testing.T) {
	truncateTables(t)

	d := NewBookingDAO(testDB)

	_, err := d.AdmitReactivation(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingDAO_FindByEventCreatorID(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	other := seedOrganizer(t, "other@example.com")
	customer := seedCustomer(t, "customer@example.com")

	start, end := futureWindow()
	mine := seedEvent(t, organizer.ID, 5, start, end)
	theirs := seedEvent(t, other.ID, 5, start, end)

	d := NewBookingDAO(testDB)

	_, err := d.AdmitNew(context.Background(), customer.ID, mine.ID)
	require.NoError(t, err)
	_, err = d.AdmitNew(context.Background(), customer.ID, theirs.ID)
	require.NoError(t, err)

	bookings, err := d.FindByEventCreatorID(context.Background(), organizer.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, mine.ID, bookings[0].EventID)
}

func TestBookingDAO_Delete(t *testing.T) {
	truncateTables(t)

	organizer := seedOrganizer(t, "organizer@example.com")
	customer := seedCustomer(t, "customer@example.com")
	start, end := futureWindow()
	event := seedEvent(t, organizer.ID, 5, start, end)

	d := NewBookingDAO(testDB)

	booking, err := d.AdmitNew(context.Background(), customer.ID, event.ID)
	require.NoError(t, err)

	require.NoError(t, d.Delete(context.Background(), booking.ID))

	err = d.Delete(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = d.FindByID(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
