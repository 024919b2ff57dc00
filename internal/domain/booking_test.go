package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Valid(t *testing.T) {
	assert.True(t, BookingStatusActive.Valid())
	assert.True(t, BookingStatusCancelled.Valid())
	assert.False(t, BookingStatus("pending").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, Booking{Status: BookingStatusActive}.IsActive())
	assert.False(t, Booking{Status: BookingStatusCancelled}.IsActive())
}

func TestPrincipal_Roles(t *testing.T) {
	customer := Principal{UserID: 1, Role: RoleCustomer, CustomerID: 10}
	organizer := Principal{UserID: 2, Role: RoleOrganizer, OrganizerID: 20}

	assert.True(t, customer.IsCustomer())
	assert.False(t, customer.IsOrganizer())
	assert.True(t, organizer.IsOrganizer())
	assert.False(t, organizer.IsCustomer())
}
