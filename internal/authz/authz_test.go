package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	admin     = Principal{UserID: "admin-1", IsAdmin: true}
	owner     = Principal{UserID: "owner-1", IsFacilityOwner: true}
	plainUser = Principal{UserID: "user-1"}
)

func TestCanCreateFacility(t *testing.T) {
	assert.True(t, CanCreateFacility(admin).Allowed())
	assert.True(t, CanCreateFacility(owner).Allowed())

	d := CanCreateFacility(plainUser)
	assert.False(t, d.Allowed())
	assert.NotEmpty(t, d.Reason())
}

func TestCanManageFacility(t *testing.T) {
	assert.True(t, CanManageFacility(owner, "owner-1").Allowed())
	assert.True(t, CanManageFacility(admin, "owner-1").Allowed())
	assert.False(t, CanManageFacility(plainUser, "owner-1").Allowed())
	assert.False(t, CanManageFacility(Principal{}, "").Allowed(), "empty principal must not match empty owner")
}

func TestCanModerateFacility(t *testing.T) {
	assert.True(t, CanModerateFacility(admin).Allowed())
	assert.False(t, CanModerateFacility(owner).Allowed())
}

func TestCanCancelBooking(t *testing.T) {
	assert.True(t, CanCancelBooking(plainUser, "user-1").Allowed())
	assert.True(t, CanCancelBooking(admin, "user-1").Allowed())

	d := CanCancelBooking(owner, "user-1")
	assert.False(t, d.Allowed())
	assert.Equal(t, "you can only cancel your own bookings", d.Reason())
}

func TestCanViewBooking(t *testing.T) {
	assert.True(t, CanViewBooking(plainUser, "user-1", "owner-1").Allowed())
	assert.True(t, CanViewBooking(owner, "user-1", "owner-1").Allowed(), "facility owner sees bookings on their courts")
	assert.True(t, CanViewBooking(admin, "user-1", "owner-1").Allowed())
	assert.False(t, CanViewBooking(Principal{UserID: "user-2"}, "user-1", "owner-1").Allowed())
}
