// Package authz centralizes the ownership and role checks that gate every
// mutating registry operation. Handlers build a Principal from the session
// and ask for a Decision instead of comparing IDs inline.
package authz

// Principal is the authenticated identity a request acts as.
type Principal struct {
	UserID          string
	IsAdmin         bool
	IsFacilityOwner bool
}

// Decision is the tagged result of a policy check.
type Decision struct {
	allowed bool
	reason  string
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{allowed: true}
}

// Deny returns a rejecting decision with a user-facing reason.
func Deny(reason string) Decision {
	return Decision{reason: reason}
}

// Allowed reports whether the action is permitted.
func (d Decision) Allowed() bool {
	return d.allowed
}

// Reason returns the denial reason, or empty for an allowed decision.
func (d Decision) Reason() string {
	return d.reason
}

// CanCreateFacility permits facility-owner accounts and admins.
func CanCreateFacility(p Principal) Decision {
	if p.IsAdmin || p.IsFacilityOwner {
		return Allow()
	}
	return Deny("only facility owners can create facilities")
}

// CanManageFacility permits the owning user and admins. Courts and blocked
// slots inherit this through their parent facility.
func CanManageFacility(p Principal, ownerID string) Decision {
	if p.IsAdmin {
		return Allow()
	}
	if p.UserID != "" && p.UserID == ownerID {
		return Allow()
	}
	return Deny("you do not own this facility")
}

// CanModerateFacility permits admins to change a facility's approval status.
func CanModerateFacility(p Principal) Decision {
	if p.IsAdmin {
		return Allow()
	}
	return Deny("only admins can change facility status")
}

// CanCancelBooking permits the booking's user and admins.
func CanCancelBooking(p Principal, bookingUserID string) Decision {
	if p.IsAdmin {
		return Allow()
	}
	if p.UserID != "" && p.UserID == bookingUserID {
		return Allow()
	}
	return Deny("you can only cancel your own bookings")
}

// CanViewBooking permits the booking's user, the owner of the facility the
// booked court belongs to, and admins.
func CanViewBooking(p Principal, bookingUserID, facilityOwnerID string) Decision {
	if p.IsAdmin {
		return Allow()
	}
	if p.UserID != "" && (p.UserID == bookingUserID || p.UserID == facilityOwnerID) {
		return Allow()
	}
	return Deny("you are not allowed to view this booking")
}
