package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
)

// Restriction limits who may be admitted to a slot
type Restriction string

// Supported eligibility restrictions
const (
	RestrictionOpen           Restriction = "open"
	RestrictionMaleOnly       Restriction = "maleOnly"
	RestrictionFemaleOnly     Restriction = "femaleOnly"
	RestrictionFacultyAndGrad Restriction = "facultyAndGrad"
)

// IsValid reports whether the restriction is one of the known tags
func (r Restriction) IsValid() bool {
	switch r {
	case RestrictionOpen, RestrictionMaleOnly, RestrictionFemaleOnly, RestrictionFacultyAndGrad:
		return true
	default:
		return false
	}
}

// Admits decides whether the identity passes this restriction.
// On rejection the second return value names the reason.
func (r Restriction) Admits(identity Identity) (bool, string) {
	switch r {
	case RestrictionOpen:
		return true, ""
	case RestrictionFacultyAndGrad:
		if identity.Role == RoleFaculty || identity.Role == RolePostgraduate {
			return true, ""
		}
		return false, "slot is reserved for faculty and postgraduate members"
	case RestrictionMaleOnly:
		if identity.Gender == GenderMale {
			return true, ""
		}
		return false, "slot is reserved for male swimmers"
	case RestrictionFemaleOnly:
		if identity.Gender == GenderFemale {
			return true, ""
		}
		return false, "slot is reserved for female swimmers"
	default:
		return false, "unknown restriction"
	}
}

// TimeSlot is an immutable slot definition for one day. Instances are only
// created through NewTimeSlot, so a malformed slot is never observable.
type TimeSlot struct {
	id          string
	start       time.Time
	end         time.Time
	restriction Restriction
	capacity    int
}

// NewTimeSlot creates a validated time slot. The window is half-open:
// [start, end).
func NewTimeSlot(id string, start, end time.Time, restriction Restriction, capacity int) (TimeSlot, error) {
	if id == "" {
		return TimeSlot{}, errs.ErrSlotNotFound
	}
	if !end.After(start) {
		return TimeSlot{}, errs.ErrInvalidSlotWindow
	}
	if capacity <= 0 {
		return TimeSlot{}, errs.ErrInvalidCapacity
	}
	if !restriction.IsValid() {
		return TimeSlot{}, errs.ErrInvalidRestriction
	}

	return TimeSlot{
		id:          id,
		start:       start,
		end:         end,
		restriction: restriction,
		capacity:    capacity,
	}, nil
}

// ID returns the slot identifier
func (s TimeSlot) ID() string {
	return s.id
}

// Start returns the start of the slot window
func (s TimeSlot) Start() time.Time {
	return s.start
}

// End returns the end of the slot window (exclusive)
func (s TimeSlot) End() time.Time {
	return s.end
}

// Restriction returns the slot's eligibility restriction
func (s TimeSlot) Restriction() Restriction {
	return s.restriction
}

// Capacity returns the maximum simultaneous occupants for one date
func (s TimeSlot) Capacity() int {
	return s.capacity
}

// Contains reports whether t falls within [start, end).
// Equality with start counts as inside the window.
func (s TimeSlot) Contains(t time.Time) bool {
	return !t.Before(s.start) && t.Before(s.end)
}

// IsZero reports whether the slot is the zero value
func (s TimeSlot) IsZero() bool {
	return s.id == ""
}
