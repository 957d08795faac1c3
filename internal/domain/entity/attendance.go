package entity

import (
	"fmt"
	"sort"

	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
)

// ResourceKey builds the mutual-exclusion key for one slot on one date.
// Two check-ins conflict exactly when their keys are equal.
func ResourceKey(slotID, date string) string {
	return fmt.Sprintf("slot/%s/%s", slotID, date)
}

// AttendanceSnapshot is the occupancy of one slot on one calendar date,
// rebuilt from persistence for every check-in attempt and discarded after
// the attempt resolves. It is never stored as a standing object.
//
// Construction goes through NewAttendanceSnapshot only, which rejects any
// state violating 0 <= occupants <= capacity.
type AttendanceSnapshot struct {
	slotID    string
	date      string
	capacity  int
	occupants map[string]struct{}
}

// NewAttendanceSnapshot creates a validated snapshot. The occupant slice is
// copied; duplicates collapse into the set.
func NewAttendanceSnapshot(slotID, date string, capacity int, occupantIDs []string) (AttendanceSnapshot, error) {
	if slotID == "" {
		return AttendanceSnapshot{}, errs.ErrSlotNotFound
	}
	if capacity <= 0 {
		return AttendanceSnapshot{}, errs.ErrInvalidCapacity
	}

	occupants := make(map[string]struct{}, len(occupantIDs))
	for _, id := range occupantIDs {
		if id == "" {
			return AttendanceSnapshot{}, errs.ErrInvalidUserID
		}
		occupants[id] = struct{}{}
	}

	if len(occupants) > capacity {
		return AttendanceSnapshot{}, errs.NewCapacityError(slotID, date, capacity, len(occupants))
	}

	return AttendanceSnapshot{
		slotID:    slotID,
		date:      date,
		capacity:  capacity,
		occupants: occupants,
	}, nil
}

// SlotID returns the slot this snapshot describes
func (s AttendanceSnapshot) SlotID() string {
	return s.slotID
}

// Date returns the calendar date this snapshot describes
func (s AttendanceSnapshot) Date() string {
	return s.date
}

// Capacity returns the maximum occupant count
func (s AttendanceSnapshot) Capacity() int {
	return s.capacity
}

// Count returns the current number of occupants
func (s AttendanceSnapshot) Count() int {
	return len(s.occupants)
}

// Has reports whether the user is already an occupant
func (s AttendanceSnapshot) Has(userID string) bool {
	_, ok := s.occupants[userID]
	return ok
}

// OccupantIDs returns a sorted copy of the occupant set
func (s AttendanceSnapshot) OccupantIDs() []string {
	ids := make([]string, 0, len(s.occupants))
	for id := range s.occupants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AdmitOutcome tags the result of an admission decision
type AdmitOutcome string

// Possible admission outcomes
const (
	AdmitAdmitted         AdmitOutcome = "admitted"
	AdmitAlreadyPresent   AdmitOutcome = "alreadyPresent"
	AdmitIneligible       AdmitOutcome = "ineligible"
	AdmitCapacityExceeded AdmitOutcome = "capacityExceeded"
)

// AdmitResult is the tagged outcome of one admission decision. Only the
// fields matching the outcome are populated.
type AdmitResult struct {
	Outcome AdmitOutcome

	// NewOccupants is the occupant set extended by the admitted user
	// (AdmitAdmitted only)
	NewOccupants []string

	// Reason explains an eligibility rejection (AdmitIneligible only)
	Reason string

	// Capacity and Current describe a full slot (AdmitCapacityExceeded only)
	Capacity int
	Current  int
}

// Admit decides whether the identity may join this slot occupancy. It is
// free of side effects: the snapshot is left untouched and calling Admit
// twice with the same inputs always yields the same result, which is what
// makes the lock-protected retry pattern in the coordinator safe.
//
// Rules are checked in order, first match wins:
//  1. already present
//  2. eligibility restriction
//  3. capacity
func (s AttendanceSnapshot) Admit(identity Identity, restriction Restriction) AdmitResult {
	if s.Has(identity.UserID) {
		return AdmitResult{Outcome: AdmitAlreadyPresent}
	}

	if ok, reason := restriction.Admits(identity); !ok {
		return AdmitResult{Outcome: AdmitIneligible, Reason: reason}
	}

	if len(s.occupants) >= s.capacity {
		return AdmitResult{
			Outcome:  AdmitCapacityExceeded,
			Capacity: s.capacity,
			Current:  len(s.occupants),
		}
	}

	newOccupants := append(s.OccupantIDs(), identity.UserID)
	return AdmitResult{Outcome: AdmitAdmitted, NewOccupants: newOccupants}
}
