package entity

// CheckInOutcome tags the structured result returned to the check-in caller
type CheckInOutcome string

// Possible check-in outcomes
const (
	CheckInAdmitted           CheckInOutcome = "admitted"
	CheckInAlreadyPresent     CheckInOutcome = "alreadyPresent"
	CheckInIneligible         CheckInOutcome = "ineligible"
	CheckInCapacityExceeded   CheckInOutcome = "capacityExceeded"
	CheckInInvalidToken       CheckInOutcome = "invalidToken"
	CheckInNoSlotAvailable    CheckInOutcome = "noSlotAvailable"
	CheckInAllSlotsEnded      CheckInOutcome = "allSlotsEnded"
	CheckInLockTimeout        CheckInOutcome = "lockTimeout"
	CheckInPersistenceFailure CheckInOutcome = "persistenceFailure"
)

// CheckInResult is the structured response of one check-in attempt.
// Business-rule rejections travel here as values, never as errors.
type CheckInResult struct {
	Outcome CheckInOutcome

	// Slot and Date are set whenever a slot was resolved, including on
	// rejection outcomes
	Slot Slot
	Date string

	// NewCount is the occupant count after a successful admission
	NewCount int

	// Reason explains an ineligible rejection
	Reason string

	// Capacity and Current describe a full slot
	Capacity int
	Current  int
}

// Slot is the read-only slot summary embedded in results and API payloads
type Slot struct {
	ID          string
	Start       string // HH:MM
	End         string // HH:MM
	Restriction Restriction
	Capacity    int
}

// SlotSummary projects a TimeSlot into its result representation
func SlotSummary(s TimeSlot) Slot {
	return Slot{
		ID:          s.ID(),
		Start:       s.Start().Format("15:04"),
		End:         s.End().Format("15:04"),
		Restriction: s.Restriction(),
		Capacity:    s.Capacity(),
	}
}
