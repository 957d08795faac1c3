package checkin

import (
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
)

// ResolveReason explains why the resolver picked the slot it picked
type ResolveReason string

// Possible resolution reasons
const (
	// ReasonCurrentSlot means the arrival time falls inside the slot window
	ReasonCurrentSlot ResolveReason = "currentSlot"
	// ReasonEarlyGrace means the arrival is within the grace window before
	// the slot's start
	ReasonEarlyGrace ResolveReason = "earlyGrace"
	// ReasonBeforeFirst means the arrival precedes the whole schedule and
	// defaults to the first slot of the day
	ReasonBeforeFirst ResolveReason = "beforeFirst"
)

// ResolveSlot picks the slot a swimmer arriving at the given time should be
// admitted to. Slots must be supplied sorted ascending by start time; the
// function never mutates its input, so callers may pass shared slices.
//
// Checks run in this order for each slot, which gives the next slot's grace
// window priority over "still inside the current slot" once the arrival is
// within graceMinutes of the transition:
//  1. arrival inside [start, end) -> that slot, currentSlot
//  2. arrival within graceMinutes before a future slot's start -> that
//     slot, earlyGrace
//
// Arrivals earlier than the first slot minus the grace window are routed to
// the first slot of the day (a deliberate policy: the earliest swimmers wait
// for the first slot rather than being turned away). Arrivals at or past the
// last slot's end fail with ErrAllSlotsEnded.
func ResolveSlot(sortedSlots []entity.TimeSlot, now time.Time, graceMinutes int) (entity.TimeSlot, ResolveReason, error) {
	if len(sortedSlots) == 0 {
		return entity.TimeSlot{}, "", errs.ErrNoSlotsConfigured
	}

	grace := time.Duration(graceMinutes) * time.Minute

	first := sortedSlots[0]
	if now.Before(first.Start()) {
		if first.Start().Sub(now) <= grace {
			return first, ReasonEarlyGrace, nil
		}
		return first, ReasonBeforeFirst, nil
	}

	for i, slot := range sortedSlots {
		// Grace check against the next slot runs first so a swimmer close
		// to the transition is routed forward even while the current slot
		// is technically still open.
		if i+1 < len(sortedSlots) {
			next := sortedSlots[i+1]
			if now.Before(next.Start()) && next.Start().Sub(now) <= grace {
				return next, ReasonEarlyGrace, nil
			}
		}

		if slot.Contains(now) {
			return slot, ReasonCurrentSlot, nil
		}
	}

	last := sortedSlots[len(sortedSlots)-1]
	if !now.Before(last.End()) {
		return entity.TimeSlot{}, "", errs.ErrAllSlotsEnded
	}

	// Between two slots and outside any grace window: the next upcoming
	// slot is the one to wait for.
	for _, slot := range sortedSlots {
		if now.Before(slot.Start()) {
			return slot, ReasonBeforeFirst, nil
		}
	}

	return entity.TimeSlot{}, "", errs.ErrAllSlotsEnded
}
