package checkin

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func slotAt(t *testing.T, id string, startHour, startMin, endHour, endMin int) entity.TimeSlot {
	t.Helper()
	slot, err := entity.NewTimeSlot(
		id,
		at(t, startHour, startMin),
		at(t, endHour, endMin),
		entity.RestrictionOpen,
		10,
	)
	require.NoError(t, err)
	return slot
}

// schedule A [09:00,10:30), B [11:00,12:30), C [14:00,15:30)
func testSchedule(t *testing.T) []entity.TimeSlot {
	t.Helper()
	return []entity.TimeSlot{
		slotAt(t, "A", 9, 0, 10, 30),
		slotAt(t, "B", 11, 0, 12, 30),
		slotAt(t, "C", 14, 0, 15, 30),
	}
}

func TestResolveSlot(t *testing.T) {
	const grace = 10

	tests := []struct {
		name       string
		now        time.Time
		wantSlot   string
		wantReason ResolveReason
		wantErr    error
	}{
		{"Inside first slot", at(t, 10, 20), "A", ReasonCurrentSlot, nil},
		{"Within grace of next slot", at(t, 10, 50), "B", ReasonEarlyGrace, nil},
		{"Exactly at slot start counts as inside", at(t, 11, 0), "B", ReasonCurrentSlot, nil},
		{"Gap between slots, outside grace", at(t, 12, 45), "C", ReasonBeforeFirst, nil},
		{"Gap between slots, within grace of next", at(t, 13, 55), "C", ReasonEarlyGrace, nil},
		{"Exactly at last slot end", at(t, 15, 30), "", "", errs.ErrAllSlotsEnded},
		{"Past last slot end", at(t, 16, 0), "", "", errs.ErrAllSlotsEnded},
		{"Within grace before first slot", at(t, 8, 55), "A", ReasonEarlyGrace, nil},
		{"Well before first slot", at(t, 7, 0), "A", ReasonBeforeFirst, nil},
		{"Last second of last slot", at(t, 15, 29), "C", ReasonCurrentSlot, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, reason, err := ResolveSlot(testSchedule(t), tt.now, grace)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, slot.IsZero())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSlot, slot.ID())
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestResolveSlotGracePrecedence(t *testing.T) {
	// Back-to-back slots: at 10:25 the swimmer is still inside A [09:00,10:30)
	// but within 10 minutes of B's start. The grace check runs first, so the
	// swimmer is routed forward to B.
	slots := []entity.TimeSlot{
		slotAt(t, "A", 9, 0, 10, 30),
		slotAt(t, "B", 10, 30, 12, 0),
	}

	slot, reason, err := ResolveSlot(slots, at(t, 10, 25), 10)

	require.NoError(t, err)
	assert.Equal(t, "B", slot.ID())
	assert.Equal(t, ReasonEarlyGrace, reason)
}

func TestResolveSlotZeroGrace(t *testing.T) {
	// With no grace window the current-slot check decides alone.
	slots := testSchedule(t)

	slot, reason, err := ResolveSlot(slots, at(t, 10, 25), 0)
	require.NoError(t, err)
	assert.Equal(t, "A", slot.ID())
	assert.Equal(t, ReasonCurrentSlot, reason)

	// In the gap with zero grace, the next upcoming slot is still chosen.
	slot, reason, err = ResolveSlot(slots, at(t, 10, 45), 0)
	require.NoError(t, err)
	assert.Equal(t, "B", slot.ID())
	assert.Equal(t, ReasonBeforeFirst, reason)
}

func TestResolveSlotEmptySchedule(t *testing.T) {
	_, _, err := ResolveSlot(nil, at(t, 10, 0), 10)
	assert.ErrorIs(t, err, errs.ErrNoSlotsConfigured)
}

func TestResolveSlotSingleSlot(t *testing.T) {
	slots := []entity.TimeSlot{slotAt(t, "only", 9, 0, 10, 0)}

	t.Run("Inside", func(t *testing.T) {
		slot, reason, err := ResolveSlot(slots, at(t, 9, 30), 10)
		require.NoError(t, err)
		assert.Equal(t, "only", slot.ID())
		assert.Equal(t, ReasonCurrentSlot, reason)
	})

	t.Run("After end", func(t *testing.T) {
		_, _, err := ResolveSlot(slots, at(t, 10, 0), 10)
		assert.ErrorIs(t, err, errs.ErrAllSlotsEnded)
	})
}

func TestResolveSlotDoesNotMutateInput(t *testing.T) {
	slots := testSchedule(t)
	original := make([]entity.TimeSlot, len(slots))
	copy(original, slots)

	_, _, _ = ResolveSlot(slots, at(t, 10, 50), 10)

	assert.Equal(t, original, slots)
}
