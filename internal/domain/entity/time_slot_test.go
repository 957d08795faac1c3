package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, id string, start, end time.Time, restriction Restriction, capacity int) TimeSlot {
	t.Helper()
	slot, err := NewTimeSlot(id, start, end, restriction, capacity)
	require.NoError(t, err)
	return slot
}

func TestNewTimeSlot(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	start := day.Add(10 * time.Hour)
	end := day.Add(11 * time.Hour)

	t.Run("Valid slot", func(t *testing.T) {
		slot, err := NewTimeSlot("morning-lap", start, end, RestrictionOpen, 30)

		require.NoError(t, err)
		assert.Equal(t, "morning-lap", slot.ID())
		assert.Equal(t, start, slot.Start())
		assert.Equal(t, end, slot.End())
		assert.Equal(t, RestrictionOpen, slot.Restriction())
		assert.Equal(t, 30, slot.Capacity())
		assert.False(t, slot.IsZero())
	})

	t.Run("Empty ID", func(t *testing.T) {
		_, err := NewTimeSlot("", start, end, RestrictionOpen, 30)
		assert.ErrorIs(t, err, errs.ErrSlotNotFound)
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := NewTimeSlot("bad", end, start, RestrictionOpen, 30)
		assert.ErrorIs(t, err, errs.ErrInvalidSlotWindow)
	})

	t.Run("End equal to start", func(t *testing.T) {
		_, err := NewTimeSlot("bad", start, start, RestrictionOpen, 30)
		assert.ErrorIs(t, err, errs.ErrInvalidSlotWindow)
	})

	t.Run("Zero capacity", func(t *testing.T) {
		_, err := NewTimeSlot("bad", start, end, RestrictionOpen, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidCapacity)
	})

	t.Run("Negative capacity", func(t *testing.T) {
		_, err := NewTimeSlot("bad", start, end, RestrictionOpen, -5)
		assert.ErrorIs(t, err, errs.ErrInvalidCapacity)
	})

	t.Run("Unknown restriction", func(t *testing.T) {
		_, err := NewTimeSlot("bad", start, end, Restriction("vipOnly"), 30)
		assert.ErrorIs(t, err, errs.ErrInvalidRestriction)
	})
}

func TestTimeSlotContains(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slot := mustSlot(t, "s", day.Add(10*time.Hour), day.Add(11*time.Hour), RestrictionOpen, 10)

	t.Run("Start is inside", func(t *testing.T) {
		assert.True(t, slot.Contains(day.Add(10*time.Hour)))
	})

	t.Run("Middle is inside", func(t *testing.T) {
		assert.True(t, slot.Contains(day.Add(10*time.Hour+30*time.Minute)))
	})

	t.Run("End is outside", func(t *testing.T) {
		assert.False(t, slot.Contains(day.Add(11*time.Hour)))
	})

	t.Run("Before start is outside", func(t *testing.T) {
		assert.False(t, slot.Contains(day.Add(10*time.Hour-time.Second)))
	})
}

func TestRestrictionAdmits(t *testing.T) {
	tests := []struct {
		name        string
		restriction Restriction
		identity    Identity
		want        bool
	}{
		{"Open admits anyone", RestrictionOpen, Identity{UserID: "u", Gender: GenderFemale, Role: RoleStaff}, true},
		{"Male-only admits male", RestrictionMaleOnly, Identity{UserID: "u", Gender: GenderMale, Role: RoleStaff}, true},
		{"Male-only rejects female", RestrictionMaleOnly, Identity{UserID: "u", Gender: GenderFemale, Role: RoleStaff}, false},
		{"Female-only admits female", RestrictionFemaleOnly, Identity{UserID: "u", Gender: GenderFemale, Role: RoleFaculty}, true},
		{"Female-only rejects male", RestrictionFemaleOnly, Identity{UserID: "u", Gender: GenderMale, Role: RoleFaculty}, false},
		{"Faculty-and-grad admits faculty", RestrictionFacultyAndGrad, Identity{UserID: "u", Gender: GenderMale, Role: RoleFaculty}, true},
		{"Faculty-and-grad admits postgraduate", RestrictionFacultyAndGrad, Identity{UserID: "u", Gender: GenderFemale, Role: RolePostgraduate}, true},
		{"Faculty-and-grad rejects undergraduate", RestrictionFacultyAndGrad, Identity{UserID: "u", Gender: GenderMale, Role: RoleUndergraduate}, false},
		{"Faculty-and-grad rejects staff", RestrictionFacultyAndGrad, Identity{UserID: "u", Gender: GenderFemale, Role: RoleStaff}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := tt.restriction.Admits(tt.identity)
			assert.Equal(t, tt.want, ok)
			if !tt.want {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func TestRestrictionIsValid(t *testing.T) {
	assert.True(t, RestrictionOpen.IsValid())
	assert.True(t, RestrictionMaleOnly.IsValid())
	assert.True(t, RestrictionFemaleOnly.IsValid())
	assert.True(t, RestrictionFacultyAndGrad.IsValid())
	assert.False(t, Restriction("").IsValid())
	assert.False(t, Restriction("vipOnly").IsValid())
}

func TestSlotSummary(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slot := mustSlot(t, "women-only", day.Add(11*time.Hour), day.Add(13*time.Hour), RestrictionFemaleOnly, 25)

	summary := SlotSummary(slot)

	assert.Equal(t, "women-only", summary.ID)
	assert.Equal(t, "11:00", summary.Start)
	assert.Equal(t, "13:00", summary.End)
	assert.Equal(t, RestrictionFemaleOnly, summary.Restriction)
	assert.Equal(t, 25, summary.Capacity)
}
