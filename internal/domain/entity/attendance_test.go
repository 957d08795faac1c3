package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceKey(t *testing.T) {
	assert.Equal(t, "slot/morning-lap/2024-06-10", ResourceKey("morning-lap", "2024-06-10"))

	t.Run("Keys conflict exactly when slot and date match", func(t *testing.T) {
		assert.Equal(t, ResourceKey("a", "2024-06-10"), ResourceKey("a", "2024-06-10"))
		assert.NotEqual(t, ResourceKey("a", "2024-06-10"), ResourceKey("b", "2024-06-10"))
		assert.NotEqual(t, ResourceKey("a", "2024-06-10"), ResourceKey("a", "2024-06-11"))
	})
}

func TestNewAttendanceSnapshot(t *testing.T) {
	t.Run("Valid snapshot", func(t *testing.T) {
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 3, []string{"u1", "u2"})

		require.NoError(t, err)
		assert.Equal(t, "s", snap.SlotID())
		assert.Equal(t, "2024-06-10", snap.Date())
		assert.Equal(t, 3, snap.Capacity())
		assert.Equal(t, 2, snap.Count())
		assert.True(t, snap.Has("u1"))
		assert.False(t, snap.Has("u3"))
	})

	t.Run("Duplicate occupant IDs collapse", func(t *testing.T) {
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 3, []string{"u1", "u1", "u1"})

		require.NoError(t, err)
		assert.Equal(t, 1, snap.Count())
	})

	t.Run("Empty slot ID", func(t *testing.T) {
		_, err := NewAttendanceSnapshot("", "2024-06-10", 3, nil)
		assert.ErrorIs(t, err, errs.ErrSlotNotFound)
	})

	t.Run("Non-positive capacity", func(t *testing.T) {
		_, err := NewAttendanceSnapshot("s", "2024-06-10", 0, nil)
		assert.ErrorIs(t, err, errs.ErrInvalidCapacity)
	})

	t.Run("Empty occupant ID", func(t *testing.T) {
		_, err := NewAttendanceSnapshot("s", "2024-06-10", 3, []string{"u1", ""})
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("Occupants above capacity rejected", func(t *testing.T) {
		_, err := NewAttendanceSnapshot("s", "2024-06-10", 2, []string{"u1", "u2", "u3"})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})
}

func TestAdmit(t *testing.T) {
	male := Identity{UserID: "m1", Gender: GenderMale, Role: RoleUndergraduate}
	female := Identity{UserID: "f1", Gender: GenderFemale, Role: RoleStaff}

	t.Run("Admitted extends the occupant set", func(t *testing.T) {
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 3, []string{"u1"})
		require.NoError(t, err)

		result := snap.Admit(male, RestrictionOpen)

		assert.Equal(t, AdmitAdmitted, result.Outcome)
		assert.Equal(t, []string{"u1", "m1"}, result.NewOccupants)
	})

	t.Run("Already present wins over everything else", func(t *testing.T) {
		// f1 is an occupant of a male-only slot that is also full. The
		// duplicate check must fire before eligibility and capacity.
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 1, []string{"f1"})
		require.NoError(t, err)

		result := snap.Admit(female, RestrictionMaleOnly)

		assert.Equal(t, AdmitAlreadyPresent, result.Outcome)
	})

	t.Run("Eligibility checked before capacity", func(t *testing.T) {
		// The slot is full AND the identity is ineligible; the rejection
		// must name eligibility.
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 1, []string{"u1"})
		require.NoError(t, err)

		result := snap.Admit(female, RestrictionMaleOnly)

		assert.Equal(t, AdmitIneligible, result.Outcome)
		assert.NotEmpty(t, result.Reason)
	})

	t.Run("Capacity rejection carries the numbers", func(t *testing.T) {
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 2, []string{"u1", "u2"})
		require.NoError(t, err)

		result := snap.Admit(male, RestrictionOpen)

		assert.Equal(t, AdmitCapacityExceeded, result.Outcome)
		assert.Equal(t, 2, result.Capacity)
		assert.Equal(t, 2, result.Current)
	})

	t.Run("Admit is pure", func(t *testing.T) {
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 3, []string{"u1"})
		require.NoError(t, err)

		first := snap.Admit(male, RestrictionOpen)
		second := snap.Admit(male, RestrictionOpen)

		// Same inputs, same decision; the snapshot itself never changes.
		assert.Equal(t, first, second)
		assert.Equal(t, 1, snap.Count())
		assert.False(t, snap.Has("m1"))
	})

	t.Run("Last free place goes to the admitted identity", func(t *testing.T) {
		snap, err := NewAttendanceSnapshot("s", "2024-06-10", 2, []string{"u1"})
		require.NoError(t, err)

		result := snap.Admit(male, RestrictionOpen)

		assert.Equal(t, AdmitAdmitted, result.Outcome)
		assert.Len(t, result.NewOccupants, 2)
	})
}

func TestIdentityValidate(t *testing.T) {
	assert.NoError(t, Identity{UserID: "u1"}.Validate())
	assert.ErrorIs(t, Identity{}.Validate(), errs.ErrInvalidUserID)
}

func TestAccessTokenIsUsable(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	t.Run("Active token with no expiry", func(t *testing.T) {
		token := AccessToken{Value: "t", Active: true}
		assert.True(t, token.IsUsable(now))
	})

	t.Run("Inactive token", func(t *testing.T) {
		token := AccessToken{Value: "t", Active: false}
		assert.False(t, token.IsUsable(now))
	})

	t.Run("Future expiry is usable", func(t *testing.T) {
		token := AccessToken{Value: "t", Active: true, ExpiresAt: &later}
		assert.True(t, token.IsUsable(now))
	})

	t.Run("Past expiry is not usable", func(t *testing.T) {
		token := AccessToken{Value: "t", Active: true, ExpiresAt: &earlier}
		assert.False(t, token.IsUsable(now))
	})

	t.Run("Expiry boundary counts as expired", func(t *testing.T) {
		token := AccessToken{Value: "t", Active: true, ExpiresAt: &now}
		assert.False(t, token.IsUsable(now))
	})
}
