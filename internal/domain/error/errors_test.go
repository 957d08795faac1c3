package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Invalid token", ErrInvalidToken, CodeInvalidToken},
		{"Invalid user ID", ErrInvalidUserID, CodeInvalidUserID},
		{"Not eligible", ErrNotEligible, CodeNotEligible},
		{"Already checked in", ErrAlreadyCheckedIn, CodeAlreadyCheckedIn},
		{"Capacity exceeded", ErrCapacityExceeded, CodeCapacityExceeded},
		{"No slots configured", ErrNoSlotsConfigured, CodeNoSlotsConfigured},
		{"All slots ended", ErrAllSlotsEnded, CodeAllSlotsEnded},
		{"Slot not found", ErrSlotNotFound, CodeSlotNotFound},
		{"Lock timeout", ErrLockTimeout, CodeLockTimeout},
		{"Lock conflict", ErrLockConflict, CodeLockConflict},
		{"Persistence failure", ErrPersistenceFailure, CodePersistenceFailure},
		{"Invalid request", ErrInvalidRequest, CodeInvalidRequest},
		{"Unknown error", errors.New("something else"), CodeInternalServer},
		{"Wrapped sentinel", fmt.Errorf("context: %w", ErrInvalidToken), CodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestCapacityError(t *testing.T) {
	err := NewCapacityError("morning-lap", "2024-06-10", 30, 30)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.True(t, IsCapacityError(err))
	assert.Contains(t, err.Error(), "morning-lap")
	assert.Contains(t, err.Error(), "30 of 30")

	var capacityErr *CapacityError
	assert.True(t, errors.As(err, &capacityErr))
	assert.Equal(t, 30, capacityErr.Capacity)

	fields := capacityErr.LogFields()
	assert.Equal(t, "capacity_exceeded", fields["error_type"])
	assert.Equal(t, CodeCapacityExceeded, fields["error_code"])
}

func TestEligibilityError(t *testing.T) {
	err := NewEligibilityError("women-only", "femaleOnly", "male", "staff", "slot is reserved for female swimmers")

	assert.ErrorIs(t, err, ErrNotEligible)
	assert.True(t, IsEligibilityError(err))
	assert.Contains(t, err.Error(), "femaleOnly")

	var eligibilityErr *EligibilityError
	assert.True(t, errors.As(err, &eligibilityErr))
	assert.Equal(t, "women-only", eligibilityErr.SlotID)
	assert.Equal(t, CodeNotEligible, eligibilityErr.LogFields()["error_code"])
}

func TestLockTimeoutError(t *testing.T) {
	err := &LockTimeoutError{Key: "slot/morning-lap/2024-06-10", Timeout: "5s"}

	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.True(t, IsLockTimeoutError(err))
	assert.Contains(t, err.Error(), "slot/morning-lap/2024-06-10")
	assert.Equal(t, CodeLockTimeout, ErrorCode(err))
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceError("morning-lap", "2024-06-10", "u1", cause)

	assert.ErrorIs(t, err, ErrPersistenceFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "u1")
	assert.Equal(t, CodePersistenceFailure, ErrorCode(err))

	var persistErr *PersistenceError
	assert.True(t, errors.As(err, &persistErr))
	assert.Equal(t, cause, persistErr.Unwrap())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrLockTimeout))
	assert.True(t, IsRetryable(ErrLockConflict))
	assert.True(t, IsRetryable(&LockTimeoutError{Key: "k", Timeout: "1s"}))
	assert.False(t, IsRetryable(ErrCapacityExceeded))
	assert.False(t, IsRetryable(ErrInvalidToken))
	assert.False(t, IsRetryable(nil))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrSlotNotFound))
	assert.False(t, IsNotFoundError(ErrInvalidToken))
}
