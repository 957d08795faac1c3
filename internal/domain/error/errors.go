package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest    = 4000
	CodeInvalidUserID     = 4003
	CodeInvalidToken      = 4010
	CodeNotEligible       = 4030
	CodeSlotNotFound      = 4040
	CodeNoSlotsConfigured = 4041
	CodeAllSlotsEnded     = 4042
	CodeAlreadyCheckedIn  = 4090
	CodeCapacityExceeded  = 4091
	CodeLockTimeout       = 4092
	CodeLockConflict      = 4093

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodePersistenceFailure = 5001
)

// Base error types
var (
	// ErrInvalidToken is returned when the presented access token is unknown or inactive
	ErrInvalidToken = errors.New("access token is invalid or inactive")

	// ErrInvalidUserID is returned when the user ID is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotEligible is returned when the identity does not satisfy the slot's restriction
	ErrNotEligible = errors.New("identity is not eligible for this slot")

	// ErrAlreadyCheckedIn is returned when the user is already an occupant of the slot
	ErrAlreadyCheckedIn = errors.New("user is already checked in to this slot")

	// ErrCapacityExceeded is returned when the slot has no free places left
	ErrCapacityExceeded = errors.New("slot capacity exceeded")

	// ErrNoSlotsConfigured is returned when no slot definitions exist for the day
	ErrNoSlotsConfigured = errors.New("no time slots configured for today")

	// ErrAllSlotsEnded is returned when the arrival time is past the last slot's end
	ErrAllSlotsEnded = errors.New("all time slots have ended for today")

	// ErrSlotNotFound is returned when the requested slot doesn't exist
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrLockTimeout is returned when a resource lock cannot be acquired in time
	ErrLockTimeout = errors.New("timed out waiting for resource lock")

	// ErrLockConflict is returned when an optimistic commit exhausts its retries
	ErrLockConflict = errors.New("resource version changed too many times")

	// ErrLockNotHeld is returned when releasing a ticket that no longer holds the key
	ErrLockNotHeld = errors.New("lock is not held by this ticket")

	// ErrInvalidSlotWindow is returned when a slot's end does not follow its start
	ErrInvalidSlotWindow = errors.New("slot end must be after slot start")

	// ErrInvalidCapacity is returned when a slot capacity is not a positive integer
	ErrInvalidCapacity = errors.New("slot capacity must be positive")

	// ErrInvalidRestriction is returned when a slot carries an unknown restriction tag
	ErrInvalidRestriction = errors.New("unknown eligibility restriction")

	// ErrPersistenceFailure is returned when recording an admission fails after
	// the decision was already made
	ErrPersistenceFailure = errors.New("failed to persist attendance record")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateSlot is returned when trying to create a slot that already exists
	ErrDuplicateSlot = errors.New("time slot already exists")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrNotEligible):
		return CodeNotEligible
	case errors.Is(err, ErrAlreadyCheckedIn):
		return CodeAlreadyCheckedIn
	case errors.Is(err, ErrCapacityExceeded):
		return CodeCapacityExceeded
	case errors.Is(err, ErrNoSlotsConfigured):
		return CodeNoSlotsConfigured
	case errors.Is(err, ErrAllSlotsEnded):
		return CodeAllSlotsEnded
	case errors.Is(err, ErrSlotNotFound):
		return CodeSlotNotFound
	case errors.Is(err, ErrLockTimeout):
		return CodeLockTimeout
	case errors.Is(err, ErrLockConflict):
		return CodeLockConflict
	case errors.Is(err, ErrPersistenceFailure):
		return CodePersistenceFailure
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// CapacityError carries the occupancy numbers behind a capacity rejection
type CapacityError struct {
	SlotID   string
	Date     string
	Capacity int
	Current  int
}

// Error implements the error interface for CapacityError
func (e *CapacityError) Error() string {
	return fmt.Sprintf("slot %s on %s is full: %d of %d places taken",
		e.SlotID, e.Date, e.Current, e.Capacity)
}

// Is checks if the target error is an ErrCapacityExceeded
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// LogFields returns a map of fields for structured logging
func (e *CapacityError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "capacity_exceeded",
		"slot_id":    e.SlotID,
		"date":       e.Date,
		"capacity":   e.Capacity,
		"current":    e.Current,
		"error_code": CodeCapacityExceeded,
	}
}

// NewCapacityError creates a new detailed capacity error
func NewCapacityError(slotID, date string, capacity, current int) error {
	return &CapacityError{
		SlotID:   slotID,
		Date:     date,
		Capacity: capacity,
		Current:  current,
	}
}

// EligibilityError describes why an identity was rejected by a slot restriction
type EligibilityError struct {
	SlotID      string
	Restriction string
	Gender      string
	Role        string
	Reason      string
}

// Error implements the error interface for EligibilityError
func (e *EligibilityError) Error() string {
	return fmt.Sprintf("identity (gender: %s, role: %s) not admitted to slot %s under %s restriction: %s",
		e.Gender, e.Role, e.SlotID, e.Restriction, e.Reason)
}

// Is checks if the target error is an ErrNotEligible
func (e *EligibilityError) Is(target error) bool {
	return target == ErrNotEligible
}

// LogFields returns a map of fields for structured logging
func (e *EligibilityError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "not_eligible",
		"slot_id":     e.SlotID,
		"restriction": e.Restriction,
		"gender":      e.Gender,
		"role":        e.Role,
		"reason":      e.Reason,
		"error_code":  CodeNotEligible,
	}
}

// NewEligibilityError creates a detailed eligibility error
func NewEligibilityError(slotID, restriction, gender, role, reason string) error {
	return &EligibilityError{
		SlotID:      slotID,
		Restriction: restriction,
		Gender:      gender,
		Role:        role,
		Reason:      reason,
	}
}

// LockTimeoutError carries the key and timeout behind a lock acquisition failure
type LockTimeoutError struct {
	Key     string
	Timeout string
}

// Error implements the error interface
func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("could not acquire lock on %s within %s", e.Key, e.Timeout)
}

// Is checks if the target error is an ErrLockTimeout
func (e *LockTimeoutError) Is(target error) bool {
	return target == ErrLockTimeout
}

// LogFields returns a map of fields for structured logging
func (e *LockTimeoutError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "lock_timeout",
		"lock_key":   e.Key,
		"timeout":    e.Timeout,
		"error_code": CodeLockTimeout,
	}
}

// PersistenceError wraps a storage failure that occurred after an admission
// decision was already taken
type PersistenceError struct {
	SlotID string
	Date   string
	UserID string
	Err    error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to record admission of %s to slot %s on %s: %v",
		e.UserID, e.SlotID, e.Date, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrPersistenceFailure
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistenceFailure
}

// LogFields returns a map of fields for structured logging
func (e *PersistenceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "persistence_failure",
		"slot_id":    e.SlotID,
		"date":       e.Date,
		"user_id":    e.UserID,
		"error":      e.Err.Error(),
		"error_code": CodePersistenceFailure,
	}
}

// NewPersistenceError creates a detailed persistence error
func NewPersistenceError(slotID, date, userID string, err error) error {
	return &PersistenceError{
		SlotID: slotID,
		Date:   date,
		UserID: userID,
		Err:    err,
	}
}

// IsCapacityError checks if the error is a capacity rejection
func IsCapacityError(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}

// IsEligibilityError checks if the error is an eligibility rejection
func IsEligibilityError(err error) bool {
	return errors.Is(err, ErrNotEligible)
}

// IsAlreadyCheckedInError checks if the error is a duplicate admission attempt
func IsAlreadyCheckedInError(err error) bool {
	return errors.Is(err, ErrAlreadyCheckedIn)
}

// IsLockTimeoutError checks if the error is a lock acquisition timeout
func IsLockTimeoutError(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}

// IsLockConflictError checks if the error is an exhausted optimistic commit
func IsLockConflictError(err error) bool {
	return errors.Is(err, ErrLockConflict)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSlotNotFound)
}

// IsRetryable reports whether the caller may safely retry the whole check-in
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout) || errors.Is(err, ErrLockConflict)
}
