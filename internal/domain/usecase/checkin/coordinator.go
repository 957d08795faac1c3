package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/lock"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/persistence"
)

// DateLayout is the calendar-date component of every resource key
const DateLayout = "2006-01-02"

// DefaultLockTimeout bounds how long one check-in waits for its slot+date lock
const DefaultLockTimeout = 5 * time.Second

// DefaultGraceMinutes is the early-arrival grace window before a slot's start
const DefaultGraceMinutes = 10

// OccupancyTopic is the notification topic for occupancy changes
const OccupancyTopic = "pool.occupancy"

// Coordinator orchestrates one check-in: resolve the slot, serialize on the
// slot+date resource key, decide admission against a fresh snapshot, persist
// and notify. All collaborators are injected so tests can substitute
// in-memory fakes and drive capacity races deterministically.
type Coordinator struct {
	tokens     persistence.TokenRepository
	slots      persistence.SlotRepository
	attendance persistence.AttendanceRepository
	publisher  messaging.Publisher
	locks      *lock.Registry

	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	lockTimeout  time.Duration
	graceMinutes int
}

// NewCoordinator creates a check-in coordinator with default tuning
func NewCoordinator(
	tokens persistence.TokenRepository,
	slots persistence.SlotRepository,
	attendance persistence.AttendanceRepository,
	publisher messaging.Publisher,
	locks *lock.Registry,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Coordinator {
	return &Coordinator{
		tokens:       tokens,
		slots:        slots,
		attendance:   attendance,
		publisher:    publisher,
		locks:        locks,
		timeProvider: timeProvider,
		logger:       logger,
		lockTimeout:  DefaultLockTimeout,
		graceMinutes: DefaultGraceMinutes,
	}
}

// WithLockTimeout overrides the lock acquisition timeout
func (c *Coordinator) WithLockTimeout(timeout time.Duration) *Coordinator {
	if timeout > 0 {
		c.lockTimeout = timeout
	}
	return c
}

// WithGraceMinutes overrides the early-arrival grace window
func (c *Coordinator) WithGraceMinutes(minutes int) *Coordinator {
	if minutes >= 0 {
		c.graceMinutes = minutes
	}
	return c
}

// CheckIn runs one check-in attempt end to end and returns a structured
// result. Business-rule rejections (already present, ineligible, capacity)
// come back as result values with a nil error; the error return is reserved
// for input, contention and persistence failures, which is also when the
// result's Outcome names the failure class.
func (c *Coordinator) CheckIn(ctx context.Context, tokenValue string, identity entity.Identity) (*entity.CheckInResult, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	// Token lookup happens before any locking; an invalid token must never
	// cost a lock acquisition.
	if _, err := c.tokens.FindActiveToken(ctx, tokenValue); err != nil {
		if errors.Is(err, errs.ErrInvalidToken) {
			c.logger.Warn("Check-in with invalid token", map[string]any{
				"user_id": identity.UserID,
			})
			return &entity.CheckInResult{Outcome: entity.CheckInInvalidToken}, errs.ErrInvalidToken
		}
		return nil, err
	}

	now := c.timeProvider.Now()

	todaySlots, err := c.slots.ActiveSlotsFor(ctx, now)
	if err != nil {
		if errors.Is(err, errs.ErrNoSlotsConfigured) {
			return &entity.CheckInResult{Outcome: entity.CheckInNoSlotAvailable}, err
		}
		return nil, err
	}

	slot, reason, err := ResolveSlot(todaySlots, now, c.graceMinutes)
	if err != nil {
		if errors.Is(err, errs.ErrAllSlotsEnded) {
			c.logger.Info("Check-in after last slot ended", map[string]any{
				"user_id": identity.UserID,
				"at":      now,
			})
			return &entity.CheckInResult{Outcome: entity.CheckInAllSlotsEnded}, err
		}
		return &entity.CheckInResult{Outcome: entity.CheckInNoSlotAvailable}, err
	}

	date := now.Format(DateLayout)
	key := entity.ResourceKey(slot.ID(), date)

	ticket, err := c.locks.Acquire(ctx, key, c.lockTimeout)
	if err != nil {
		if errors.Is(err, errs.ErrLockTimeout) {
			c.logger.Warn("Lock acquisition timed out", map[string]any{
				"key":     key,
				"user_id": identity.UserID,
				"timeout": c.lockTimeout.String(),
			})
			return &entity.CheckInResult{
				Outcome: entity.CheckInLockTimeout,
				Slot:    entity.SlotSummary(slot),
				Date:    date,
			}, err
		}
		return nil, err
	}
	defer func() {
		if relErr := c.locks.Release(ticket); relErr != nil {
			c.logger.Error("Failed to release check-in lock", map[string]any{
				"key":   key,
				"error": relErr.Error(),
			})
		}
	}()

	return c.admitLocked(ctx, slot, date, identity, reason, now)
}

// admitLocked runs the critical section: read occupancy, decide, persist.
// The caller holds the resource lock for slot+date and releases it after
// this returns, on every path.
func (c *Coordinator) admitLocked(
	ctx context.Context,
	slot entity.TimeSlot,
	date string,
	identity entity.Identity,
	reason ResolveReason,
	now time.Time,
) (*entity.CheckInResult, error) {
	occupants, err := c.attendance.OccupantsFor(ctx, slot.ID(), date)
	if err != nil {
		return nil, err
	}

	snapshot, err := entity.NewAttendanceSnapshot(slot.ID(), date, slot.Capacity(), occupants)
	if err != nil {
		return nil, err
	}

	result := snapshot.Admit(identity, slot.Restriction())
	summary := entity.SlotSummary(slot)

	switch result.Outcome {
	case entity.AdmitAlreadyPresent:
		return &entity.CheckInResult{
			Outcome: entity.CheckInAlreadyPresent,
			Slot:    summary,
			Date:    date,
		}, nil

	case entity.AdmitIneligible:
		c.logger.Info("Check-in rejected by eligibility", map[string]any{
			"user_id":     identity.UserID,
			"slot_id":     slot.ID(),
			"restriction": string(slot.Restriction()),
			"reason":      result.Reason,
		})
		return &entity.CheckInResult{
			Outcome: entity.CheckInIneligible,
			Slot:    summary,
			Date:    date,
			Reason:  result.Reason,
		}, nil

	case entity.AdmitCapacityExceeded:
		c.logger.Info("Check-in rejected by capacity", map[string]any{
			"user_id":  identity.UserID,
			"slot_id":  slot.ID(),
			"capacity": result.Capacity,
			"current":  result.Current,
		})
		return &entity.CheckInResult{
			Outcome:  entity.CheckInCapacityExceeded,
			Slot:     summary,
			Date:     date,
			Capacity: result.Capacity,
			Current:  result.Current,
		}, nil
	}

	// Admitted: the write must land before we report success. A failure
	// here is fatal for the attempt; the deferred release still runs.
	if err := c.attendance.RecordAdmission(ctx, slot.ID(), date, identity.UserID, now); err != nil {
		persistErr := errs.NewPersistenceError(slot.ID(), date, identity.UserID, err)
		c.logger.Error("Failed to persist admission", map[string]any{
			"user_id": identity.UserID,
			"slot_id": slot.ID(),
			"date":    date,
			"error":   err.Error(),
		})
		return &entity.CheckInResult{
			Outcome: entity.CheckInPersistenceFailure,
			Slot:    summary,
			Date:    date,
		}, persistErr
	}

	newCount := len(result.NewOccupants)

	c.logger.Info("Swimmer admitted", map[string]any{
		"user_id":   identity.UserID,
		"slot_id":   slot.ID(),
		"date":      date,
		"new_count": newCount,
		"capacity":  slot.Capacity(),
		"resolved":  string(reason),
	})

	c.notifyOccupancyChanged(ctx, slot, date, identity.UserID, newCount)

	return &entity.CheckInResult{
		Outcome:  entity.CheckInAdmitted,
		Slot:     summary,
		Date:     date,
		NewCount: newCount,
	}, nil
}

// notifyOccupancyChanged emits the fire-and-forget occupancy event. A
// publish failure is logged and swallowed: the admission already happened
// and must be reported as such.
func (c *Coordinator) notifyOccupancyChanged(ctx context.Context, slot entity.TimeSlot, date, userID string, newCount int) {
	event := messaging.OccupancyChanged{
		SlotID:   slot.ID(),
		Date:     date,
		UserID:   userID,
		NewCount: newCount,
		Capacity: slot.Capacity(),
	}

	if err := c.publisher.Publish(ctx, entity.ResourceKey(slot.ID(), date), event); err != nil {
		c.logger.Warn("Failed to publish occupancy change", map[string]any{
			"slot_id": slot.ID(),
			"date":    date,
			"error":   err.Error(),
		})
	}
}
