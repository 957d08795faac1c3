package occupancy

import (
	"context"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/persistence"
)

// DateLayout matches the date component used by the check-in coordinator
const DateLayout = "2006-01-02"

// SlotOccupancy is one slot of today's schedule with its live occupant count
type SlotOccupancy struct {
	Slot  entity.Slot
	Count int
}

// UseCase answers read-only occupancy queries. Reads take no lock: the
// numbers are a snapshot for display and may be stale by the time they
// render, which is fine for a schedule board.
type UseCase struct {
	slots        persistence.SlotRepository
	attendance   persistence.AttendanceRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates an occupancy query use case
func NewUseCase(
	slots persistence.SlotRepository,
	attendance persistence.AttendanceRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		attendance:   attendance,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// TodaySchedule returns today's slots with their current occupant counts,
// ordered by start time
func (u *UseCase) TodaySchedule(ctx context.Context) ([]SlotOccupancy, error) {
	now := u.timeProvider.Now()
	date := now.Format(DateLayout)

	slots, err := u.slots.ActiveSlotsFor(ctx, now)
	if err != nil {
		return nil, err
	}

	schedule := make([]SlotOccupancy, 0, len(slots))
	for _, slot := range slots {
		occupants, err := u.attendance.OccupantsFor(ctx, slot.ID(), date)
		if err != nil {
			u.logger.Error("Failed to count occupants", map[string]any{
				"slot_id": slot.ID(),
				"date":    date,
				"error":   err.Error(),
			})
			return nil, err
		}

		schedule = append(schedule, SlotOccupancy{
			Slot:  entity.SlotSummary(slot),
			Count: len(occupants),
		})
	}

	return schedule, nil
}
