package occupancy

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/pool-access-controller/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/pool-access-controller/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func slotAt(t *testing.T, id string, startHour, endHour int) entity.TimeSlot {
	t.Helper()
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slot, err := entity.NewTimeSlot(
		id,
		day.Add(time.Duration(startHour)*time.Hour),
		day.Add(time.Duration(endHour)*time.Hour),
		entity.RestrictionOpen,
		20,
	)
	require.NoError(t, err)
	return slot
}

func newUseCase(t *testing.T) (*UseCase, *persistencemocks.MockSlotRepository, *persistencemocks.MockAttendanceRepository) {
	t.Helper()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(now).Maybe()

	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	slots := persistencemocks.NewMockSlotRepository(t)
	attendance := persistencemocks.NewMockAttendanceRepository(t)
	return NewUseCase(slots, attendance, mockTime, mockLogger), slots, attendance
}

func TestTodaySchedule(t *testing.T) {
	uc, slots, attendance := newUseCase(t)

	slots.EXPECT().ActiveSlotsFor(mock.Anything, mock.Anything).
		Return([]entity.TimeSlot{slotAt(t, "morning", 9, 11), slotAt(t, "noon", 11, 13)}, nil).Once()
	attendance.EXPECT().OccupantsFor(mock.Anything, "morning", "2024-06-10").
		Return([]string{"u1", "u2", "u3"}, nil).Once()
	attendance.EXPECT().OccupantsFor(mock.Anything, "noon", "2024-06-10").
		Return(nil, nil).Once()

	schedule, err := uc.TodaySchedule(context.Background())

	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, "morning", schedule[0].Slot.ID)
	assert.Equal(t, 3, schedule[0].Count)
	assert.Equal(t, "noon", schedule[1].Slot.ID)
	assert.Equal(t, 0, schedule[1].Count)
}

func TestTodayScheduleNoSlots(t *testing.T) {
	uc, slots, _ := newUseCase(t)

	slots.EXPECT().ActiveSlotsFor(mock.Anything, mock.Anything).
		Return(nil, errs.ErrNoSlotsConfigured).Once()

	schedule, err := uc.TodaySchedule(context.Background())

	assert.ErrorIs(t, err, errs.ErrNoSlotsConfigured)
	assert.Nil(t, schedule)
}

func TestTodayScheduleCountFailure(t *testing.T) {
	uc, slots, attendance := newUseCase(t)

	slots.EXPECT().ActiveSlotsFor(mock.Anything, mock.Anything).
		Return([]entity.TimeSlot{slotAt(t, "morning", 9, 11)}, nil).Once()
	attendance.EXPECT().OccupantsFor(mock.Anything, "morning", "2024-06-10").
		Return(nil, errs.ErrDatabaseConnection).Once()

	schedule, err := uc.TodaySchedule(context.Background())

	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	assert.Nil(t, schedule)
}
