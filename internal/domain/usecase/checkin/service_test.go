package checkin

import (
	"context"
	"net/http"
	"testing"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusForOutcome(t *testing.T) {
	tests := []struct {
		outcome entity.CheckInOutcome
		status  int
	}{
		{entity.CheckInAdmitted, http.StatusOK},
		{entity.CheckInAlreadyPresent, http.StatusOK},
		{entity.CheckInIneligible, http.StatusForbidden},
		{entity.CheckInCapacityExceeded, http.StatusConflict},
		{entity.CheckInLockTimeout, http.StatusConflict},
		{entity.CheckInInvalidToken, http.StatusUnauthorized},
		{entity.CheckInNoSlotAvailable, http.StatusNotFound},
		{entity.CheckInAllSlotsEnded, http.StatusNotFound},
		{entity.CheckInPersistenceFailure, http.StatusInternalServerError},
		{entity.CheckInOutcome("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.status, statusForOutcome(tt.outcome))
		})
	}
}

func TestServiceCheckInAdmitted(t *testing.T) {
	now := at(t, 10, 20)
	f := newFixture(t, now)
	service := NewService(f.coord, newTestLogger(t))

	f.expectValidToken("u1")
	f.expectSchedule(t)
	f.attendance.EXPECT().OccupantsFor(mock.Anything, "A", "2024-06-10").Return(nil, nil).Once()
	f.attendance.EXPECT().RecordAdmission(mock.Anything, "A", "2024-06-10", "u1", now).Return(nil).Once()
	f.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp := service.CheckIn(context.Background(), CheckInRequest{
		Token:    "tok",
		Identity: entity.Identity{UserID: "u1", Gender: entity.GenderMale, Role: entity.RoleStaff},
	})

	require.NoError(t, resp.Err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, resp.Result)
	assert.Equal(t, entity.CheckInAdmitted, resp.Result.Outcome)
}

func TestServiceCheckInInvalidToken(t *testing.T) {
	f := newFixture(t, at(t, 10, 20))
	service := NewService(f.coord, newTestLogger(t))

	f.tokens.EXPECT().FindActiveToken(mock.Anything, "bad").Return(nil, errs.ErrInvalidToken).Once()

	resp := service.CheckIn(context.Background(), CheckInRequest{
		Token:    "bad",
		Identity: entity.Identity{UserID: "u1", Gender: entity.GenderMale, Role: entity.RoleStaff},
	})

	assert.ErrorIs(t, resp.Err, errs.ErrInvalidToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, resp.Result)
	assert.Equal(t, entity.CheckInInvalidToken, resp.Result.Outcome)
}

func TestServiceCheckInNilResult(t *testing.T) {
	f := newFixture(t, at(t, 10, 20))
	service := NewService(f.coord, newTestLogger(t))

	// An empty identity fails validation before the coordinator produces a
	// result, so the service answers 500 with no body payload.
	resp := service.CheckIn(context.Background(), CheckInRequest{Token: "tok"})

	assert.ErrorIs(t, resp.Err, errs.ErrInvalidUserID)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Nil(t, resp.Result)
}
