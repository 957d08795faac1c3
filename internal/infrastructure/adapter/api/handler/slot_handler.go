package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	occupancyUseCase "github.com/amirhossein-jamali/pool-access-controller/internal/domain/usecase/occupancy"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SlotHandler handles schedule HTTP requests
type SlotHandler struct {
	occupancy    *occupancyUseCase.UseCase
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSlotHandler creates a new slot handler instance
func NewSlotHandler(
	occupancy *occupancyUseCase.UseCase,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *SlotHandler {
	return &SlotHandler{
		occupancy:    occupancy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// TodaySchedule handles the GET /slots/today endpoint
func (h *SlotHandler) TodaySchedule(c *gin.Context) {
	schedule, err := h.occupancy.TodaySchedule(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainerr.ErrNoSlotsConfigured) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "No time slots configured",
			})
			return
		}
		h.logger.Error("Failed to load today's schedule", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Internal server error",
		})
		return
	}

	date := h.timeProvider.Now().Format(occupancyUseCase.DateLayout)
	c.JSON(http.StatusOK, dto.FromSchedule(date, schedule))
}
