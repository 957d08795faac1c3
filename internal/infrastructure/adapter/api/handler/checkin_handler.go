package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	checkinUseCase "github.com/amirhossein-jamali/pool-access-controller/internal/domain/usecase/checkin"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CheckInHandler handles check-in HTTP requests
type CheckInHandler struct {
	checkInService *checkinUseCase.Service
	logger         coreport.Logger
}

// NewCheckInHandler creates a new check-in handler instance
func NewCheckInHandler(checkInService *checkinUseCase.Service, logger coreport.Logger) *CheckInHandler {
	return &CheckInHandler{
		checkInService: checkInService,
		logger:         logger,
	}
}

// CheckIn handles the POST /checkin endpoint
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid check-in request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	identity := req.Identity()
	if err := identity.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	resp := h.checkInService.CheckIn(c.Request.Context(), checkinUseCase.CheckInRequest{
		Token:    req.Token,
		Identity: identity,
	})

	if resp.Result == nil {
		c.JSON(resp.StatusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(resp.Err),
			Message: "Check-in could not be processed",
		})
		return
	}

	c.JSON(resp.StatusCode, dto.FromResult(resp.Result))
}
