package checkin

import (
	"context"
	"net/http"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
)

// CheckInRequest represents a request to check in to the pool
type CheckInRequest struct {
	Token    string
	Identity entity.Identity
}

// CheckInResponse carries the structured result plus the HTTP status the
// transport layer should answer with
type CheckInResponse struct {
	Result     *entity.CheckInResult
	StatusCode int
	Err        error
}

// Service is the transport-facing surface over the coordinator. It owns the
// mapping from check-in outcomes to HTTP status codes so handlers stay thin.
type Service struct {
	coordinator *Coordinator
	logger      coreport.Logger
}

// NewService creates a new check-in service
func NewService(coordinator *Coordinator, logger coreport.Logger) *Service {
	return &Service{
		coordinator: coordinator,
		logger:      logger,
	}
}

// Coordinator returns the underlying coordinator, used for wiring and tests
func (s *Service) Coordinator() *Coordinator {
	return s.coordinator
}

// CheckIn processes one check-in request and maps the outcome to a response
func (s *Service) CheckIn(ctx context.Context, req CheckInRequest) CheckInResponse {
	result, err := s.coordinator.CheckIn(ctx, req.Token, req.Identity)

	if result == nil {
		s.logger.Error("Check-in failed before producing a result", map[string]any{
			"user_id": req.Identity.UserID,
			"error":   err.Error(),
		})
		return CheckInResponse{StatusCode: http.StatusInternalServerError, Err: err}
	}

	return CheckInResponse{
		Result:     result,
		StatusCode: statusForOutcome(result.Outcome),
		Err:        err,
	}
}

// statusForOutcome maps every check-in outcome to its HTTP status.
// AlreadyPresent answers 200: repeating a check-in is harmless and the
// swimmer is, in fact, checked in.
func statusForOutcome(outcome entity.CheckInOutcome) int {
	switch outcome {
	case entity.CheckInAdmitted, entity.CheckInAlreadyPresent:
		return http.StatusOK
	case entity.CheckInIneligible:
		return http.StatusForbidden
	case entity.CheckInCapacityExceeded, entity.CheckInLockTimeout:
		return http.StatusConflict
	case entity.CheckInInvalidToken:
		return http.StatusUnauthorized
	case entity.CheckInNoSlotAvailable, entity.CheckInAllSlotsEnded:
		return http.StatusNotFound
	case entity.CheckInPersistenceFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
