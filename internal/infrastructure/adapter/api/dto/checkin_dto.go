package dto

import (
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
)

// CheckInRequest represents the API request for a pool check-in
type CheckInRequest struct {
	Token  string `json:"token" binding:"required"`
	UserID string `json:"userId" binding:"required"`
	Gender string `json:"gender" binding:"required,oneof=male female"`
	Role   string `json:"role" binding:"required,oneof=faculty postgraduate undergraduate staff"`
}

// Identity converts the request fields into a domain identity
func (r CheckInRequest) Identity() entity.Identity {
	return entity.Identity{
		UserID: r.UserID,
		Gender: entity.GenderCategory(r.Gender),
		Role:   entity.RoleCategory(r.Role),
	}
}

// CheckInResponse represents the API response for a check-in attempt
type CheckInResponse struct {
	Outcome  string       `json:"outcome"`
	Slot     *SlotPayload `json:"slot,omitempty"`
	Date     string       `json:"date,omitempty"`
	NewCount int          `json:"newCount,omitempty"`
	Reason   string       `json:"reason,omitempty"`
	Capacity int          `json:"capacity,omitempty"`
	Current  int          `json:"current,omitempty"`
}

// FromResult builds the response payload from a domain result
func FromResult(result *entity.CheckInResult) CheckInResponse {
	resp := CheckInResponse{
		Outcome:  string(result.Outcome),
		Date:     result.Date,
		NewCount: result.NewCount,
		Reason:   result.Reason,
		Capacity: result.Capacity,
		Current:  result.Current,
	}
	if result.Slot.ID != "" {
		slot := slotPayload(result.Slot)
		resp.Slot = &slot
	}
	return resp
}
