package dto

import (
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/usecase/occupancy"
)

// SlotPayload represents one slot definition in API responses
type SlotPayload struct {
	ID          string `json:"id"`
	Start       string `json:"start"` // HH:MM
	End         string `json:"end"`   // HH:MM
	Restriction string `json:"restriction"`
	Capacity    int    `json:"capacity"`
}

// ScheduleEntry represents one slot of today's schedule with its occupancy
type ScheduleEntry struct {
	SlotPayload
	Occupants int `json:"occupants"`
}

// ScheduleResponse represents today's schedule
type ScheduleResponse struct {
	Date  string          `json:"date"`
	Slots []ScheduleEntry `json:"slots"`
}

func slotPayload(s entity.Slot) SlotPayload {
	return SlotPayload{
		ID:          s.ID,
		Start:       s.Start,
		End:         s.End,
		Restriction: string(s.Restriction),
		Capacity:    s.Capacity,
	}
}

// FromSchedule builds the schedule payload from the occupancy query result
func FromSchedule(date string, schedule []occupancy.SlotOccupancy) ScheduleResponse {
	entries := make([]ScheduleEntry, 0, len(schedule))
	for _, item := range schedule {
		entries = append(entries, ScheduleEntry{
			SlotPayload: slotPayload(item.Slot),
			Occupants:   item.Count,
		})
	}
	return ScheduleResponse{
		Date:  date,
		Slots: entries,
	}
}
