package models

// Slot represents a weekly teaching time slot.
type Slot struct {
	ID        int64  `json:"id" db:"id"`
	SlotID    string `json:"slotId" db:"slot_id"`
	Day       string `json:"day" db:"day"` // Monday..Friday
	StartTime string `json:"startTime" db:"start_time"`
	EndTime   string `json:"endTime" db:"end_time"`
}
