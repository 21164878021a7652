package models

// Room represents a lecture room or laboratory.
type Room struct {
	ID       int64  `json:"id" db:"id"`
	RoomID   string `json:"roomId" db:"room_id"`
	Capacity int    `json:"capacity" db:"capacity"`
	IsLab    bool   `json:"isLab" db:"is_lab"`
	Building string `json:"building,omitempty" db:"building"`
	Floor    string `json:"floor,omitempty" db:"floor"`
}
