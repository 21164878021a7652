package dto

// GenerateTimetableRequest selects which semesters to schedule. Leaving both
// fields empty schedules all semesters; setting both is rejected.
type GenerateTimetableRequest struct {
	Semester int    `json:"semester" binding:"omitempty,min=1,max=8" example:"3"`
	Parity   string `json:"parity" binding:"omitempty,oneof=odd even" example:"odd"`
}
