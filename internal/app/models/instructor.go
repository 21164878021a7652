package models

// Instructor represents a teaching staff record.
type Instructor struct {
	ID    int64  `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Name  string `json:"name" db:"name"`

	// EmployeeID is the short scheduling identifier; when absent the email
	// local-part is used instead.
	EmployeeID *string `json:"employeeId,omitempty" db:"employee_id"`
	// MaxHoursPerDay is the per-day teaching ceiling; nil means the default.
	MaxHoursPerDay *int `json:"maxHoursPerDay,omitempty" db:"max_hours_per_day"`
	// UnavailableSlotIDs lists slot identifiers the instructor cannot teach in.
	UnavailableSlotIDs []string `json:"unavailableSlotIds,omitempty" db:"unavailable_slot_ids"`
}
