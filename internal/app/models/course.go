package models

// SharingType describes how a course is shared across student batches.
type SharingType string

const (
	// SharingHorizontal means the course is taught once per batch.
	SharingHorizontal SharingType = "Horizontal"
	// SharingVertical means the course is taught once to the union of its batches.
	SharingVertical SharingType = "Vertical"
)

// InstructorAssignment links a course to an instructor by identity email.
type InstructorAssignment struct {
	Email         string `json:"email" db:"instructor_email"`
	IsCoordinator bool   `json:"isCoordinator" db:"is_coordinator"`
}

// Course represents a course as kept in the record store.
type Course struct {
	ID         int64  `json:"id" db:"id"`
	Code       string `json:"code" db:"code"`
	Name       string `json:"name" db:"name"`
	Category   string `json:"category" db:"category"` // Core, Elective, Lab, Project, Other
	Lecture    int    `json:"lecture" db:"lecture_hours"`
	Tutorial   int    `json:"tutorial" db:"tutorial_hours"`
	Practical  int    `json:"practical" db:"practical_hours"`
	Credits    int    `json:"credits" db:"credits"`
	Department string `json:"department" db:"department"`
	Semester   int    `json:"semester" db:"semester"`

	Assignments []InstructorAssignment `json:"assignments"`
	BatchIDs    []string               `json:"batchIds" db:"batch_ids"`
	Sharing     SharingType            `json:"sharing" db:"sharing_type"`
}

// HoursPerWeek returns the total weekly contact load of the course.
func (c Course) HoursPerWeek() int {
	return c.Lecture + c.Tutorial + c.Practical
}
