package models

import (
	"fmt"

	"github.com/tunahan/uniplanner/internal/pkg/apperrors"
)

// SemesterParity selects all odd or all even semesters.
type SemesterParity string

const (
	ParityOdd  SemesterParity = "odd"
	ParityEven SemesterParity = "even"
)

// SemesterSelector narrows which semesters a timetable run covers. The zero
// value selects all semesters.
type SemesterSelector struct {
	// Semester is a specific semester 1-8; 0 means unset.
	Semester int
	// Parity selects odd or even semesters; empty means unset.
	Parity SemesterParity
}

// NewSemesterSelector builds a selector from the request fields, rejecting
// out-of-range and ambiguous combinations.
func NewSemesterSelector(semester int, parity string) (SemesterSelector, error) {
	sel := SemesterSelector{}

	if semester != 0 {
		if semester < 1 || semester > 8 {
			return sel, apperrors.NewInvalidSelectorError("Invalid semester. Must be between 1 and 8.")
		}
		sel.Semester = semester
	}

	switch SemesterParity(parity) {
	case "":
	case ParityOdd, ParityEven:
		if sel.Semester != 0 {
			return sel, apperrors.NewInvalidSelectorError("Specify either a semester or a parity, not both.")
		}
		sel.Parity = SemesterParity(parity)
	default:
		return sel, apperrors.NewInvalidSelectorError(fmt.Sprintf("Invalid parity %q. Must be \"odd\" or \"even\".", parity))
	}

	return sel, nil
}

// IsAll reports whether the selector covers every semester.
func (s SemesterSelector) IsAll() bool {
	return s.Semester == 0 && s.Parity == ""
}

// Describe returns the selector in a form usable inside messages, e.g.
// "semester 3", "odd semesters", "all semesters".
func (s SemesterSelector) Describe() string {
	switch {
	case s.Semester != 0:
		return fmt.Sprintf("semester %d", s.Semester)
	case s.Parity != "":
		return string(s.Parity) + " semesters"
	default:
		return "all semesters"
	}
}

// ArtifactFilename derives the download filename for the rendered timetable.
func (s SemesterSelector) ArtifactFilename() string {
	switch {
	case s.Semester != 0:
		return fmt.Sprintf("timetable_semester_%d.pdf", s.Semester)
	case s.Parity != "":
		return fmt.Sprintf("timetable_%s_semesters.pdf", s.Parity)
	default:
		return "timetable_all_semesters.pdf"
	}
}
