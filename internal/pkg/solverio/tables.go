// Package solverio builds and encodes the flat-file tables consumed by the
// external timetable solver.
package solverio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// File names of the solver's input tables and its output.
const (
	TeachersFile = "teachers.csv"
	CoursesFile  = "courses.csv"
	BatchesFile  = "batches.csv"
	RoomsFile    = "rooms.csv"
	SlotsFile    = "slots.csv"

	// ScheduleFile is produced by the solver; the pipeline only checks that
	// it contains at least one data row.
	ScheduleFile = "schedule.csv"
)

// Column order is fixed by the solver contract.
var (
	teacherColumns = []string{"teacher_id", "name", "unavailable_slots", "max_hours_per_day"}
	courseColumns  = []string{"course_id", "title", "hours_per_week", "teacher_id", "batch_id", "requires_lab"}
	batchColumns   = []string{"batch_id", "programme", "size"}
	roomColumns    = []string{"room_id", "capacity", "is_lab"}
	slotColumns    = []string{"slot_id", "day", "start_time", "end_time"}
)

// TeacherRow is one teacher entry in teachers.csv.
type TeacherRow struct {
	TeacherID        string
	Name             string
	UnavailableSlots []string
	MaxHoursPerDay   int
}

func (r TeacherRow) fields() []string {
	return []string{
		r.TeacherID,
		r.Name,
		strings.Join(r.UnavailableSlots, ";"),
		strconv.Itoa(r.MaxHoursPerDay),
	}
}

// CourseRow is one schedulable (course, batch) pair in courses.csv.
type CourseRow struct {
	CourseID     string
	Title        string
	HoursPerWeek int
	TeacherID    string
	BatchID      string
	RequiresLab  bool
}

func (r CourseRow) fields() []string {
	// The solver expects Python-style booleans here.
	lab := "False"
	if r.RequiresLab {
		lab = "True"
	}
	return []string{
		r.CourseID,
		r.Title,
		strconv.Itoa(r.HoursPerWeek),
		r.TeacherID,
		r.BatchID,
		lab,
	}
}

// BatchRow is one student group (real or combined) in batches.csv.
type BatchRow struct {
	BatchID   string
	Programme string
	Size      int
}

func (r BatchRow) fields() []string {
	return []string{r.BatchID, r.Programme, strconv.Itoa(r.Size)}
}

// RoomRow is one room in rooms.csv.
type RoomRow struct {
	RoomID   string
	Capacity int
	IsLab    bool
}

func (r RoomRow) fields() []string {
	return []string{r.RoomID, strconv.Itoa(r.Capacity), strconv.FormatBool(r.IsLab)}
}

// SlotRow is one time slot in slots.csv.
type SlotRow struct {
	SlotID    string
	Day       string
	StartTime string
	EndTime   string
}

func (r SlotRow) fields() []string {
	return []string{r.SlotID, r.Day, r.StartTime, r.EndTime}
}

// TableSet holds the five derived tables destined for the solver.
type TableSet struct {
	Teachers []TeacherRow
	Courses  []CourseRow
	Batches  []BatchRow
	Rooms    []RoomRow
	Slots    []SlotRow
}

// Encode serializes every table. Row order is preserved as built; quoting
// and escaping follow the CSV rules the solver parses.
func (ts *TableSet) Encode() (map[string][]byte, error) {
	files := map[string][]byte{}

	var err error
	if files[TeachersFile], err = encodeTable(teacherColumns, len(ts.Teachers), func(i int) []string { return ts.Teachers[i].fields() }); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", TeachersFile, err)
	}
	if files[CoursesFile], err = encodeTable(courseColumns, len(ts.Courses), func(i int) []string { return ts.Courses[i].fields() }); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", CoursesFile, err)
	}
	if files[BatchesFile], err = encodeTable(batchColumns, len(ts.Batches), func(i int) []string { return ts.Batches[i].fields() }); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", BatchesFile, err)
	}
	if files[RoomsFile], err = encodeTable(roomColumns, len(ts.Rooms), func(i int) []string { return ts.Rooms[i].fields() }); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", RoomsFile, err)
	}
	if files[SlotsFile], err = encodeTable(slotColumns, len(ts.Slots), func(i int) []string { return ts.Slots[i].fields() }); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", SlotsFile, err)
	}

	return files, nil
}

func encodeTable(header []string, n int, row func(int) []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CountDataRows counts the records beyond the header in an encoded table.
// Unreadable content counts as zero rows.
func CountDataRows(data []byte) int {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return 0
	}
	return len(records) - 1
}
