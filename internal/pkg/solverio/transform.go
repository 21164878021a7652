package solverio

import (
	"strings"
	"unicode"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// defaultMaxHoursPerDay applies to instructors without an explicit ceiling
// and to synthetic instructors.
const defaultMaxHoursPerDay = 4

// Records bundles the raw collections fetched from the record store.
type Records struct {
	Courses     []models.Course
	Instructors []models.Instructor
	Batches     []models.Batch
	Rooms       []models.Room
	Slots       []models.Slot
}

// Build maps the raw records into the solver tables.
//
// Anomalies never abort the build: courses with zero weekly load or without
// a resolvable instructor or batch are dropped, instructors referenced only
// by a course are synthesized, and vertically shared courses are merged into
// combined batches. A single malformed course must not block scheduling the
// rest.
func Build(rec Records) *TableSet {
	ts := &TableSet{}

	teacherIDByEmail := make(map[string]string, len(rec.Instructors))
	for _, ins := range rec.Instructors {
		if _, dup := teacherIDByEmail[ins.Email]; dup {
			continue
		}
		id := emailLocalPart(ins.Email)
		if ins.EmployeeID != nil && *ins.EmployeeID != "" {
			id = *ins.EmployeeID
		}
		maxHours := defaultMaxHoursPerDay
		if ins.MaxHoursPerDay != nil && *ins.MaxHoursPerDay > 0 {
			maxHours = *ins.MaxHoursPerDay
		}
		teacherIDByEmail[ins.Email] = id
		ts.Teachers = append(ts.Teachers, TeacherRow{
			TeacherID:        id,
			Name:             ins.Name,
			UnavailableSlots: ins.UnavailableSlotIDs,
			MaxHoursPerDay:   maxHours,
		})
	}

	batchIndex := make(map[string]int, len(rec.Batches))
	for _, b := range rec.Batches {
		if _, dup := batchIndex[b.BatchID]; dup {
			continue
		}
		batchIndex[b.BatchID] = len(ts.Batches)
		ts.Batches = append(ts.Batches, BatchRow{
			BatchID:   b.BatchID,
			Programme: b.Programme,
			Size:      b.Size,
		})
	}

	for _, course := range rec.Courses {
		hours := course.HoursPerWeek()
		if hours == 0 {
			logger.Debug().Str("course", course.Code).Msg("Skipping course with zero weekly load")
			continue
		}

		teacherID, ok := resolveTeacher(ts, teacherIDByEmail, course)
		if !ok {
			logger.Warn().Str("course", course.Code).Msg("Skipping course without a resolvable instructor")
			continue
		}

		if len(course.BatchIDs) == 0 {
			logger.Warn().Str("course", course.Code).Msg("Skipping course without assigned batches")
			continue
		}

		lab := course.Practical > 0 || course.Category == "Lab"

		if course.Sharing == models.SharingVertical {
			combinedID, ok := combineBatches(ts, batchIndex, course.BatchIDs)
			if !ok {
				logger.Warn().Str("course", course.Code).Msg("Skipping vertically shared course with no known batches")
				continue
			}
			ts.Courses = append(ts.Courses, CourseRow{
				CourseID:     course.Code,
				Title:        course.Name,
				HoursPerWeek: hours,
				TeacherID:    teacherID,
				BatchID:      combinedID,
				RequiresLab:  lab,
			})
			continue
		}

		// Horizontal sharing: one row per batch.
		for _, batchID := range course.BatchIDs {
			if _, known := batchIndex[batchID]; !known {
				logger.Warn().Str("course", course.Code).Str("batch", batchID).Msg("Skipping course row referencing unknown batch")
				continue
			}
			ts.Courses = append(ts.Courses, CourseRow{
				CourseID:     course.Code + "_" + batchID,
				Title:        course.Name,
				HoursPerWeek: hours,
				TeacherID:    teacherID,
				BatchID:      batchID,
				RequiresLab:  lab,
			})
		}
	}

	for _, room := range rec.Rooms {
		ts.Rooms = append(ts.Rooms, RoomRow{
			RoomID:   room.RoomID,
			Capacity: room.Capacity,
			IsLab:    room.IsLab,
		})
	}

	for _, slot := range rec.Slots {
		ts.Slots = append(ts.Slots, SlotRow{
			SlotID:    slot.SlotID,
			Day:       slot.Day,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	ts.enforceClosure()
	return ts
}

// resolveTeacher picks the effective instructor for a course: the first
// listed assignment wins, regardless of the coordinator flag. An email
// without a record-store entry produces a synthetic teacher row exactly once.
func resolveTeacher(ts *TableSet, teacherIDByEmail map[string]string, course models.Course) (string, bool) {
	if len(course.Assignments) == 0 {
		return "", false
	}
	email := course.Assignments[0].Email
	if email == "" {
		return "", false
	}

	if id, ok := teacherIDByEmail[email]; ok {
		return id, true
	}

	id := emailLocalPart(email)
	teacherIDByEmail[email] = id
	ts.Teachers = append(ts.Teachers, TeacherRow{
		TeacherID:      id,
		Name:           displayNameFromEmail(email),
		MaxHoursPerDay: defaultMaxHoursPerDay,
	})
	logger.Info().Str("email", email).Str("teacherId", id).Msg("Synthesized instructor referenced only by a course")
	return id, true
}

// combineBatches materializes the combined batch for a vertically shared
// course. The identifier is the order-sensitive join of the constituent ids,
// so re-deriving it from another course reuses the same entry.
func combineBatches(ts *TableSet, batchIndex map[string]int, ids []string) (string, bool) {
	combinedID := strings.Join(ids, "+")
	if _, exists := batchIndex[combinedID]; exists {
		return combinedID, true
	}

	size := 0
	programme := ""
	resolved := false
	for _, id := range ids {
		idx, ok := batchIndex[id]
		if !ok {
			continue
		}
		resolved = true
		size += ts.Batches[idx].Size
		if programme == "" {
			programme = ts.Batches[idx].Programme
		}
	}
	if !resolved {
		return "", false
	}

	batchIndex[combinedID] = len(ts.Batches)
	ts.Batches = append(ts.Batches, BatchRow{
		BatchID:   combinedID,
		Programme: programme,
		Size:      size,
	})
	return combinedID, true
}

// enforceClosure drops any course row whose teacher or batch reference is
// missing from the emitted tables. By construction this should find nothing;
// it is the last line of defense before encoding.
func (ts *TableSet) enforceClosure() {
	teachers := make(map[string]struct{}, len(ts.Teachers))
	for _, t := range ts.Teachers {
		teachers[t.TeacherID] = struct{}{}
	}
	batches := make(map[string]struct{}, len(ts.Batches))
	for _, b := range ts.Batches {
		batches[b.BatchID] = struct{}{}
	}

	kept := ts.Courses[:0]
	for _, c := range ts.Courses {
		if _, ok := teachers[c.TeacherID]; !ok {
			logger.Warn().Str("courseId", c.CourseID).Str("teacherId", c.TeacherID).Msg("Dropping course row with dangling teacher reference")
			continue
		}
		if _, ok := batches[c.BatchID]; !ok {
			logger.Warn().Str("courseId", c.CourseID).Str("batchId", c.BatchID).Msg("Dropping course row with dangling batch reference")
			continue
		}
		kept = append(kept, c)
	}
	ts.Courses = kept
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// displayNameFromEmail derives a readable name from the email local-part:
// "j.doe@example.edu" becomes "J Doe".
func displayNameFromEmail(email string) string {
	local := emailLocalPart(email)
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	if len(words) == 0 {
		return local
	}
	return strings.Join(words, " ")
}
