package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// CourseRepository handles course reads for the timetable pipeline.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListCourses retrieves courses narrowed by the semester selector, with
// their instructor assignments in listed order.
func (r *CourseRepository) ListCourses(ctx context.Context, sel models.SemesterSelector) ([]models.Course, error) {
	q := r.sb.Select(
		"id", "code", "name", "category",
		"lecture_hours", "tutorial_hours", "practical_hours", "credits",
		"department", "semester", "batch_ids", "sharing_type",
	).From("courses")

	switch {
	case sel.Semester != 0:
		q = q.Where(squirrel.Eq{"semester": sel.Semester})
	case sel.Parity == models.ParityOdd:
		q = q.Where("semester % 2 = 1")
	case sel.Parity == models.ParityEven:
		q = q.Where("semester % 2 = 0")
	}

	sql, args, err := q.OrderBy("semester ASC", "code ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	ids := []int64{}
	for rows.Next() {
		var c models.Course
		var sharing string
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.Category,
			&c.Lecture, &c.Tutorial, &c.Practical, &c.Credits,
			&c.Department, &c.Semester, &c.BatchIDs, &sharing,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		c.Sharing = models.SharingType(sharing)
		courses = append(courses, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	if len(courses) == 0 {
		return courses, nil
	}

	assignments, err := r.listAssignments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].Assignments = assignments[courses[i].ID]
	}

	return courses, nil
}

// listAssignments loads instructor assignments for the given courses, keyed
// by course id, preserving the listed order.
func (r *CourseRepository) listAssignments(ctx context.Context, courseIDs []int64) (map[int64][]models.InstructorAssignment, error) {
	sql, args, err := r.sb.Select("course_id", "instructor_email", "is_coordinator").
		From("course_instructors").
		Where(squirrel.Eq{"course_id": courseIDs}).
		OrderBy("course_id ASC", "position ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list assignments SQL")
		return nil, fmt.Errorf("failed to build list assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list assignments query")
		return nil, fmt.Errorf("error querying course assignments: %w", err)
	}
	defer rows.Close()

	assignments := map[int64][]models.InstructorAssignment{}
	for rows.Next() {
		var courseID int64
		var a models.InstructorAssignment
		if err := rows.Scan(&courseID, &a.Email, &a.IsCoordinator); err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments[courseID] = append(assignments[courseID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}

	return assignments, nil
}
