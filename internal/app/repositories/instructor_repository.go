package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// InstructorRepository handles instructor reads.
type InstructorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListInstructors retrieves all instructors.
func (r *InstructorRepository) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	sql, args, err := r.sb.Select("id", "email", "name", "employee_id", "max_hours_per_day", "unavailable_slot_ids").
		From("instructors").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list instructors SQL")
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list instructors query")
		return nil, fmt.Errorf("error querying instructors: %w", err)
	}
	defer rows.Close()

	instructors := []models.Instructor{}
	for rows.Next() {
		var ins models.Instructor
		if err := rows.Scan(&ins.ID, &ins.Email, &ins.Name, &ins.EmployeeID, &ins.MaxHoursPerDay, &ins.UnavailableSlotIDs); err != nil {
			logger.Error().Err(err).Msg("Error scanning instructor row")
			return nil, fmt.Errorf("error scanning instructor row: %w", err)
		}
		instructors = append(instructors, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instructor rows: %w", err)
	}

	return instructors, nil
}
