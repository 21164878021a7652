package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// SlotRepository handles time slot reads.
type SlotRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListSlots retrieves all time slots ordered by weekday then start time,
// which is the order the solver tables carry them in.
func (r *SlotRepository) ListSlots(ctx context.Context) ([]models.Slot, error) {
	sql, args, err := r.sb.Select("id", "slot_id", "day", "start_time", "end_time").
		From("slots").
		OrderBy(
			"array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday'], day)",
			"start_time ASC",
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list slots SQL")
		return nil, fmt.Errorf("failed to build list slots query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list slots query")
		return nil, fmt.Errorf("error querying slots: %w", err)
	}
	defer rows.Close()

	slots := []models.Slot{}
	for rows.Next() {
		var s models.Slot
		if err := rows.Scan(&s.ID, &s.SlotID, &s.Day, &s.StartTime, &s.EndTime); err != nil {
			logger.Error().Err(err).Msg("Error scanning slot row")
			return nil, fmt.Errorf("error scanning slot row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot rows: %w", err)
	}

	return slots, nil
}
