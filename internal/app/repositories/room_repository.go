package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// RoomRepository handles room reads.
type RoomRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListRooms retrieves all configured rooms.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	sql, args, err := r.sb.Select("id", "room_id", "capacity", "is_lab", "building", "floor").
		From("rooms").
		OrderBy("room_id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list rooms SQL")
		return nil, fmt.Errorf("failed to build list rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list rooms query")
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.RoomID, &room.Capacity, &room.IsLab, &room.Building, &room.Floor); err != nil {
			logger.Error().Err(err).Msg("Error scanning room row")
			return nil, fmt.Errorf("error scanning room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, nil
}
