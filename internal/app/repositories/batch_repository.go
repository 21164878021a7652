package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// BatchRepository handles student batch reads.
type BatchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListBatches retrieves all configured student batches.
func (r *BatchRepository) ListBatches(ctx context.Context) ([]models.Batch, error) {
	sql, args, err := r.sb.Select("id", "batch_id", "programme", "size", "year").
		From("batches").
		OrderBy("batch_id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list batches SQL")
		return nil, fmt.Errorf("failed to build list batches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list batches query")
		return nil, fmt.Errorf("error querying batches: %w", err)
	}
	defer rows.Close()

	batches := []models.Batch{}
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(&b.ID, &b.BatchID, &b.Programme, &b.Size, &b.Year); err != nil {
			logger.Error().Err(err).Msg("Error scanning batch row")
			return nil, fmt.Errorf("error scanning batch row: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}

	return batches, nil
}
