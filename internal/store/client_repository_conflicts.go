package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type conflictAuditRepository struct {
	*DB
	logger *logger.Logger
}

func NewConflictAuditRepository(db *DB, logger *logger.Logger) ConflictAuditRepository {
	return &conflictAuditRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *conflictAuditRepository) SaveConflict(ctx context.Context, conflict models.ConflictRecord) error {
	log := logger.FromContext(ctx)

	_, err := c.DB.ExecContext(ctx, saveConflict,
		conflict.ID,
		conflict.UserID,
		conflict.Category.String(),
		conflict.CategoryID,
		nullableTime(conflict.LocalModifiedAt),
		nullableTime(conflict.RemoteModifiedAt),
		string(conflict.Winner),
		string(conflict.Strategy),
		conflict.DetectedAt,
		conflict.Pending,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictAuditRepository.SaveConflict").
			Str("user_id", conflict.UserID).
			Str("conflict_id", conflict.ID).
			Msg("failed to execute insert for conflict record")
		return fmt.Errorf("failed to save conflict (id=%s): %w", conflict.ID, err)
	}

	return nil
}

func (c *conflictAuditRepository) GetPendingConflicts(ctx context.Context, userID string) ([]models.ConflictRecord, error) {
	return c.queryConflicts(ctx, "conflictAuditRepository.GetPendingConflicts", getPendingConflicts, userID)
}

func (c *conflictAuditRepository) GetAllConflicts(ctx context.Context, userID string) ([]models.ConflictRecord, error) {
	return c.queryConflicts(ctx, "conflictAuditRepository.GetAllConflicts", getAllConflicts, userID)
}

func (c *conflictAuditRepository) ResolveConflict(ctx context.Context, conflictID string, winner models.ConflictWinner) error {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, resolveConflict, string(winner), conflictID)
	if err != nil {
		log.Err(err).
			Str("func", "conflictAuditRepository.ResolveConflict").
			Str("conflict_id", conflictID).
			Msg("failed to execute resolve for conflict record")
		return fmt.Errorf("failed to resolve conflict (id=%s): %w", conflictID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "conflictAuditRepository.ResolveConflict").
			Str("conflict_id", conflictID).
			Msg("failed to get rows affected after resolve")
		return fmt.Errorf("failed to get rows affected (id=%s): %w", conflictID, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "conflictAuditRepository.ResolveConflict").
			Str("conflict_id", conflictID).
			Msg("no rows affected during resolve: conflict not found or already resolved")
		return ErrConflictNotFound
	}

	return nil
}

func (c *conflictAuditRepository) queryConflicts(ctx context.Context, funcName string, query string, userID string) ([]models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, query, userID)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("user_id", userID).
			Msg("failed to execute query for getting conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.ConflictRecord

	for rows.Next() {
		var (
			item          models.ConflictRecord
			category      string
			winner        string
			strategy      string
			localModified sql.NullTime
			remoteModifed sql.NullTime
		)

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&category,
			&item.CategoryID,
			&localModified,
			&remoteModifed,
			&winner,
			&strategy,
			&item.DetectedAt,
			&item.Pending,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Str("user_id", userID).
				Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		parsedCategory, parseErr := models.ParseDataCategory(category)
		if parseErr != nil {
			return nil, parseErr
		}

		item.Category = parsedCategory
		item.Winner = models.ConflictWinner(winner)
		item.Strategy = models.ConflictStrategy(strategy)
		item.LocalModifiedAt = localModified.Time
		item.RemoteModifiedAt = remoteModifed.Time

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating conflict rows: %w", rowsErr)
	}

	return items, nil
}
