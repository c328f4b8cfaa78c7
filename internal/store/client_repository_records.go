package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type localRecordRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localRecordRepository) SaveRecord(ctx context.Context, record models.Record) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, saveRecord,
		record.UserID,
		record.Category.String(),
		record.CategoryID,
		record.Payload,
		record.Deleted,
		record.Sync.Dirty,
		record.Sync.SyncVersion,
		record.Sync.DeviceID,
		nullableTime(record.Sync.LastModifiedAt),
		nullableTime(record.Sync.LastSyncedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.SaveRecord").
			Str("user_id", record.UserID).
			Str("record_key", record.Key().String()).
			Msg("failed to execute upsert for record")
		return fmt.Errorf("failed to save record (%s): %w", record.Key(), err)
	}

	return nil
}

func (l *localRecordRepository) GetRecord(ctx context.Context, userID string, key models.RecordKey) (models.Record, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getSingleRecord, userID, key.Category.String(), key.CategoryID)
	if row.Err() != nil {
		err := row.Err()
		log.Err(err).
			Str("func", "localRecordRepository.GetRecord").
			Str("user_id", userID).
			Str("record_key", key.String()).
			Msg("failed to execute query for getting requested record")
		return models.Record{}, fmt.Errorf("failed to query requested record: %w", err)
	}

	item, scanErr := scanRecord(row)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(scanErr).
			Str("func", "localRecordRepository.GetRecord").
			Str("user_id", userID).
			Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return item, nil
}

func (l *localRecordRepository) GetAllRecords(ctx context.Context, userID string) ([]models.Record, error) {
	return l.queryRecords(ctx, "localRecordRepository.GetAllRecords", getAllRecords, userID)
}

func (l *localRecordRepository) GetRecordsByCategory(ctx context.Context, userID string, category models.DataCategory) ([]models.Record, error) {
	return l.queryRecords(ctx, "localRecordRepository.GetRecordsByCategory", getRecordsByCategory, userID, category.String())
}

func (l *localRecordRepository) GetDirtyRecords(ctx context.Context, userID string) ([]models.Record, error) {
	return l.queryRecords(ctx, "localRecordRepository.GetDirtyRecords", getDirtyRecords, userID)
}

func (l *localRecordRepository) MarkSynced(ctx context.Context, userID string, key models.RecordKey, syncedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markRecordSynced, syncedAt, userID, key.Category.String(), key.CategoryID)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.MarkSynced").
			Str("user_id", userID).
			Str("record_key", key.String()).
			Msg("failed to execute mark synced for record")
		return fmt.Errorf("failed to mark record synced (%s): %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.MarkSynced").
			Str("user_id", userID).
			Str("record_key", key.String()).
			Msg("failed to get rows affected after mark synced")
		return fmt.Errorf("failed to get rows affected (%s): %w", key, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "localRecordRepository.MarkSynced").
			Str("user_id", userID).
			Str("record_key", key.String()).
			Msg("no rows affected during mark synced: record not found")
		return ErrRecordNotFound
	}

	return nil
}

func (l *localRecordRepository) DeleteRecord(ctx context.Context, userID string, key models.RecordKey) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, softDeleteRecord, userID, key.Category.String(), key.CategoryID)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.DeleteRecord").
			Str("user_id", userID).
			Str("record_key", key.String()).
			Msg("failed to execute soft delete for record")
		return fmt.Errorf("failed to delete record (%s): %w", key, err)
	}

	return nil
}

func (l *localRecordRepository) PurgeUserRecords(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, purgeUserRecords, userID)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.PurgeUserRecords").
			Str("user_id", userID).
			Msg("failed to execute purge for user records")
		return fmt.Errorf("failed to purge records for user %s: %w", userID, err)
	}

	return nil
}

func (l *localRecordRepository) queryRecords(ctx context.Context, funcName string, query string, args ...any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute query for getting records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Record

	for rows.Next() {
		item, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating record rows: %w", rowsErr)
	}

	return items, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		item         models.Record
		category     string
		lastModified sql.NullTime
		lastSynced   sql.NullTime
	)

	if err := row.Scan(
		&item.UserID,
		&category,
		&item.CategoryID,
		&item.Payload,
		&item.Deleted,
		&item.Sync.Dirty,
		&item.Sync.SyncVersion,
		&item.Sync.DeviceID,
		&lastModified,
		&lastSynced,
	); err != nil {
		return models.Record{}, err
	}

	parsedCategory, err := models.ParseDataCategory(category)
	if err != nil {
		return models.Record{}, err
	}

	item.Category = parsedCategory
	item.Sync.LastModifiedAt = lastModified.Time
	item.Sync.LastSyncedAt = lastSynced.Time

	return item, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
