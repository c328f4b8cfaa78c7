package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
)

type kvStateRepository struct {
	*DB
	logger *logger.Logger
}

func NewKVStateRepository(db *DB, logger *logger.Logger) KVStateRepository {
	return &kvStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (k *kvStateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	var value []byte
	row := k.DB.QueryRowContext(ctx, getStateValue, key)

	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		log.Err(err).
			Str("func", "kvStateRepository.Get").
			Str("key", key).
			Msg("failed to scan state value")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (k *kvStateRepository) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	_, err := k.DB.ExecContext(ctx, setStateValue, key, value)
	if err != nil {
		log.Err(err).
			Str("func", "kvStateRepository.Set").
			Str("key", key).
			Msg("failed to execute upsert for state value")
		return fmt.Errorf("failed to set state value (key=%s): %w", key, err)
	}

	return nil
}

func (k *kvStateRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	_, err := k.DB.ExecContext(ctx, deleteStateValue, key)
	if err != nil {
		log.Err(err).
			Str("func", "kvStateRepository.Delete").
			Str("key", key).
			Msg("failed to execute delete for state value")
		return fmt.Errorf("failed to delete state value (key=%s): %w", key, err)
	}

	return nil
}
