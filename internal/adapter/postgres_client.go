package adapter

import (
	"context"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/models"
)

// postgresRemoteStore is the direct-SQL implementation of [RemoteStore] for
// self-hosted deployments that talk to Postgres without a REST gateway.
// Queries are built with squirrel using dollar placeholders.
type postgresRemoteStore struct {
	db     *store.DB
	logger *logger.Logger

	// The bearer token is kept only for interface parity: row-level
	// authorisation is enforced by the database role the DSN connects as.
	mu    sync.RWMutex
	token string
}

// NewPostgresRemoteStore connects to the remote Postgres database described by
// cfg.DSN, applies pending remote schema migrations, and returns a
// [RemoteStore] executing SQL directly.
func NewPostgresRemoteStore(ctx context.Context, cfg config.Remote, logger *logger.Logger) (RemoteStore, error) {
	db, err := store.NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.MigrateRemote(); err != nil {
		return nil, err
	}

	return &postgresRemoteStore{db: db, logger: logger}, nil
}

func (p *postgresRemoteStore) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = strings.TrimSpace(token)
}

func (p *postgresRemoteStore) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Upsert implements [RemoteStore] with INSERT ... ON CONFLICT DO UPDATE keyed
// by the category's conflict target.
func (p *postgresRemoteStore) Upsert(ctx context.Context, record models.Record) error {
	log := logger.FromContext(ctx)

	builder := psql.Insert(record.Category.RemoteTable())
	if record.Category.Singleton() {
		builder = builder.
			Columns("user_id", "payload", "deleted", "sync_version", "device_id", "last_modified_at").
			Values(record.UserID, record.Payload, record.Deleted, record.Sync.SyncVersion, record.Sync.DeviceID, record.Sync.LastModifiedAt).
			Suffix(`ON CONFLICT (user_id) DO UPDATE SET
				payload          = EXCLUDED.payload,
				deleted          = EXCLUDED.deleted,
				sync_version     = EXCLUDED.sync_version,
				device_id        = EXCLUDED.device_id,
				last_modified_at = EXCLUDED.last_modified_at,
				updated_at       = now()`)
	} else {
		builder = builder.
			Columns("id", "user_id", "payload", "deleted", "sync_version", "device_id", "last_modified_at").
			Values(record.CategoryID, record.UserID, record.Payload, record.Deleted, record.Sync.SyncVersion, record.Sync.DeviceID, record.Sync.LastModifiedAt).
			Suffix(`ON CONFLICT (user_id, id) DO UPDATE SET
				payload          = EXCLUDED.payload,
				deleted          = EXCLUDED.deleted,
				sync_version     = EXCLUDED.sync_version,
				device_id        = EXCLUDED.device_id,
				last_modified_at = EXCLUDED.last_modified_at,
				updated_at       = now()`)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "postgresRemoteStore.Upsert").
			Str("record_key", record.Key().String()).
			Msg("failed to build upsert query")
		return models.NewSyncError(models.KindValidation, "upsert", record.Category, err)
	}

	if _, err = p.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "postgresRemoteStore.Upsert").
			Str("user_id", record.UserID).
			Str("record_key", record.Key().String()).
			Msg("failed to execute remote upsert")
		return models.NewSyncError(store.PgErrorKind(err), "upsert", record.Category, err)
	}

	return nil
}

// Fetch implements [RemoteStore].
func (p *postgresRemoteStore) Fetch(ctx context.Context, userID string, category models.DataCategory) ([]models.Record, error) {
	return p.fetch(ctx, userID, category, time.Time{})
}

// FetchUpdatedSince implements [RemoteStore].
func (p *postgresRemoteStore) FetchUpdatedSince(ctx context.Context, userID string, category models.DataCategory, since time.Time) ([]models.Record, error) {
	return p.fetch(ctx, userID, category, since)
}

func (p *postgresRemoteStore) fetch(ctx context.Context, userID string, category models.DataCategory, since time.Time) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	columns := []string{"user_id", "payload", "deleted", "sync_version", "device_id", "last_modified_at", "updated_at"}
	if !category.Singleton() {
		columns = append([]string{"id"}, columns...)
	}

	builder := psql.Select(columns...).
		From(category.RemoteTable()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("last_modified_at")

	if !since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"updated_at": since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, models.NewSyncError(models.KindValidation, "fetch", category, err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "postgresRemoteStore.fetch").
			Str("user_id", userID).
			Str("category", category.String()).
			Msg("failed to execute remote fetch")
		return nil, models.NewSyncError(store.PgErrorKind(err), "fetch", category, err)
	}
	defer rows.Close()

	var records []models.Record

	for rows.Next() {
		record := models.Record{Category: category, CategoryID: models.SingletonID}

		dest := []any{&record.UserID, &record.Payload, &record.Deleted, &record.Sync.SyncVersion, &record.Sync.DeviceID, &record.Sync.LastModifiedAt, &record.Sync.UpdatedAt}
		if !category.Singleton() {
			dest = append([]any{&record.CategoryID}, dest...)
		}

		if scanErr := rows.Scan(dest...); scanErr != nil {
			log.Err(scanErr).
				Str("func", "postgresRemoteStore.fetch").
				Str("user_id", userID).
				Str("category", category.String()).
				Msg("failed to scan remote record row")
			return nil, models.NewSyncError(models.KindValidation, "fetch", category, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, models.NewSyncError(store.PgErrorKind(rowsErr), "fetch", category, rowsErr)
	}

	return records, nil
}

// Delete implements [RemoteStore] as a tombstone update.
func (p *postgresRemoteStore) Delete(ctx context.Context, userID string, key models.RecordKey) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	builder := psql.Update(key.Category.RemoteTable()).
		Set("deleted", true).
		Set("last_modified_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID})

	if !key.Category.Singleton() {
		builder = builder.Where(sq.Eq{"id": key.CategoryID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.NewSyncError(models.KindValidation, "delete", key.Category, err)
	}

	if _, err = p.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "postgresRemoteStore.Delete").
			Str("user_id", userID).
			Str("record_key", key.String()).
			Msg("failed to execute remote tombstone update")
		return models.NewSyncError(store.PgErrorKind(err), "delete", key.Category, err)
	}

	return nil
}

// DeleteAllForUser implements [RemoteStore]. Tables are cleared one by one in
// a single transaction so a failed rollback never leaves partial state.
func (p *postgresRemoteStore) DeleteAllForUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "postgresRemoteStore.DeleteAllForUser").Msg("error during opening transaction")
		return models.NewSyncError(store.PgErrorKind(err), "delete_all", "", err)
	}
	defer tx.Rollback()

	for _, category := range models.AllDataCategories {
		query, args, buildErr := psql.Delete(category.RemoteTable()).Where(sq.Eq{"user_id": userID}).ToSql()
		if buildErr != nil {
			return models.NewSyncError(models.KindValidation, "delete_all", category, buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "postgresRemoteStore.DeleteAllForUser").
				Str("user_id", userID).
				Str("category", category.String()).
				Msg("failed to clear remote table")
			return models.NewSyncError(store.PgErrorKind(execErr), "delete_all", category, execErr)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.NewSyncError(store.PgErrorKind(err), "delete_all", "", err)
	}

	return nil
}

// Ping implements [RemoteStore].
func (p *postgresRemoteStore) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return models.NewSyncError(models.KindNetwork, "ping", "", err)
	}

	return nil
}
