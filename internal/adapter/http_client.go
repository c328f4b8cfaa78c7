package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/models"
	"github.com/go-resty/resty/v2"
)

// restRemoteStore is the HTTP/REST implementation of [RemoteStore]. It speaks
// the PostgREST dialect: one route per table, filters as query parameters
// (user_id=eq.X), upserts via the on_conflict parameter and the
// resolution=merge-duplicates preference.
type restRemoteStore struct {
	client *resty.Client
	apiKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewRESTRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from cfg.BaseURL and configures the
// underlying HTTP client with the resolved base URL, request timeout and the
// static API key header.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewRESTRemoteStore(cfg config.Remote, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	if cfg.APIKey != "" {
		client.SetHeader("apikey", cfg.APIKey)
	}

	return &restRemoteStore{client: client, apiKey: cfg.APIKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (r *restRemoteStore) SetToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (r *restRemoteStore) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

// remoteRow is the wire representation of one record row. Singleton tables
// (user_profiles, user_preferences) have no id column; collection tables key
// rows by (user_id, id).
type remoteRow struct {
	ID             string          `json:"id,omitempty"`
	UserID         string          `json:"user_id"`
	Payload        json.RawMessage `json:"payload"`
	Deleted        bool            `json:"deleted"`
	SyncVersion    int64           `json:"sync_version"`
	DeviceID       string          `json:"device_id"`
	LastModifiedAt time.Time       `json:"last_modified_at"`
	UpdatedAt      time.Time       `json:"updated_at,omitempty"`
}

func rowFromRecord(record models.Record) remoteRow {
	row := remoteRow{
		UserID:         record.UserID,
		Payload:        record.Payload,
		Deleted:        record.Deleted,
		SyncVersion:    record.Sync.SyncVersion,
		DeviceID:       record.Sync.DeviceID,
		LastModifiedAt: record.Sync.LastModifiedAt,
	}
	if !record.Category.Singleton() {
		row.ID = record.CategoryID
	}
	return row
}

func recordFromRow(category models.DataCategory, row remoteRow) models.Record {
	categoryID := row.ID
	if category.Singleton() {
		categoryID = models.SingletonID
	}

	return models.Record{
		UserID:     row.UserID,
		Category:   category,
		CategoryID: categoryID,
		Payload:    []byte(row.Payload),
		Deleted:    row.Deleted,
		Sync: models.SyncMetadata{
			LastModifiedAt: row.LastModifiedAt,
			SyncVersion:    row.SyncVersion,
			DeviceID:       row.DeviceID,
			UpdatedAt:      row.UpdatedAt,
		},
	}
}

// conflictTarget returns the on_conflict column list for the category's table.
func conflictTarget(category models.DataCategory) string {
	if category.Singleton() {
		return "user_id"
	}
	return "user_id,id"
}

// Upsert implements [RemoteStore]. It POSTs the record row to the category's
// table route with resolution=merge-duplicates, so the same request covers
// both insert and update. Requires a valid bearer token.
func (r *restRemoteStore) Upsert(ctx context.Context, record models.Record) error {
	resp, err := r.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetQueryParam("on_conflict", conflictTarget(record.Category)).
		SetBody([]remoteRow{rowFromRecord(record)}).
		Post("/" + record.Category.RemoteTable())
	if err != nil {
		return models.NewSyncError(models.KindNetwork, "upsert", record.Category, err)
	}

	return remoteError("upsert", record.Category, resp)
}

// Fetch implements [RemoteStore]. It GETs every row of the category's table
// belonging to userID, tombstones included. Requires a valid bearer token.
func (r *restRemoteStore) Fetch(ctx context.Context, userID string, category models.DataCategory) ([]models.Record, error) {
	return r.fetch(ctx, userID, category, time.Time{})
}

// FetchUpdatedSince implements [RemoteStore]. It narrows the Fetch result to
// rows whose updated_at is at or after since.
func (r *restRemoteStore) FetchUpdatedSince(ctx context.Context, userID string, category models.DataCategory, since time.Time) ([]models.Record, error) {
	return r.fetch(ctx, userID, category, since)
}

func (r *restRemoteStore) fetch(ctx context.Context, userID string, category models.DataCategory, since time.Time) ([]models.Record, error) {
	req := r.authedRequest(ctx).
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("order", "last_modified_at")

	if !since.IsZero() {
		req.SetQueryParam("updated_at", "gte."+since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get("/" + category.RemoteTable())
	if err != nil {
		return nil, models.NewSyncError(models.KindNetwork, "fetch", category, err)
	}
	if err = remoteError("fetch", category, resp); err != nil {
		return nil, err
	}

	var rows []remoteRow
	if err = json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, models.NewSyncError(models.KindValidation, "fetch", category, fmt.Errorf("decode response: %w", err))
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(category, row))
	}

	return records, nil
}

// Delete implements [RemoteStore]. It PATCHes the row into a tombstone rather
// than removing it, so other devices observe the deletion.
func (r *restRemoteStore) Delete(ctx context.Context, userID string, key models.RecordKey) error {
	req := r.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("user_id", "eq."+userID).
		SetBody(map[string]any{
			"deleted":          true,
			"last_modified_at": time.Now().UTC().Format(time.RFC3339Nano),
		})

	if !key.Category.Singleton() {
		req.SetQueryParam("id", "eq."+key.CategoryID)
	}

	resp, err := req.Patch("/" + key.Category.RemoteTable())
	if err != nil {
		return models.NewSyncError(models.KindNetwork, "delete", key.Category, err)
	}

	return remoteError("delete", key.Category, resp)
}

// DeleteAllForUser implements [RemoteStore]. It issues a hard DELETE per
// category table. Only the migration engine calls this, during rollback.
func (r *restRemoteStore) DeleteAllForUser(ctx context.Context, userID string) error {
	for _, category := range models.AllDataCategories {
		resp, err := r.authedRequest(ctx).
			SetQueryParam("user_id", "eq."+userID).
			Delete("/" + category.RemoteTable())
		if err != nil {
			return models.NewSyncError(models.KindNetwork, "delete_all", category, err)
		}
		if err = remoteError("delete_all", category, resp); err != nil {
			return err
		}
	}

	return nil
}

// Ping implements [RemoteStore]. Any HTTP response, success or failure, means
// the backend is reachable; only a transport error counts as offline.
func (r *restRemoteStore) Ping(ctx context.Context) error {
	_, err := r.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return models.NewSyncError(models.KindNetwork, "ping", "", err)
	}

	return nil
}

func (r *restRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := r.client.R().SetContext(ctx)
	if token := r.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
