package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-fit-keeper/internal/store"
)

const deviceStateKey = "fitkeeper:device_id"

// ensureDeviceID returns the configured device identifier or, when none
// is configured, a generated one persisted in the state store so the
// same installation keeps stamping the same identity across restarts.
func ensureDeviceID(ctx context.Context, configured string, states store.KVStateRepository) (string, error) {
	if configured != "" {
		return configured, nil
	}

	raw, err := states.Get(ctx, deviceStateKey)
	if err == nil && len(raw) > 0 {
		return string(raw), nil
	}
	if err != nil && !errors.Is(err, store.ErrStateNotFound) {
		return "", err
	}

	id := uuid.NewString()
	if err := states.Set(ctx, deviceStateKey, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}
