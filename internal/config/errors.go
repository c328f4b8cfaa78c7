package config

import "errors"

// Validation errors returned by config validation when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid remote-store settings
	// (for example, an unknown backend, or a REST backend without a
	// base URL).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates invalid synchronization settings
	// (for example, a zero retry ceiling or an unknown conflict strategy).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidMigrationConfigs indicates invalid migration settings
	// (for example, a max delay below the base delay).
	ErrInvalidMigrationConfigs = errors.New("invalid migration configuration")
	// ErrInvalidServerConfigs indicates invalid control API settings
	// (for example, an address without a request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero refresh interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
