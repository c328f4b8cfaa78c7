// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := validateShared(cfg.Remote, cfg.Storage, cfg.Sync, cfg.Migration, cfg.Workers); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress != "" && cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	return validateShared(cfg.Remote, cfg.Storage, cfg.Sync, cfg.Migration, cfg.Workers)
}

// validateShared holds the rules common to the daemon and client views.
func validateShared(remote Remote, storage Storage, sync Sync, migration Migration, workers Workers) error {
	switch remote.Backend {
	case BackendREST:
		if remote.BaseURL == "" || remote.RequestTimeout == 0 {
			return ErrInvalidRemoteConfigs
		}
	case BackendPostgres:
		if remote.DSN == "" {
			return ErrInvalidRemoteConfigs
		}
	default:
		return ErrInvalidRemoteConfigs
	}

	// The durable queue must survive restarts, so in-memory SQLite is rejected.
	if storage.DB.DSN == "" || strings.Contains(storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if sync.MaxRetries < 1 || sync.BaseDelay <= 0 || sync.MaxDelay < sync.BaseDelay {
		return ErrInvalidSyncConfigs
	}
	if sync.CacheTTL < 0 || sync.DrainInterval <= 0 || sync.ProbeInterval <= 0 {
		return ErrInvalidSyncConfigs
	}
	switch sync.ConflictStrategy {
	case "auto", "local_wins", "remote_wins", "manual":
	default:
		return ErrInvalidSyncConfigs
	}

	if migration.MaxRetries < 1 || migration.BaseDelay <= 0 || migration.MaxDelay < migration.BaseDelay {
		return ErrInvalidMigrationConfigs
	}
	if migration.Timeout < 0 {
		return ErrInvalidMigrationConfigs
	}

	if workers.DeltaRefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
