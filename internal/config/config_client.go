package config

import (
	"fmt"
)

// ClientConfig is the configuration view consumed by the interactive
// terminal client. It reuses the structured sections relevant to a
// client process; the control API server section is omitted because the
// TUI renders engine state directly.
type ClientConfig struct {
	// App contains application-level client settings.
	App App
	// Remote contains remote-store connection settings.
	Remote Remote
	// Storage contains local persistence settings.
	Storage Storage
	// Sync contains synchronization engine settings.
	Sync Sync
	// Migration contains migration pipeline settings.
	Migration Migration
	// Workers contains background job settings.
	Workers Workers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientView()
	return clientCfg, clientCfg.validate()
}

// ClientView maps the merged configuration onto the sections the engine
// wiring consumes. The daemon uses it too: the Server section stays on
// the [StructuredConfig] and only reaches the HTTP layer.
func (cfg *StructuredConfig) ClientView() *ClientConfig {
	return &ClientConfig{
		App:       cfg.App,
		Remote:    cfg.Remote,
		Storage:   cfg.Storage,
		Sync:      cfg.Sync,
		Migration: cfg.Migration,
		Workers:   cfg.Workers,
	}
}
