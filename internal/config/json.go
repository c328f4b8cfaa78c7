package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		DeviceID    string `json:"device_id"`
		Version     string `json:"version"`
		LogFilePath string `json:"log_file"`
	} `json:"app,omitempty"`

	Remote struct {
		Backend        string   `json:"backend"`
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		DSN            string   `json:"dsn"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		MaxRetries       int      `json:"max_retries"`
		BaseDelay        Duration `json:"base_delay"`
		MaxDelay         Duration `json:"max_delay"`
		CacheTTL         Duration `json:"cache_ttl"`
		DrainInterval    Duration `json:"drain_interval"`
		ProbeInterval    Duration `json:"probe_interval"`
		ConflictStrategy string   `json:"conflict_strategy"`
	} `json:"sync,omitempty"`

	Migration struct {
		MaxRetries          int      `json:"max_retries"`
		BaseDelay           Duration `json:"base_delay"`
		MaxDelay            Duration `json:"max_delay"`
		Timeout             Duration `json:"timeout"`
		BackupEnabled       bool     `json:"backup_enabled"`
		PreValidate         bool     `json:"pre_validate"`
		ClearLocalOnSuccess bool     `json:"clear_local_on_success"`
	} `json:"migration,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		DeltaRefreshInterval Duration `json:"delta_refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DeviceID:    jsonCfg.App.DeviceID,
			Version:     jsonCfg.App.Version,
			LogFilePath: jsonCfg.App.LogFilePath,
		},
		Remote: Remote{
			Backend:        RemoteBackend(jsonCfg.Remote.Backend),
			BaseURL:        jsonCfg.Remote.BaseURL,
			APIKey:         jsonCfg.Remote.APIKey,
			DSN:            jsonCfg.Remote.DSN,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Sync: Sync{
			MaxRetries:       jsonCfg.Sync.MaxRetries,
			BaseDelay:        time.Duration(jsonCfg.Sync.BaseDelay),
			MaxDelay:         time.Duration(jsonCfg.Sync.MaxDelay),
			CacheTTL:         time.Duration(jsonCfg.Sync.CacheTTL),
			DrainInterval:    time.Duration(jsonCfg.Sync.DrainInterval),
			ProbeInterval:    time.Duration(jsonCfg.Sync.ProbeInterval),
			ConflictStrategy: jsonCfg.Sync.ConflictStrategy,
		},
		Migration: Migration{
			MaxRetries:          jsonCfg.Migration.MaxRetries,
			BaseDelay:           time.Duration(jsonCfg.Migration.BaseDelay),
			MaxDelay:            time.Duration(jsonCfg.Migration.MaxDelay),
			Timeout:             time.Duration(jsonCfg.Migration.Timeout),
			BackupEnabled:       jsonCfg.Migration.BackupEnabled,
			PreValidate:         jsonCfg.Migration.PreValidate,
			ClearLocalOnSuccess: jsonCfg.Migration.ClearLocalOnSuccess,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			DeltaRefreshInterval: time.Duration(jsonCfg.Workers.DeltaRefreshInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
