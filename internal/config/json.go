package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing. It exists so config files can write
// durations as "30s" instead of nanosecond integers.
type StructuredJSONConfig struct {
	App struct {
		ClientID string `json:"client_id"`
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
		LogFile  string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Blobs struct {
			Dir string `json:"dir"`
		} `json:"blobs,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		BaseURL        string   `json:"base_url"`
		AuthToken      string   `json:"auth_token"`
		RequestTimeout Duration `json:"request_timeout"`
		TicketSkew     Duration `json:"ticket_skew"`
	} `json:"remote,omitempty"`

	Cache struct {
		MaxBytes        int64    `json:"max_bytes"`
		HeadroomPercent int      `json:"headroom_percent"`
		MaxAge          Duration `json:"max_age"`
	} `json:"cache,omitempty"`

	Render struct {
		DefaultDPI     int      `json:"default_dpi"`
		DefaultFormat  string   `json:"default_format"`
		PreloadPages   int      `json:"preload_pages"`
		PreloadWorkers int      `json:"preload_workers"`
		NativeCommand  string   `json:"native_command"`
		NativeTimeout  Duration `json:"native_timeout"`
		DocumentDir    string   `json:"document_dir"`
	} `json:"render,omitempty"`

	Queue struct {
		MaxAttempts int      `json:"max_attempts"`
		BackoffBase Duration `json:"backoff_base"`
		BackoffCap  Duration `json:"backoff_cap"`
		BatchSize   int      `json:"batch_size"`
	} `json:"queue,omitempty"`

	Workers struct {
		SyncInterval        Duration `json:"sync_interval"`
		DrainInterval       Duration `json:"drain_interval"`
		MaintenanceInterval Duration `json:"maintenance_interval"`
	} `json:"workers,omitempty"`

	Diag struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"diag,omitempty"`

	Connectivity struct {
		ProbeURL      string   `json:"probe_url"`
		ProbeInterval Duration `json:"probe_interval"`
		AssumeOnline  bool     `json:"assume_online"`
		Metered       bool     `json:"metered"`
		UnmeteredOnly bool     `json:"unmetered_only"`
	} `json:"connectivity,omitempty"`
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
			ClientID: jsonCfg.App.ClientID,
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
			LogFile:  jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Blobs: Blobs{
				Dir: jsonCfg.Storage.Blobs.Dir,
			},
		},
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			AuthToken:      jsonCfg.Remote.AuthToken,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
			TicketSkew:     time.Duration(jsonCfg.Remote.TicketSkew),
		},
		Cache: Cache{
			MaxBytes:        jsonCfg.Cache.MaxBytes,
			HeadroomPercent: jsonCfg.Cache.HeadroomPercent,
			MaxAge:          time.Duration(jsonCfg.Cache.MaxAge),
		},
		Render: Render{
			DefaultDPI:     jsonCfg.Render.DefaultDPI,
			DefaultFormat:  jsonCfg.Render.DefaultFormat,
			PreloadPages:   jsonCfg.Render.PreloadPages,
			PreloadWorkers: jsonCfg.Render.PreloadWorkers,
			NativeCommand:  jsonCfg.Render.NativeCommand,
			NativeTimeout:  time.Duration(jsonCfg.Render.NativeTimeout),
			DocumentDir:    jsonCfg.Render.DocumentDir,
		},
		Queue: Queue{
			MaxAttempts: jsonCfg.Queue.MaxAttempts,
			BackoffBase: time.Duration(jsonCfg.Queue.BackoffBase),
			BackoffCap:  time.Duration(jsonCfg.Queue.BackoffCap),
			BatchSize:   jsonCfg.Queue.BatchSize,
		},
		Workers: Workers{
			SyncInterval:        time.Duration(jsonCfg.Workers.SyncInterval),
			DrainInterval:       time.Duration(jsonCfg.Workers.DrainInterval),
			MaintenanceInterval: time.Duration(jsonCfg.Workers.MaintenanceInterval),
		},
		Diag: Diag{
			Address:        jsonCfg.Diag.Address,
			RequestTimeout: time.Duration(jsonCfg.Diag.RequestTimeout),
		},
		Connectivity: Connectivity{
			ProbeURL:      jsonCfg.Connectivity.ProbeURL,
			ProbeInterval: time.Duration(jsonCfg.Connectivity.ProbeInterval),
			AssumeOnline:  jsonCfg.Connectivity.AssumeOnline,
			Metered:       jsonCfg.Connectivity.Metered,
			UnmeteredOnly: jsonCfg.Connectivity.UnmeteredOnly,
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
