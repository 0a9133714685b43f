// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// client invariants before it is used at startup.
//
// Endpoint and path settings have no defaults, so this is where a bare
// invocation gets rejected with an actionable error.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.Blobs.Dir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Remote.BaseURL == "" || cfg.Remote.RequestTimeout == 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Cache.MaxBytes <= 0 {
		return ErrInvalidCacheConfigs
	}
	if cfg.Cache.HeadroomPercent < 0 || cfg.Cache.HeadroomPercent >= 100 {
		return ErrInvalidCacheConfigs
	}
	if cfg.Cache.MaxAge < 0 {
		return ErrInvalidCacheConfigs
	}

	if cfg.Queue.MaxAttempts <= 0 || cfg.Queue.BackoffBase <= 0 {
		return ErrInvalidQueueConfigs
	}
	if cfg.Queue.BackoffCap < cfg.Queue.BackoffBase {
		return ErrInvalidQueueConfigs
	}

	if cfg.Workers.SyncInterval == 0 || cfg.Workers.DrainInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
