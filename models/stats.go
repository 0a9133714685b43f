// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BuildInfo carries build-time metadata injected via linker flags.
// It is surfaced by the diagnostics endpoint for release traceability.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
}

// CacheStats is a point-in-time snapshot of the page cache.
type CacheStats struct {
	Entries    int   `json:"entries"`
	TotalBytes int64 `json:"total_bytes"`
	MaxBytes   int64 `json:"max_bytes"`

	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Puts      int64 `json:"puts"`
	Evictions int64 `json:"evictions"`

	// OrphansRepaired counts entries dropped for a missing blob plus
	// blobs unlinked for a missing entry.
	OrphansRepaired int64 `json:"orphans_repaired"`
}

// RenderStats counts render outcomes per origin since process start.
type RenderStats struct {
	CacheHits     int64 `json:"cache_hits"`
	RemoteRenders int64 `json:"remote_renders"`
	NativeRenders int64 `json:"native_renders"`
	Preloads      int64 `json:"preloads"`
	Failures      int64 `json:"failures"`
}

// QueueStats is a point-in-time snapshot of the offline action queue.
type QueueStats struct {
	Pending  int `json:"pending"`
	InFlight int `json:"inflight"`
	Failed   int `json:"failed"`

	// OldestPending is the creation time of the oldest undelivered
	// action, nil when the queue is empty.
	OldestPending *time.Time `json:"oldest_pending,omitempty"`
}

// SyncStatus describes the sync coordinator for diagnostics.
type SyncStatus struct {
	Phase               SyncPhase    `json:"-"`
	PhaseName           string       `json:"phase"`
	LastCycleStarted    *time.Time   `json:"last_cycle_started,omitempty"`
	LastCycleFinished   *time.Time   `json:"last_cycle_finished,omitempty"`
	LastError           string       `json:"last_error,omitempty"`
	UnresolvedConflicts int          `json:"unresolved_conflicts"`
	Summary             *SyncSummary `json:"summary,omitempty"`
}
