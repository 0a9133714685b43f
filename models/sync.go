package models

import (
	"encoding/json"
	"time"
)

// EntityClass partitions the synced library into independently
// versioned record streams, each with its own cursor.
type EntityClass int

const (
	ClassDocument   EntityClass = 1
	ClassAnnotation EntityClass = 2
	ClassCollection EntityClass = 3
)

// String returns the lowercase name used in cursor rows and logs.
func (c EntityClass) String() string {
	switch c {
	case ClassDocument:
		return "document"
	case ClassAnnotation:
		return "annotation"
	case ClassCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// ManifestRecord is one server-side library record as reported by the
// sync manifest endpoint.
type ManifestRecord struct {
	EntityID  string          `json:"entity_id"`
	Class     EntityClass     `json:"class"`
	Version   int64           `json:"version"`
	Hash      string          `json:"hash"`
	Deleted   bool            `json:"deleted"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// LibraryRecord is the locally stored counterpart of a ManifestRecord.
type LibraryRecord struct {
	EntityID string
	Class    EntityClass
	Version  int64
	Hash     string
	Deleted  bool

	// Dirty marks records changed locally since the last completed push.
	Dirty bool

	Payload   []byte
	UpdatedAt *time.Time
}

// SyncCursor is the opaque progress marker for one entity class.
// The value is produced by the server and never interpreted locally.
type SyncCursor struct {
	Class     EntityClass
	Value     string
	UpdatedAt time.Time
}

// SyncPhase is the current step of the sync cycle state machine.
type SyncPhase int32

const (
	PhaseIdle      SyncPhase = 0
	PhasePulling   SyncPhase = 1
	PhaseApplying  SyncPhase = 2
	PhasePushing   SyncPhase = 3
	PhaseResolving SyncPhase = 4
)

func (p SyncPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePulling:
		return "pulling"
	case PhaseApplying:
		return "applying"
	case PhasePushing:
		return "pushing"
	case PhaseResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// ConflictResolution records how a conflict was settled.
type ConflictResolution int

const (
	// ResolutionNone marks a conflict still awaiting a decision.
	ResolutionNone ConflictResolution = 0

	// ResolutionUseRemote discards local edits in favor of the server record.
	ResolutionUseRemote ConflictResolution = 1

	// ResolutionUseLocal keeps local edits and re-pushes them on top of
	// the remote version.
	ResolutionUseLocal ConflictResolution = 2

	// ResolutionMerged applies a caller-provided merged payload.
	ResolutionMerged ConflictResolution = 3
)

// Conflict captures a record edited both locally and remotely between
// two sync cycles.
type Conflict struct {
	ID            string
	EntityID      string
	Class         EntityClass
	LocalVersion  int64
	RemoteVersion int64
	LocalPayload  []byte
	RemotePayload []byte
	DetectedAt    time.Time
	Resolution    ConflictResolution
	ResolvedAt    *time.Time
}

// Resolved reports whether the conflict has been settled.
func (c Conflict) Resolved() bool {
	return c.Resolution != ResolutionNone
}

// SyncSummary aggregates the outcome of one completed sync cycle.
type SyncSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time

	Pulled    int
	Applied   int
	Deleted   int
	Pushed    int
	Conflicts int

	// CursorsAdvanced lists the entity classes whose cursors moved
	// forward during the cycle.
	CursorsAdvanced []EntityClass
}
