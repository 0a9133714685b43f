package models

import "time"

// ManifestRequest describes one page of a sync manifest pull.
// It is encoded into query parameters of GET /api/sync/manifest.
type ManifestRequest struct {
	// Class selects the entity stream to pull.
	Class EntityClass `json:"class"`

	// Cursor is the opaque position returned by the previous page.
	// Empty on the first pull of a stream.
	Cursor string `json:"cursor,omitempty"`

	// Limit caps the number of records per page.
	// The server may return fewer.
	Limit int `json:"limit,omitempty"`
}

// ManifestResponse is one page of server-side library state.
type ManifestResponse struct {
	// Records are the library records changed since Cursor.
	Records []ManifestRecord `json:"records"`

	// NextCursor is the position to resume from. It is only durable
	// once the whole pull completed and every page was applied.
	NextCursor string `json:"next_cursor"`

	// HasMore signals that another page is available immediately.
	HasMore bool `json:"has_more"`
}

// PushRequest is a batch of queued actions replayed against the server.
// Actions appear in queue order; the server applies them sequentially.
type PushRequest struct {
	// ClientID identifies the pushing installation so the server can
	// exclude its own actions from subsequent manifests.
	ClientID string `json:"client_id"`

	Actions []PushAction `json:"actions"`
}

// PushAction is the wire form of a QueuedAction.
type PushAction struct {
	ID          string     `json:"id"`
	Type        ActionType `json:"type"`
	EntityID    string     `json:"entity_id"`
	BaseVersion int64      `json:"base_version"`
	Payload     []byte     `json:"payload,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PushOutcome classifies the server's verdict on a single pushed action.
type PushOutcome string

const (
	// PushApplied means the server accepted the action.
	PushApplied PushOutcome = "applied"

	// PushRejected means the action failed validation and will never
	// succeed; the client marks it failed without retrying.
	PushRejected PushOutcome = "rejected"

	// PushConflict means the action was made against a stale version;
	// the client registers a conflict and stops draining the entity.
	PushConflict PushOutcome = "conflict"
)

// PushReceipt is the server's per-action response to a push batch.
type PushReceipt struct {
	Results []PushResult `json:"results"`
}

// PushResult is the verdict for one pushed action.
type PushResult struct {
	ActionID string      `json:"action_id"`
	EntityID string      `json:"entity_id"`
	Outcome  PushOutcome `json:"outcome"`

	// NewVersion is the entity version after an applied action.
	NewVersion int64 `json:"new_version,omitempty"`

	// RemoteVersion is the current server version reported on conflict.
	RemoteVersion int64 `json:"remote_version,omitempty"`

	// Error describes a rejection in human-readable form.
	Error string `json:"error,omitempty"`
}

// ResultFor returns the result for the given action ID, if present.
func (r PushReceipt) ResultFor(actionID string) (PushResult, bool) {
	for _, res := range r.Results {
		if res.ActionID == actionID {
			return res, true
		}
	}
	return PushResult{}, false
}
