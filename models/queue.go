// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ActionType defines the kind of user action recorded in the offline
// queue. The value determines how the payload must be interpreted when
// the action is replayed against the server.
type ActionType int

const (
	// ActionAnnotation creates or updates a highlight or note
	// attached to a document page.
	ActionAnnotation ActionType = 1

	// ActionFavorite toggles the favorite flag on a document.
	ActionFavorite ActionType = 2

	// ActionProgress records reading progress (last page, scroll offset).
	ActionProgress ActionType = 3

	// ActionMetadata edits user-visible document metadata
	// such as title overrides or tags.
	ActionMetadata ActionType = 4
)

// ActionStatus is the lifecycle state of a queued action.
type ActionStatus int

const (
	// StatusPending means the action waits for its next push attempt.
	StatusPending ActionStatus = 1

	// StatusInFlight means a drain cycle is currently pushing the action.
	// Rows left in this state after a crash are reset to pending on startup.
	StatusInFlight ActionStatus = 2

	// StatusFailed means the action exhausted its attempts or was
	// rejected by the server and needs user review.
	StatusFailed ActionStatus = 3
)

// String returns the lowercase name of the status for logs.
func (s ActionStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInFlight:
		return "inflight"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Class maps the action onto the entity class its target belongs to.
func (t ActionType) Class() EntityClass {
	if t == ActionAnnotation {
		return ClassAnnotation
	}
	return ClassDocument
}

// QueuedAction is a user action captured while offline, stored durably
// until it is acknowledged by the server.
type QueuedAction struct {
	// ID is a client-generated UUID. Version 7 is used so that the
	// lexicographic order of IDs matches creation order.
	ID string

	// Type defines how Payload is interpreted.
	Type ActionType

	// EntityID is the document or annotation the action applies to.
	// Actions that share an EntityID are replayed strictly in order.
	EntityID string

	// Payload is the opaque JSON body forwarded to the server.
	Payload []byte

	// BaseVersion is the entity version the action was made against.
	// The server uses it to detect pushes on top of stale state.
	BaseVersion int64

	Status        ActionStatus
	Attempts      int
	NextAttemptAt time.Time
	CreatedAt     time.Time

	// LastError keeps the most recent push failure for diagnostics.
	// Nil when the action never failed.
	LastError *string
}

// DrainSummary aggregates the outcome of one queue drain pass.
type DrainSummary struct {
	// Attempted is how many actions the pass pushed.
	Attempted int

	// Applied actions were accepted by the server and deleted locally.
	Applied int

	// Rescheduled actions hit a transient failure and wait for their
	// next attempt.
	Rescheduled int

	// Rejected actions failed permanently and await user review.
	Rejected int

	// Conflicts lists the version conflicts registered during the pass.
	Conflicts []Conflict

	// Blocked is how many due actions were withheld because an earlier
	// action of the same entity has not succeeded yet.
	Blocked int
}
