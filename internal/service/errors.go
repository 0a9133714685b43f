package service

import "errors"

// Sentinel errors returned by the service layer. Callers match them with
// [errors.Is].
var (
	// ErrOffline is returned when an operation needs the server but the
	// connectivity monitor reports the client offline.
	ErrOffline = errors.New("client is offline")

	// ErrRenderFailed is returned when every rendering tier failed for a
	// page. The wrapped error joins the per-tier causes.
	ErrRenderFailed = errors.New("page render failed")

	// ErrDrainInProgress is returned when a drain pass is requested while
	// another one is still running. Only one pass may touch the queue at
	// a time.
	ErrDrainInProgress = errors.New("queue drain already in progress")

	// ErrMergeNotRegistered is returned when a conflict resolution asks
	// for a merge but no merge function was registered for the entity
	// class.
	ErrMergeNotRegistered = errors.New("no merge function registered for entity class")

	// ErrUnknownResolution is returned when a conflict resolution value
	// is not one of use-remote, use-local, or merge.
	ErrUnknownResolution = errors.New("unknown conflict resolution")
)
