package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN, in-memory DSN, or missing blob directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRemoteConfigs indicates invalid library server settings
	// (for example, missing base URL or zero request timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidCacheConfigs indicates invalid page cache settings
	// (for example, a non-positive size ceiling).
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidQueueConfigs indicates invalid offline queue settings
	// (for example, zero attempts or a cap below the base backoff).
	ErrInvalidQueueConfigs = errors.New("invalid queue configuration")
)
