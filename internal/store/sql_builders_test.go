// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-digi-lib/models"
)

func Test_buildDueActionsQuery_SQLContainsParts(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	query, args, err := buildDueActionsQuery(now, 25)
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 2)
	require.Equal(t, models.StatusPending, args[0])
	require.Equal(t, now, args[1])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from action_queue")
	require.Contains(t, q, "where")
	require.Contains(t, q, "status")
	require.Contains(t, q, "next_attempt_at")
	require.Contains(t, q, "order by created_at asc")
	require.Contains(t, q, "limit 25")

	// placeholder format should be $1, $2
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$2")
}

func Test_buildDueActionsQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, _, err := buildDueActionsQuery(time.Now(), 10)
	require.NoError(t, err)

	q := strings.ToLower(query)

	// Check that all expected columns are present in the SELECT section.
	// This is a "contains" check; it does not enforce order but catches regressions quickly.
	cols := []string{
		"id",
		"type",
		"entity_id",
		"payload",
		"base_version",
		"status",
		"attempts",
		"next_attempt_at",
		"created_at",
		"last_error",
	}
	for _, c := range cols {
		require.Contains(t, q, c)
	}
}

func Test_buildDueActionsQuery_NoLimit(t *testing.T) {
	query, _, err := buildDueActionsQuery(time.Now(), 0)
	require.NoError(t, err)

	require.NotContains(t, strings.ToLower(query), "limit")
}

func Test_buildMarkInFlightQuery_SQLContainsParts(t *testing.T) {
	ids := []string{"a-1", "a-2", "a-3"}

	query, args, err := buildMarkInFlightQuery(ids)
	require.NoError(t, err)

	// first arg is the new status, the rest are the ids
	require.Len(t, args, 4)
	require.Equal(t, models.StatusInFlight, args[0])
	require.Equal(t, "a-1", args[1])
	require.Equal(t, "a-2", args[2])
	require.Equal(t, "a-3", args[3])

	q := strings.ToLower(query)

	require.Contains(t, q, "update action_queue")
	require.Contains(t, q, "set status")
	require.Contains(t, q, "where")

	// squirrel generates IN ($2,$3,$4) for a slice
	require.Contains(t, query, "IN ($2,$3,$4)")
}

func Test_buildEvictionCandidatesQuery_SQLContainsParts(t *testing.T) {
	query, args, err := buildEvictionCandidatesQuery(100)
	require.NoError(t, err)

	require.Empty(t, args)

	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from cache_entries")
	require.Contains(t, q, "order by last_accessed_at asc, size_bytes desc")
	require.Contains(t, q, "limit 100")
}

func Test_buildEvictionCandidatesQuery_NoLimit(t *testing.T) {
	query, _, err := buildEvictionCandidatesQuery(0)
	require.NoError(t, err)

	require.NotContains(t, strings.ToLower(query), "limit")
}

func Test_buildExpiredEntriesQuery_SQLContainsParts(t *testing.T) {
	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildExpiredEntriesQuery(cutoff)
	require.NoError(t, err)

	require.Len(t, args, 1)
	require.Equal(t, cutoff, args[0])

	q := strings.ToLower(query)

	require.Contains(t, q, "from cache_entries")
	require.Contains(t, q, "last_accessed_at <")
	require.Contains(t, q, "order by last_accessed_at asc")
	require.Contains(t, query, "$1")
}

func Test_buildOpenConflictsQuery_AllClasses(t *testing.T) {
	query, args, err := buildOpenConflictsQuery(0, 0)
	require.NoError(t, err)

	require.Len(t, args, 1)
	require.Equal(t, models.ResolutionNone, args[0])

	q := strings.ToLower(query)

	require.Contains(t, q, "from conflicts")
	require.Contains(t, q, "resolution")
	require.Contains(t, q, "order by detected_at asc")
	require.NotContains(t, q, "class =")
	require.NotContains(t, q, "limit")
}

func Test_buildOpenConflictsQuery_FilteredByClass(t *testing.T) {
	query, args, err := buildOpenConflictsQuery(models.ClassAnnotation, 10)
	require.NoError(t, err)

	require.Len(t, args, 2)
	require.Equal(t, models.ResolutionNone, args[0])
	require.Equal(t, models.ClassAnnotation, args[1])

	q := strings.ToLower(query)

	require.Contains(t, q, "class")
	require.Contains(t, q, "limit 10")
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$2")
}
