// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for content hashing, HTTP response writing,
// HTTP client initialization, JWT claim inspection,
// and identifier generation.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"sync"
)

// digestPool is a package-level pool of reusable SHA-256 hash instances.
// Rendering bursts hash every artifact they produce; pooling keeps the
// per-render allocations flat.
var digestPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// SumSHA256 computes the SHA-256 digest of the given byte slice using a
// hasher pulled from the pool and returns it hex-encoded in lowercase.
//
// Rendered artifacts are content-addressed by this digest: identical
// bytes always map onto the same blob file regardless of which tier
// produced them.
//
// Example usage:
//
//	digest := utils.SumSHA256(pageBytes)
func SumSHA256(data []byte) string {
	h := digestPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	digestPool.Put(h)

	return hex.EncodeToString(sum)
}

// SumReader consumes r to EOF and returns the lowercase hex SHA-256
// digest together with the number of bytes read.
//
// Used when artifact bytes are streamed to disk and hashing a second
// in-memory copy would double peak memory.
func SumReader(r io.Reader) (string, int64, error) {
	h := digestPool.Get().(hash.Hash)
	h.Reset()

	n, err := io.Copy(h, r)
	if err != nil {
		h.Reset()
		digestPool.Put(h)
		return "", 0, err
	}
	sum := h.Sum(nil)

	h.Reset()
	digestPool.Put(h)

	return hex.EncodeToString(sum), n, nil
}
