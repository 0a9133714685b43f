package models

import (
	"fmt"
	"time"
)

// RenderFormat defines the image encoding of a rendered page artifact.
type RenderFormat string

const (
	// FormatPNG is the lossless default used for page renders.
	FormatPNG RenderFormat = "png"

	// FormatWebP is the compact encoding preferred for thumbnails.
	FormatWebP RenderFormat = "webp"

	// FormatJPEG is accepted from remote renderers that do not
	// support the preferred formats.
	FormatJPEG RenderFormat = "jpeg"
)

// RenderOrigin identifies which tier of the rendering fallback chain
// produced a result.
type RenderOrigin int

const (
	// OriginCache means the artifact was served from the local page cache
	// without contacting any renderer.
	OriginCache RenderOrigin = 1

	// OriginRemote means the artifact was fetched from the server's
	// rendering endpoint via a short-lived signed URL.
	OriginRemote RenderOrigin = 2

	// OriginNative means the artifact was produced by a renderer
	// installed on the local machine.
	OriginNative RenderOrigin = 3
)

// String returns the lowercase name of the origin for logs and stats.
func (o RenderOrigin) String() string {
	switch o {
	case OriginCache:
		return "cache"
	case OriginRemote:
		return "remote"
	case OriginNative:
		return "native"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// PageKey derives the cache key for a rendered document page.
//
// The key is stable for a given (document, page, dpi, format) tuple, so
// repeated render requests for the same artifact collapse onto one
// cache row: "<docID>/p<page>.<dpi>.<format>".
func PageKey(docID string, page int, dpi int, format RenderFormat) string {
	return fmt.Sprintf("%s/p%d.%d.%s", docID, page, dpi, format)
}

// ThumbKey derives the cache key for a document thumbnail with the
// given longest-edge size in pixels: "<docID>/thumb.<edge>.<format>".
func ThumbKey(docID string, edge int, format RenderFormat) string {
	return fmt.Sprintf("%s/thumb.%d.%s", docID, edge, format)
}

// RenderRequest describes a single page render.
type RenderRequest struct {
	// DocumentID identifies the document in the library.
	DocumentID string

	// Page is the 1-based page number.
	Page int

	// DPI is the requested raster density.
	DPI int

	// Format is the requested artifact encoding.
	Format RenderFormat

	// SkipCache forces a fresh render even when a cached artifact exists.
	SkipCache bool

	// PreloadNext asks the orchestrator to warm the cache for the
	// following pages in the background after this request completes.
	PreloadNext int
}

// Key returns the cache key the request resolves to.
func (r RenderRequest) Key() string {
	return PageKey(r.DocumentID, r.Page, r.DPI, r.Format)
}

// RenderResult is the outcome of a page render.
type RenderResult struct {
	// Key is the cache key of the artifact.
	Key string

	// Data holds the encoded image bytes.
	Data []byte

	// Format is the actual encoding of Data, which may differ from the
	// requested format when the producing tier substituted one.
	Format RenderFormat

	// Origin records the tier that produced the artifact.
	Origin RenderOrigin

	// Elapsed is the wall time the render took, cache lookups included.
	Elapsed time.Duration
}

// RenderTicket is a short-lived authorization to fetch a rendered page
// from the server's artifact storage.
type RenderTicket struct {
	// URL is the pre-signed artifact location.
	URL string `json:"url"`

	// Token is the compact JWS the server signed the URL with. Clients
	// never verify the signature; the claims are only inspected to skip
	// fetches through tickets that already expired locally.
	Token string `json:"token"`

	// ExpiresAt is the server-reported expiry instant.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the ticket is unusable at the given instant,
// applying skew as a safety margin against clock drift.
func (t RenderTicket) Expired(now time.Time, skew time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(t.ExpiresAt)
}
