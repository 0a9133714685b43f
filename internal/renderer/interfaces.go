// Package renderer produces page rasters from locally stored document
// files when the remote rendering tier is unreachable.
//
// The concrete implementation is selected once at startup by [Probe]:
// a command renderer driving an external rasterizer binary (pdftoppm
// compatible), or an unavailable stub when no binary is configured or
// found on PATH. Unavailability is a branch condition for the render
// fallback chain, not an error.
package renderer

import (
	"context"

	"github.com/MKhiriev/go-digi-lib/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/renderer_mock.go -package=mock

// NativeRenderer rasterizes one page of a local document file.
type NativeRenderer interface {
	// RenderPage rasterizes the 1-based page of the document at filePath
	// at the given density and returns the encoded image bytes.
	RenderPage(ctx context.Context, filePath string, page, dpi int) ([]byte, error)

	// Available reports whether this renderer can actually produce
	// output. Callers must check it before invoking RenderPage.
	Available() bool

	// Format is the encoding RenderPage produces. The native tier does
	// not transcode; requests for other formats get this one.
	Format() models.RenderFormat
}
