package renderer

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-digi-lib/models"
)

// ErrNativeUnavailable is returned by the stub renderer if a caller invokes
// RenderPage without checking Available first.
var ErrNativeUnavailable = errors.New("native renderer unavailable")

// unavailableRenderer is the stub selected when no rasterizer is configured
// or the configured binary is not on PATH.
type unavailableRenderer struct{}

func (unavailableRenderer) RenderPage(_ context.Context, _ string, _, _ int) ([]byte, error) {
	return nil, ErrNativeUnavailable
}

func (unavailableRenderer) Available() bool { return false }

func (unavailableRenderer) Format() models.RenderFormat { return models.FormatPNG }
