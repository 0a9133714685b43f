// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package renderer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/models"
)

// commandRenderer shells out to a poppler-style rasterizer for every page.
// The binary must accept pdftoppm's flag set and write the image to stdout
// when no output file is given.
type commandRenderer struct {
	binary  string
	timeout time.Duration

	logger *logger.Logger
}

func newCommandRenderer(binary string, timeout time.Duration, logger *logger.Logger) *commandRenderer {
	return &commandRenderer{binary: binary, timeout: timeout, logger: logger}
}

// RenderPage implements [NativeRenderer]. It runs the rasterizer for exactly
// one page and captures stdout as the image bytes. A configured timeout
// bounds the invocation on top of whatever deadline ctx already carries.
func (r *commandRenderer) RenderPage(ctx context.Context, filePath string, page, dpi int) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, renderArgs(filePath, page, dpi)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s page %d: %w", r.binary, page, ctxErr)
		}

		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s page %d: %s: %w", r.binary, page, msg, err)
	}

	out := stdout.Bytes()
	if len(out) == 0 {
		return nil, fmt.Errorf("%s page %d: produced no output", r.binary, page)
	}

	r.logger.Debug().
		Str("file", filePath).
		Int("page", page).
		Int("dpi", dpi).
		Int("bytes", len(out)).
		Msg("native render finished")

	return out, nil
}

// Available implements [NativeRenderer].
func (r *commandRenderer) Available() bool {
	return true
}

// Format implements [NativeRenderer]. Poppler emits PNG with the flags
// renderArgs passes.
func (r *commandRenderer) Format() models.RenderFormat {
	return models.FormatPNG
}

// renderArgs builds the pdftoppm argument list for a single page:
// -f/-l pin the page range to one page, -r sets the density, and the
// omitted output root sends the image to stdout.
func renderArgs(filePath string, page, dpi int) []string {
	return []string{
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		filePath,
	}
}
