package renderer

import (
	"os/exec"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
)

// Probe selects the native renderer once at startup. An empty
// cfg.NativeCommand disables the native tier; a configured binary that
// cannot be found on PATH logs the miss and disables it as well.
func Probe(cfg config.Render, log *logger.Logger) NativeRenderer {
	if cfg.NativeCommand == "" {
		log.Debug().Msg("native renderer disabled: no command configured")
		return unavailableRenderer{}
	}

	path, err := exec.LookPath(cfg.NativeCommand)
	if err != nil {
		log.Warn().
			Str("command", cfg.NativeCommand).
			Err(err).
			Msg("native renderer disabled: command not found")
		return unavailableRenderer{}
	}

	log.Info().
		Str("command", path).
		Dur("timeout", cfg.NativeTimeout).
		Msg("native renderer available")

	return newCommandRenderer(path, cfg.NativeTimeout, log)
}
