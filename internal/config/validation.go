package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/uoon-dev/sancho/internal/sheet"
)

// validate performs validation of configuration values and reports every
// problem at once.
func validate(config *Config) error {
	var validationErrors []string

	if _, err := sheet.ParseEdge(config.Sheet.Edge); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("sheet.edge: %v", err))
	}
	if config.Sheet.Size < 0.1 || config.Sheet.Size > 1 {
		validationErrors = append(validationErrors, "sheet.size must be between 0.1 and 1")
	}

	if config.Animation.FPS < 1 || config.Animation.FPS > 240 {
		validationErrors = append(validationErrors, "animation.fps must be between 1 and 240")
	}
	if config.Animation.Frequency <= 0 {
		validationErrors = append(validationErrors, "animation.frequency must be positive")
	}
	if config.Animation.Damping <= 0 {
		validationErrors = append(validationErrors, "animation.damping must be positive")
	}

	colors := map[string]string{
		"appearance.background": config.Appearance.Background,
		"appearance.overlay":    config.Appearance.Overlay,
		"appearance.accent":     config.Appearance.Accent,
	}
	for _, key := range []string{"appearance.background", "appearance.overlay", "appearance.accent"} {
		if _, err := colorful.Hex(colors[key]); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("%s must be a #rrggbb colour (got: %q)", key, colors[key]))
		}
	}
	if config.Appearance.OverlayStrength < 0 || config.Appearance.OverlayStrength > 1 {
		validationErrors = append(validationErrors, "appearance.overlay_strength must be between 0 and 1")
	}

	switch config.Logging.Format {
	case "auto", "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: auto, console, json (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, "; "))
	}
	return nil
}
