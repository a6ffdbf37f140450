package config

import "github.com/uoon-dev/sancho/internal/motion"

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Sheet: SheetConfig{
			Edge:          "left",
			Size:          0.4,
			Open:          true,
			CloseOnClick:  true,
			CloseOnEscape: true,
		},
		Animation: AnimationConfig{
			FPS:       motion.DefaultFPS,
			Frequency: motion.DefaultFrequency,
			Damping:   motion.DefaultDamping,
		},
		Appearance: AppearanceConfig{
			Background:      "#282A36",
			Overlay:         "#000000",
			OverlayStrength: 0.6,
			Accent:          "#BD93F9",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}
