// Package config resolves which display to monitor.
package config

import (
	"github.com/spf13/viper"
)

// Config holds the settings read from the environment. There is no config
// file and there are no flags.
type Config struct {
	// Display is the X11 display string, e.g. ":0". Empty means the
	// connection falls back to its own default.
	Display string
}

// Load reads XWINEV_DISPLAY, then DISPLAY.
func Load() *Config {
	v := viper.New()
	// BindEnv only errors without a key.
	_ = v.BindEnv("display", "XWINEV_DISPLAY", "DISPLAY")

	return &Config{
		Display: v.GetString("display"),
	}
}
