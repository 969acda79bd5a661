//go:build !android

package constants

import "github.com/opencode-ai/desktop/internal/windowstate"

// Keys and names for persisted settings
const (
	SettingsStore       = "opencode.settings.dat"
	DefaultServerURLKey = "defaultServerUrl"
	WSLEnabledKey       = "wslEnabled"
)

// WindowStateFlags returns the window attributes which are persisted between runs.
func WindowStateFlags() windowstate.StateFlags {
	return windowstate.All().Difference(windowstate.Decorations, windowstate.Visible)
}
