//go:build !android

// Package settings provides typed access to the persisted desktop settings.
package settings

import (
	"log/slog"

	"github.com/opencode-ai/desktop/internal/constants"
	"github.com/opencode-ai/desktop/internal/server"
	"github.com/opencode-ai/desktop/internal/settingsstore"
)

// Settings represents the persisted settings of the desktop shell.
// All setters save the store immediately.
type Settings struct {
	s *settingsstore.Store
}

func New(s *settingsstore.Store) *Settings {
	return &Settings{s: s}
}

// DefaultServerURL returns the URL of the default server and reports whether one is set.
func (s *Settings) DefaultServerURL() (string, bool) {
	v, ok := s.s.String(constants.DefaultServerURLKey)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SetDefaultServerURL sets the URL of the default server.
// An empty URL removes the default server.
func (s *Settings) SetDefaultServerURL(v string) error {
	if v == "" {
		s.s.Delete(constants.DefaultServerURLKey)
		return s.s.Save()
	}
	u, err := server.NormalizeURL(v)
	if err != nil {
		return err
	}
	if err := s.s.SetString(constants.DefaultServerURLKey, u); err != nil {
		return err
	}
	slog.Info("Default server updated", "url", u)
	return s.s.Save()
}

// WSLEnabled reports whether servers should be run inside WSL. Defaults to false.
func (s *Settings) WSLEnabled() bool {
	v, _ := s.s.Bool(constants.WSLEnabledKey)
	return v
}

func (s *Settings) SetWSLEnabled(v bool) error {
	if err := s.s.SetBool(constants.WSLEnabledKey, v); err != nil {
		return err
	}
	return s.s.Save()
}
