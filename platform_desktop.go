//go:build !android

package main

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/time/rate"

	"github.com/opencode-ai/desktop/internal/appdirs"
	"github.com/opencode-ai/desktop/internal/constants"
	"github.com/opencode-ai/desktop/internal/settings"
	"github.com/opencode-ai/desktop/internal/settingsstore"
	"github.com/opencode-ai/desktop/internal/windowstate"
)

var defaultWindowSize = fyne.NewSize(600, 400)

// desktopPlatform persists settings and window state in the app's settings folder.
type desktopPlatform struct {
	settings *settings.Settings
	windows  *windowstate.Store
	saves    *rate.Sometimes
	isWSL    bool // whether to offer the WSL option
}

func newPlatform(ad appdirs.AppDirs) (platform, error) {
	return newDesktopPlatform(ad.Settings)
}

func newDesktopPlatform(dir string) (*desktopPlatform, error) {
	st, err := settingsstore.Open(dir, constants.SettingsStore)
	if err != nil {
		return nil, err
	}
	st.Changed.AddListener(func(_ context.Context, key string) {
		slog.Debug("Setting changed", "key", key)
	})
	ws, err := windowstate.NewStore(dir)
	if err != nil {
		return nil, err
	}
	p := &desktopPlatform{
		settings: settings.New(st),
		windows:  ws,
		saves:    &rate.Sometimes{First: 1, Interval: 5 * time.Second},
		isWSL:    runtime.GOOS == "windows",
	}
	return p, nil
}

func (p *desktopPlatform) defaultServerURL() (string, bool) {
	return p.settings.DefaultServerURL()
}

func (p *desktopPlatform) setDefaultServerURL(u string) error {
	return p.settings.SetDefaultServerURL(u)
}

func (p *desktopPlatform) widgets() []fyne.CanvasObject {
	if !p.isWSL {
		return nil
	}
	c := widget.NewCheck("Run server in WSL", nil)
	c.Checked = p.settings.WSLEnabled()
	c.OnChanged = func(v bool) {
		if err := p.settings.SetWSLEnabled(v); err != nil {
			slog.Error("Failed to save WSL setting", "error", err)
		}
	}
	return []fyne.CanvasObject{c}
}

func (p *desktopPlatform) restoreWindow(w fyne.Window) {
	s, ok := p.windows.Load(mainWindowLabel)
	if !ok {
		w.Resize(defaultWindowSize)
		return
	}
	windowstate.Restore(w, s, constants.WindowStateFlags())
}

// saveWindow saves the state of the main window.
// Throttled saves are skipped when the last one happened recently.
func (p *desktopPlatform) saveWindow(w fyne.Window, throttled bool) {
	if throttled {
		p.saves.Do(func() {
			p.saveWindowState(w)
		})
		return
	}
	p.saveWindowState(w)
}

func (p *desktopPlatform) saveWindowState(w fyne.Window) {
	s := windowstate.Capture(w)
	flags := constants.WindowStateFlags() & windowstate.CapturedFlags
	if err := p.windows.Save(mainWindowLabel, s, flags); err != nil {
		slog.Error("Failed to save window state", "error", err)
	}
}
