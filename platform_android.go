//go:build android

package main

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/opencode-ai/desktop/internal/appdirs"
)

// mobilePlatform keeps the default server in memory.
// Windows on mobile have no persistent state.
type mobilePlatform struct {
	mu  sync.Mutex
	url string
}

func newPlatform(_ appdirs.AppDirs) (platform, error) {
	return &mobilePlatform{}, nil
}

func (p *mobilePlatform) defaultServerURL() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url, p.url != ""
}

func (p *mobilePlatform) setDefaultServerURL(u string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = u
	return nil
}

func (p *mobilePlatform) widgets() []fyne.CanvasObject {
	return nil
}

func (p *mobilePlatform) restoreWindow(fyne.Window) {}

func (p *mobilePlatform) saveWindow(fyne.Window, bool) {}
