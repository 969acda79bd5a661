package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/sync/errgroup"

	"github.com/opencode-ai/desktop/internal/github"
	"github.com/opencode-ai/desktop/internal/server"
	"github.com/opencode-ai/desktop/internal/singleinstance"
	"github.com/opencode-ai/desktop/internal/updater"
)

const (
	connectTimeout  = 15 * time.Second
	mainWindowLabel = "main"
)

// platform provides the features of the shell which differ between targets.
type platform interface {
	defaultServerURL() (string, bool)
	setDefaultServerURL(string) error
	widgets() []fyne.CanvasObject
	restoreWindow(w fyne.Window)
	saveWindow(w fyne.Window, throttled bool)
}

type serverClient interface {
	CheckHealth(ctx context.Context, baseURL string) (server.Health, error)
	Connect(ctx context.Context, input string) (string, error)
}

type updateChecker interface {
	Check(ctx context.Context) (github.VersionInfo, error)
}

// shell is the main window of the desktop app.
// It lets the user connect to an opencode server.
type shell struct {
	app        fyne.App
	client     serverClient
	connecting *singleinstance.Group
	p          platform
	updater    updateChecker
	window     fyne.Window

	activeURL     string
	connectButton *widget.Button
	openButton    *widget.Button
	status        *widget.Label
	updateStatus  *widget.Label
	urlEntry      *widget.Entry
}

func newShell(fyneApp fyne.App, p platform, client serverClient, uc updateChecker) *shell {
	s := &shell{
		app:        fyneApp,
		client:     client,
		connecting: singleinstance.NewGroup(),
		p:          p,
		updater:    uc,
	}
	return s
}

func (s *shell) init() {
	s.window = s.app.NewWindow("opencode")
	s.window.SetMaster()

	s.urlEntry = widget.NewEntry()
	s.urlEntry.SetPlaceHolder("https://your-opencode-server.com")
	s.urlEntry.OnSubmitted = func(v string) {
		s.connect(v)
	}
	if u, ok := s.p.defaultServerURL(); ok {
		s.urlEntry.SetText(u)
	}
	s.connectButton = widget.NewButton("Connect", func() {
		s.connect(s.urlEntry.Text)
	})
	s.connectButton.Importance = widget.HighImportance
	s.openButton = widget.NewButton("Open in browser", func() {
		s.openActive()
	})
	s.openButton.Disable()
	s.status = widget.NewLabel("Enter the URL of your opencode server to begin.")
	s.status.Wrapping = fyne.TextWrapWord
	s.updateStatus = widget.NewLabel("")
	s.updateStatus.Hide()

	c := container.NewVBox(
		widget.NewLabelWithStyle("Connect to Server", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.status,
		s.urlEntry,
		s.connectButton,
		s.openButton,
	)
	for _, o := range s.p.widgets() {
		c.Add(o)
	}
	c.Add(s.updateStatus)
	s.window.SetContent(container.NewPadded(c))
	s.p.restoreWindow(s.window)
	s.window.SetCloseIntercept(func() {
		s.p.saveWindow(s.window, false)
		s.window.Close()
	})
	s.app.Lifecycle().SetOnExitedForeground(func() {
		s.p.saveWindow(s.window, true)
	})
}

func (s *shell) showAndRun() {
	s.window.ShowAndRun()
}

// connect connects to the server at input in the background.
// Further calls are ignored while a connection attempt is in progress.
func (s *shell) connect(input string) {
	go func() {
		_, err, aborted := s.connectOnce(context.Background(), input)
		if aborted {
			return
		}
		if err != nil {
			slog.Warn("Failed to connect", "input", input, "error", err)
			fyne.Do(func() {
				s.status.SetText(errorMessage(err))
			})
		}
	}()
}

// connectOnce connects to the server at input and shows the form as busy meanwhile.
// It is aborted when another connection attempt is in progress.
func (s *shell) connectOnce(ctx context.Context, input string) (string, error, bool) {
	v, err, aborted := s.connecting.Do("connect", func() (any, error) {
		fyne.Do(func() {
			s.setBusy(true)
		})
		defer fyne.Do(func() {
			s.setBusy(false)
		})
		return s.doConnect(ctx, input)
	})
	u, _ := v.(string)
	return u, err, aborted
}

func (s *shell) doConnect(ctx context.Context, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	u, err := s.client.Connect(ctx, input)
	if err != nil {
		return "", err
	}
	if err := s.p.setDefaultServerURL(u); err != nil {
		slog.Error("Failed to save default server url", "error", err)
	}
	fyne.Do(func() {
		s.setActive(u)
	})
	return u, nil
}

func (s *shell) setBusy(busy bool) {
	if busy {
		s.connectButton.SetText("Connecting...")
		s.connectButton.Disable()
		s.urlEntry.Disable()
		return
	}
	s.connectButton.SetText("Connect")
	s.connectButton.Enable()
	s.urlEntry.Enable()
}

func (s *shell) setActive(u string) {
	s.activeURL = u
	s.urlEntry.SetText(u)
	s.status.SetText(fmt.Sprintf("Connected to %s", u))
	s.openButton.Enable()
	slog.Info("Connected to server", "url", u)
}

func (s *shell) openActive() {
	if s.activeURL == "" {
		return
	}
	u, err := url.Parse(s.activeURL)
	if err != nil {
		slog.Error("Invalid server URL", "url", s.activeURL, "error", err)
		return
	}
	if err := s.app.OpenURL(u); err != nil {
		slog.Error("Failed to open server URL", "url", s.activeURL, "error", err)
	}
}

// startupChecks connects to the initial server and checks for updates concurrently.
// The initial server is serverURL when given or else the default server.
func (s *shell) startupChecks(ctx context.Context, serverURL string) error {
	var g errgroup.Group
	g.Go(func() error {
		input := serverURL
		if input == "" {
			u, ok := s.p.defaultServerURL()
			if !ok {
				return nil
			}
			input = u
		}
		_, err, aborted := s.connectOnce(ctx, input)
		if aborted {
			slog.Info("Skipping startup connect while another connect is in progress", "input", input)
			return nil
		}
		if err != nil {
			fyne.Do(func() {
				s.status.SetText(errorMessage(err))
			})
			return fmt.Errorf("connect to %s: %w", input, err)
		}
		return nil
	})
	g.Go(func() error {
		v, err := s.updater.Check(ctx)
		if errors.Is(err, updater.ErrDisabled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("check for update: %w", err)
		}
		if v.IsRemoteNewer {
			fyne.Do(func() {
				s.updateStatus.SetText(fmt.Sprintf("Update available: %s", v.Latest))
				s.updateStatus.Show()
			})
		}
		return nil
	})
	return g.Wait()
}

// errorMessage returns a message about a connection error for users.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, server.ErrEmptyURL):
		return "Please enter a URL"
	case errors.Is(err, server.ErrInvalidURL):
		return "Invalid URL format"
	case errors.Is(err, server.ErrUnhealthy):
		return "Could not connect to server"
	case errors.Is(err, context.DeadlineExceeded):
		return "Connection timed out"
	}
	return err.Error()
}
