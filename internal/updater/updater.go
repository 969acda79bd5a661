// Package updater checks for new releases of the desktop shell.
package updater

import (
	"context"
	"errors"
	"log/slog"

	"github.com/opencode-ai/desktop/internal/constants"
	"github.com/opencode-ai/desktop/internal/github"
)

var ErrDisabled = errors.New("updater disabled in this build")

const (
	repoOwner = "sst"
	repoName  = "opencode"
)

type releaseFetcher interface {
	AvailableUpdate(ctx context.Context, owner, repo, local string) (github.VersionInfo, error)
}

// Checker checks for available updates.
type Checker struct {
	enabled bool
	local   string
	rf      releaseFetcher
}

// New returns a new checker for the local version.
// The checker is enabled only for builds which can update themselves.
func New(rf releaseFetcher, local string) *Checker {
	return &Checker{enabled: constants.UpdaterEnabled, local: local, rf: rf}
}

// Enabled reports whether the checker is enabled.
func (c *Checker) Enabled() bool {
	return c.enabled
}

// Check returns information about the latest release.
// It returns [ErrDisabled] when the updater is not enabled.
func (c *Checker) Check(ctx context.Context) (github.VersionInfo, error) {
	if !c.enabled {
		return github.VersionInfo{}, ErrDisabled
	}
	v, err := c.rf.AvailableUpdate(ctx, repoOwner, repoName, c.local)
	if err != nil {
		return github.VersionInfo{}, err
	}
	if v.IsRemoteNewer {
		slog.Info("Update available", "local", v.Local, "latest", v.Latest)
	}
	return v, nil
}
