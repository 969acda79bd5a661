//go:build updater

package constants

// UpdaterEnabled reports whether this build was signed and can update itself.
const UpdaterEnabled = true
