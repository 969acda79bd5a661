// Package constants defines process-wide constants of the desktop shell.
//
// Symbols which only make sense on desktop targets are defined in desktop.go
// and do not exist when building for android.
package constants

// SigningKeyEnv is the build environment variable holding the private key
// for signing updates. When it is set the build adds the "updater" tag,
// which enables [UpdaterEnabled]. The key itself is never compiled in.
const SigningKeyEnv = "OPENCODE_SIGNING_PRIVATE_KEY"

// UpdaterTag is the build tag which enables the updater.
const UpdaterTag = "updater"
