// Package version exposes the application version, set at build time via
// -ldflags "-X carteirab3/internal/version.Version=...".
package version

// Version is the application version string.
var Version = "dev"
