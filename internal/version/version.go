// Package version carries the sunbeam release version.
//
// The version lives in its own package so that both the CLI and the
// configuration library can read it without importing each other.
package version

// Version is the sunbeam release this binary was built from. Release
// builds override it via:
//
//	go build -ldflags "-X github.com/ATCHON/sunbeam/internal/version.Version=..."
var Version = "5.1.0"
