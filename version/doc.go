// Package version exposes build information.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/scribeproxy/version.Version=1.0.0"
package version
