// Package whr holds the public API of the WHR pipeline: version
// information, lifecycle interfaces and the payload handed to
// presentation consumers.
package whr

var (
	// Version is set by the build via ldflags.
	Version = "v0.2.0"
	// Build is a timestamp of the build, set via ldflags.
	Build = "n/a"
)
