// Package version exposes build identification for the cutline binary.
package version

// Build identification, overridden at link time via -ldflags.
var (
	// Version is the release version of the binary.
	Version = "dev"

	// Commit is the Git hash the binary was built from.
	Commit = "<unknown>"

	// Date is the build timestamp.
	Date = "<unknown>"
)
