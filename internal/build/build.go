// Package build holds build-time information set through linker flags.
package build

var (
	// Version is the depot release. It defaults to "dev".
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
