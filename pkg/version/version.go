// Package version holds build identification, set at link time via
// -ldflags on release builds.
package version

// Version is the chatfang release version.
var Version = "dev"

// Commit is the Git hash of the chatfang binary which is executing.
var Commit = "<unknown>"

// Date is the build date of the binary.
var Date = "<unknown>"
