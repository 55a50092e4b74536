// Package bininfo holds build metadata injected through -ldflags "-X".
package bininfo

var (
	// Version is the release tag of the binary, with the git commit appended after a plus sign when known.
	Version = "v0.0.0"

	// BuildTime is an RFC 3339 timestamp of the build.
	BuildTime = "1970-01-01T00:00:00Z"
)

// UserAgent identifies this binary to remote APIs.
func UserAgent() string {
	return "todoist-readme/" + Version
}
