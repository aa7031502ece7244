// Package misc keeps build-time program identity.
package misc

// set with -ldflags "-X imglink/misc.version=... -X imglink/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "imglink"

// GetAppName returns program name, log and report file names are derived from it.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
