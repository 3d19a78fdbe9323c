// Package misc holds build-time program identity, settable via ldflags:
//
//	go build -ldflags "-X fontset/misc.version=1.0.0 -X fontset/misc.gitHash=$(git rev-parse --short HEAD)"
package misc

var (
	appName = "fontq"
	version = "0.0.0-dev"
	gitHash = "unknown"
)

func GetAppName() string { return appName }
func GetVersion() string { return version }
func GetGitHash() string { return gitHash }
