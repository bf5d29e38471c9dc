// Package version tells which build of grooveseq is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/grooveseq/grooveseq/version.Version=$(git describe --dirty)"

var Version string

// Hash is the short VCS revision of the build, with a -dirty suffix for
// modified trees; empty if the build has no VCS information.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return revision(info.Settings)
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "devel"
}()

// String is the line printed by grooveseq version.
func String() string {
	return fmt.Sprintf("grooveseq %s (%s %s/%s)", VersionOrHash, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func revision(settings []debug.BuildSetting) string {
	modified, hash := false, ""
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.modified":
			modified = setting.Value == "true"
		case "vcs.revision":
			hash = setting.Value[:min(7, len(setting.Value))]
		}
	}
	if hash != "" && modified {
		return hash + "-dirty"
	}
	return hash
}
