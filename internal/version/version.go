// Package version reports the build identity of the launcher.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version and Commit may be set with -ldflags "-X". Otherwise they are read
// from the module build info.
var (
	Version = ""
	Commit  = ""
)

const shortCommitLen = 7

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit = resolve(Version, Commit, info)
}

// resolve fills the blanks in version and commit from info.
func resolve(version, commit string, info *debug.BuildInfo) (string, string) {
	if info != nil {
		if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "" {
			var revision string
			var dirty bool
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					revision = setting.Value
				case "vcs.modified":
					dirty = setting.Value == "true"
				}
			}
			if len(revision) > shortCommitLen {
				revision = revision[:shortCommitLen]
			}
			if revision != "" && dirty {
				revision += "-dirty"
			}
			commit = revision
		}
	}
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return version, commit
}

// Full returns the version with its commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
