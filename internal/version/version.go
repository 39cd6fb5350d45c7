package version

import (
	"runtime/debug"
	"sync"
)

const Service = "evalportal"

// Overridden at link time with -ldflags "-X evalportal/internal/version.Version=...".
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	vcsOnce     sync.Once
	vcsRevision string
	vcsModified bool
)

func Get() string {
	return Version
}

type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	Modified  bool   `json:"modified,omitempty"`
}

// Info falls back to the VCS stamp embedded by the Go toolchain when the
// commit was not set through ldflags.
func Info() BuildInfo {
	info := BuildInfo{
		Service:   Service,
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}

	if info.GitCommit == "unknown" {
		revision, modified := readVCS()
		if revision != "" {
			info.GitCommit = revision
			info.Modified = modified
		}
	}

	return info
}

func readVCS() (string, bool) {
	vcsOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				vcsRevision = s.Value
			case "vcs.modified":
				vcsModified = s.Value == "true"
			}
		}
	})
	return vcsRevision, vcsModified
}
