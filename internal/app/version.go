package app

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Overridden at link time, e.g.
// -ldflags "-X github.com/heartmarshall/grammalecte-api/internal/app.Version=v1.2.0".
// Commit and BuildTime fall back to the VCS stamp Go embeds in the binary.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

var vcsStamp = sync.OnceValues(func() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
})

// BuildVersion describes the running binary for startup logs and grammarctl.
func BuildVersion() string {
	revision, at := vcsStamp()
	return formatVersion(Version, firstNonEmpty(Commit, revision), firstNonEmpty(BuildTime, at))
}

func formatVersion(version, commit, built string) string {
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
