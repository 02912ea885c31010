// Package version reports build information for textfinder. The
// variables are set at build time with ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/textfinder/internal/version.Version=v1.0.0 \
//	  -X github.com/jpl-au/textfinder/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/textfinder/internal/version.BuildTime=2026-01-15T10:30:00Z"
//
// Builds without ldflags fall back to the module build info embedded by
// the Go toolchain, so "go install" binaries still report a version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build information. Set via ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info holds structured version information.
type Info struct {
	BuildTag  string `json:"build_tag"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version information.
func Get() Info {
	info := Info{
		BuildTag:  Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + " " + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.BuildTag == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.BuildTag = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.GitCommit == "unknown":
			info.GitCommit = s.Value[:min(len(s.Value), 7)]
		case s.Key == "vcs.time" && info.BuildTime == "unknown":
			info.BuildTime = s.Value
		}
	}
}

// String returns the information formatted for display.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build Tag:    %s\n", i.BuildTag)
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform:     %s\n", i.Platform)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	return b.String()
}

// Short returns the build tag, e.g. "v1.0.0" or "dev".
func Short() string {
	return Get().BuildTag
}
