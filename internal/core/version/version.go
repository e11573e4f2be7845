// Package version reports what build of the lead API is running
package version

import (
	"runtime/debug"
	"sync"
)

// Service is the name the API reports in logs, probes and clickhouse client info
const Service = "firstvibe-api"

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// stamped with
//
//	-ldflags "-X 'firstvibe/internal/core/version.version=v0.1.0' -X 'firstvibe/internal/core/version.commit=abcd'"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

var readBuildInfo = debug.ReadBuildInfo

// Info returns the stamped build, unstamped commit and date come from the
// vcs settings the go tool embeds
var Info = sync.OnceValue(load)

func load() BuildInfo {
	bi := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
