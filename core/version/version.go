// Package version reports build version information.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version records build version information.
type Version struct {
	Version string    `json:"version"`
	Commit  string    `json:"commit"`
	Date    time.Time `json:"date"`
	Dirty   bool      `json:"dirty"`
}

func (v Version) String() string {
	return v.Version
}

// Get returns version information recorded by the Go toolchain.
func Get() (v Version) {
	v = Version{
		Version: "development",
		Commit:  "unknown",
		Date:    time.Now(),
		Dirty:   true,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	bs := map[string]string{}
	for _, kv := range bi.Settings {
		bs[kv.Key] = kv.Value
	}
	dt, e := time.Parse(time.RFC3339, bs["vcs.time"])
	if bs["vcs"] != "git" || len(bs["vcs.revision"]) != 40 || e != nil {
		return v
	}

	v.Commit = bs["vcs.revision"]
	v.Date = dt
	v.Dirty = bs["vcs.modified"] == "true"
	suffix := ""
	if v.Dirty {
		suffix = "-dirty"
	}
	v.Version = fmt.Sprintf("v0.0.0-%s-%s%s", v.Date.Format("20060102150405"), v.Commit[:12], suffix)
	return v
}
