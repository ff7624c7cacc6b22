// Package buildinfo exposes version data stamped at link time, e.g.:
//
//	go build -ldflags "-X github.com/dmitrijs2005/bmic/internal/buildinfo.Version=1.0.2"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "N/A"
	BuildDate = "N/A"
	Commit    = "N/A"
)

// Info is a snapshot of the stamped build values.
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	Commit    string `json:"commit"`
}

// Current returns the stamped build values.
func Current() Info {
	return Info{Version: Version, BuildDate: BuildDate, Commit: Commit}
}

// PrintBuildData writes the build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
