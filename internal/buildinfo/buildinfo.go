// Package buildinfo exposes version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/authdemo/internal/buildinfo.Version=v1.0.0 \
//	  -X github.com/dmitrijs2005/authdemo/internal/buildinfo.Date=2026-10-19 \
//	  -X github.com/dmitrijs2005/authdemo/internal/buildinfo.Commit=abc123" ./cmd/client
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// UserAgent is sent with every API request.
func UserAgent() string {
	return "authdemo-client/" + Version
}

// PrintBuildData writes the three build values, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
