package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/joshuapare/persistkit/internal/format"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and on-medium format information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	}
}

type versionInfo struct {
	Version    string `json:"version"`
	Commit     string `json:"commit,omitempty"`
	Built      string `json:"built,omitempty"`
	Go         string `json:"go"`
	HeaderSize int    `json:"header_size"`
	MaxNameLen int    `json:"max_name_len"`
}

// buildVersion fills in commit and date from the module build info when the
// binary was built without ldflags.
func buildVersion() versionInfo {
	v := versionInfo{
		Version:    version,
		Commit:     commit,
		Built:      date,
		Go:         runtime.Version(),
		HeaderSize: format.HeaderSize,
		MaxNameLen: format.MaxNameLen,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && v.Commit == "":
			v.Commit = s.Value
		case s.Key == "vcs.time" && v.Built == "":
			v.Built = s.Value
		}
	}
	return v
}

func runVersion() error {
	v := buildVersion()
	if jsonOut {
		return printJSON(v)
	}
	printInfo("persistctl %s (%s)\n", v.Version, v.Go)
	if v.Commit != "" {
		printInfo("  commit: %s\n", v.Commit)
	}
	if v.Built != "" {
		printInfo("  built: %s\n", v.Built)
	}
	printInfo("  header: %d bytes, names up to %d bytes\n", v.HeaderSize, v.MaxNameLen)
	return nil
}
