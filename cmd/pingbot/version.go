package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/keepmind9/pingbot/internal/chat"
	"github.com/spf13/cobra"
)

// Overridden at link time, e.g. -ldflags "-X main.Version=v1.2.0".
// Empty values fall back to the module build info.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

var versionJSON bool

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit,omitempty"`
	Modified  bool     `json:"modified,omitempty"`
	BuildTime string   `json:"build_time,omitempty"`
	GoVersion string   `json:"go_version"`
	Drivers   []string `json:"drivers"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Show the pingbot version, the commit it was built from and the chat drivers linked in",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), versionJSON)
	},
}

func currentBuild() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Drivers:   chat.Drivers(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = setting.Value
			}
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

func printVersion(w io.Writer, asJSON bool) {
	info := currentBuild()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			fmt.Fprintf(w, "failed to encode version: %v\n", err)
		}
		return
	}

	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	} else if info.Modified {
		commit += " (modified)"
	}
	drivers := "none"
	if len(info.Drivers) > 0 {
		drivers = strings.Join(info.Drivers, ", ")
	}

	fmt.Fprintf(w, "pingbot %s (%s)\n", info.Version, info.GoVersion)
	fmt.Fprintf(w, "  commit:  %s\n", commit)
	if info.BuildTime != "" {
		fmt.Fprintf(w, "  built:   %s\n", info.BuildTime)
	}
	fmt.Fprintf(w, "  drivers: %s\n", drivers)
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output in JSON format")
}
