package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time; falls back to module build info.
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		version, commit, date := buildIdentity()

		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
				"version":    version,
				"commit":     commit,
				"build_date": date,
				"go_version": runtime.Version(),
				"platform":   runtime.GOOS + "/" + runtime.GOARCH,
			})
			return
		}

		fmt.Printf("neoradio %s\n", version)
		if Verbose() {
			t := NewTable()
			t.AddRow("  commit:", commit)
			t.AddRow("  built:", date)
			t.AddRow("  go version:", runtime.Version())
			t.AddRow("  platform:", runtime.GOOS+"/"+runtime.GOARCH)
			t.Flush()
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildIdentity resolves version facts from ldflags, then from the binary's
// embedded module info for plain `go install` builds.
func buildIdentity() (version, commit, date string) {
	version, commit, date = Version, Commit, BuildDate

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return orUnknown(version), orUnknown(commit), orUnknown(date)
	}

	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}

	return orUnknown(version), orUnknown(commit), orUnknown(date)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
