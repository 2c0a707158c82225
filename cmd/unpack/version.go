package main

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// Build information populated at init() from debug.ReadBuildInfo().
var (
	version   = "unknown"
	goVersion = "unknown"
	commit    = "unknown"
	buildTime = "unknown"
	modified  bool
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	version = info.Main.Version
	goVersion = info.GoVersion

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
		case "vcs.time":
			buildTime = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print version information",
	Action: func(ctx context.Context, command *cli.Command) error {
		fmt.Printf("unpack %s (go %s)\n", version, goVersion)
		if commit != "unknown" {
			dirty := ""
			if modified {
				dirty = " (dirty)"
			}
			fmt.Printf("commit: %s%s\n", commit, dirty)
		}
		if buildTime != "unknown" {
			fmt.Printf("built: %s\n", buildTime)
		}
		return nil
	},
}
