package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/adrien-f/unpack/internal/extract/formats"
)

var formatsCommand = &cli.Command{
	Name:  "formats",
	Usage: "List supported archive formats",
	Action: func(ctx context.Context, command *cli.Command) error {
		reg := formats.NewRegistry()

		fmt.Printf("formats: %s\n", strings.Join(reg.AvailableFormats(), ", "))
		fmt.Printf("auto-detected: %s\n", strings.Join(reg.SnifferNames(), ", "))
		fmt.Println("aliases: tgz (tar.gz)")
		return nil
	},
}
