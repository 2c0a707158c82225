package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	v1 "github.com/adrien-f/unpack/apis/v1"
	"github.com/adrien-f/unpack/internal/runner"
)

var extractCommand = &cli.Command{
	Name:  "extract",
	Usage: "Extract a single archive into a directory",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "archive",
			UsageText: "Archive to extract: a file path, '-' for stdin, or an http(s):// or s3:// URL",
		},
		&cli.StringArg{
			Name:      "target",
			UsageText: "Target directory (default: current directory)",
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Archive format (tar, zip, tgz, tar.gz); auto-detected when omitted",
		},
		&cli.IntFlag{
			Name:    "strip-components",
			Aliases: []string{"p"},
			Usage:   "Strip this many leading path segments from every entry",
		},
		&cli.StringSliceFlag{
			Name:    "include",
			Aliases: []string{"i"},
			Usage:   "Only extract entries matching this glob (can be repeated)",
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "Skip entries matching this glob (can be repeated)",
		},
		&cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Usage:   "IANA character set for non-UTF-8 entry names (e.g. GBK)",
		},
		&cli.StringFlag{
			Name:  "s3-region",
			Usage: "Region for s3:// sources",
		},
		&cli.StringFlag{
			Name:  "s3-endpoint",
			Usage: "Custom endpoint for S3-compatible object storage",
		},
		&cli.BoolFlag{
			Name:  "s3-path-style",
			Usage: "Use path-style addressing for S3-compatible object storage",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		archive := command.StringArg("archive")
		if archive == "" {
			return fmt.Errorf("no archive provided")
		}
		target := command.StringArg("target")
		if target == "" {
			target = "."
		}

		job := v1.ExtractJob{
			Kind:     "ExtractJob",
			Metadata: v1.Metadata{Name: "extract"},
			Spec: v1.ExtractJobSpec{
				Archives: []v1.Archive{
					{
						Source:          archive,
						Format:          command.String("format"),
						Target:          target,
						StripComponents: int(command.Int("strip-components")),
						Include:         command.StringSlice("include"),
						Exclude:         command.StringSlice("exclude"),
						Encoding:        command.String("encoding"),
						S3: &v1.S3Spec{
							Region:         command.String("s3-region"),
							Endpoint:       command.String("s3-endpoint"),
							ForcePathStyle: command.Bool("s3-path-style"),
						},
					},
				},
			},
		}

		return runner.New(logger.Named("runner"), job).Run(ctx)
	},
}
