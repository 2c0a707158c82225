package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/adrien-f/unpack/internal/runner"
)

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Extract every archive listed in a job manifest",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "job",
			UsageText: "The job manifest to run",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		jobFilename := command.StringArg("job")
		if jobFilename == "" {
			return fmt.Errorf("no job file provided")
		}

		jobFile, err := os.ReadFile(jobFilename)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}

		job, err := runner.ParseExtractJob(jobFile)
		if err != nil {
			return fmt.Errorf("failed to parse job: %w", err)
		}

		return runner.New(logger.Named("runner"), job).Run(ctx)
	},
}
