// Package check defines the check command.
package check

import (
	"context"
	"os"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/flag"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, version string) *cli.Command {
	flags := &di.Flags{
		GlobalFlags: globalFlags,
		Version:     version,
	}
	return &cli.Command{
		Name:      "check",
		Usage:     "Check that actions are pinned to full length commit SHAs",
		ArgsUsage: "[<workflow file or directory> ...]",
		Description: `Check that every action and reusable workflow is pinned to a full length commit SHA.

If no argument is passed, files matching files[].pattern of the configuration file are checked.
If the configuration file has no files, .github/workflows/*.y(a)ml and action.y(a)ml are checked.

$ gha-enforce-sha check

You can also pass files and directories as arguments.
Directories are expanded to the YAML files directly under them.

$ gha-enforce-sha check .github/workflows .github/actions/foo/action.yaml

The exit code is 0 if all references are pinned,
1 if some references aren't pinned,
and 2 if the configuration is invalid or some files can't be parsed.
`,
		Action: func(ctx context.Context, c *cli.Command) error {
			flags.Args = c.Args().Slice()
			flags.SHALength = int(c.Int("sha-length"))
			flags.Concurrency = int(c.Int("concurrency"))
			flags.Exempt = c.StringSlice("exempt")
			di.SetEnv(flags, os.Getenv)
			return di.Check(ctx, logE, flags) //nolint:wrapcheck
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "exempt",
				Usage: "A glob pattern of actions that don't have to be pinned. This option can be repeated",
			},
			&cli.IntFlag{
				Name:    "sha-length",
				Usage:   "Accepted length of a commit SHA. The default is sha_length of the configuration file or 40",
				Sources: cli.EnvVars("GHA_ENFORCE_SHA_SHA_LENGTH"),
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format. text or sarif",
				Value:       "text",
				Sources:     cli.EnvVars("GHA_ENFORCE_SHA_FORMAT"),
				Destination: &flags.Format,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "The number of files processed concurrently. The default is the number of CPUs",
			},
		},
	}
}
