// Package list defines the list command.
package list

import (
	"context"
	"os"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/flag"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	flags := &di.Flags{
		GlobalFlags: globalFlags,
	}
	return &cli.Command{
		Name:      "list",
		Usage:     "List action references and their classification",
		ArgsUsage: "[<workflow file or directory> ...]",
		Description: `List actions and reusable workflows of workflow files.
Target files are searched in the same way as the check command.

$ gha-enforce-sha list

Output format (default CSV):
<FilePath>,<Line>,<Column>,<Identity>,<Specifier>,<Kind>,<Verdict>

Custom output format using Go template:
$ gha-enforce-sha list --line-template "{{.RepoOwner}}/{{.RepoName}} {{.Kind}}"

Available template fields:
  FilePath  - File path
  Line      - Line number
  Column    - Column number
  Raw       - Reference as written (e.g., actions/checkout@v4)
  Identity  - Identity (e.g., actions/checkout)
  RepoOwner - Repository owner (e.g., actions)
  RepoName  - Repository name (e.g., checkout)
  Specifier - Version specifier (e.g., v4)
  Kind      - sha_pinned, tag_or_branch, missing, or malformed
  Passed    - true if the reference passes the policy
  Job       - Job id
  Step      - 1-based step index
`,
		Action: func(ctx context.Context, c *cli.Command) error {
			flags.Args = c.Args().Slice()
			flags.SHALength = int(c.Int("sha-length"))
			flags.Exempt = c.StringSlice("exempt")
			di.SetEnv(flags, os.Getenv)
			return di.List(ctx, logE, flags) //nolint:wrapcheck
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "line-template",
				Usage:       "Go text/template format for each line",
				Destination: &flags.LineTemplate,
			},
			&cli.BoolFlag{
				Name:        "failed",
				Usage:       "List only references failing the policy",
				Destination: &flags.FailedOnly,
			},
			&cli.StringSliceFlag{
				Name:  "exempt",
				Usage: "A glob pattern of actions that don't have to be pinned. This option can be repeated",
			},
			&cli.IntFlag{
				Name:    "sha-length",
				Usage:   "Accepted length of a commit SHA",
				Sources: cli.EnvVars("GHA_ENFORCE_SHA_SHA_LENGTH"),
			},
		},
	}
}
