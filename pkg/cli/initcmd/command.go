// Package initcmd defines the init command.
package initcmd

import (
	"context"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/flag"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create .gha-enforce-sha.yaml if it doesn't exist",
		ArgsUsage: "[<configuration file path>]",
		Description: `Create .gha-enforce-sha.yaml if it doesn't exist

$ gha-enforce-sha init

You can also pass configuration file path.

e.g.

$ gha-enforce-sha init .github/gha-enforce-sha.yaml
`,
		Action: func(_ context.Context, c *cli.Command) error {
			return di.Init(logE, &di.Flags{ //nolint:wrapcheck
				GlobalFlags: globalFlags,
				Args:        c.Args().Slice(),
			})
		},
	}
}
