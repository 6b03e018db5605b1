// Package cli defines the command line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/check"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/flag"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/initcmd"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/list"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, logE *logrus.Entry, ldFlags *stdutil.LDFlags, args ...string) error {
	return newCommand(logE, ldFlags, os.Stdout).Run(ctx, args) //nolint:wrapcheck
}

// newCommand builds the root command.
// urfave.Command adds the version command (with --json), help-all, and shell completion.
func newCommand(logE *logrus.Entry, ldFlags *stdutil.LDFlags, stdout io.Writer) *cli.Command {
	globalFlags := &flag.GlobalFlags{}
	return urfave.Command(ldFlags, &cli.Command{
		Name:   "gha-enforce-sha",
		Usage:  "Check that GitHub Actions are pinned to full length commit SHAs",
		Writer: stdout,
		Flags:  globalFlags.Flags(),
		Commands: []*cli.Command{
			check.New(logE, globalFlags, ldFlags.Version),
			list.New(logE, globalFlags),
			initcmd.New(logE, globalFlags),
		},
	})
}
