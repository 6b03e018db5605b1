package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/controller/check"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

var (
	version = ""
	commit  = "" //nolint:gochecknoglobals
	date    = "" //nolint:gochecknoglobals
)

const (
	exitNotPinned = 1
	exitError     = 2
)

func main() {
	logE := log.New(version)
	if code := exitCode(logE, core(logE)); code != 0 {
		os.Exit(code)
	}
}

// exitCode logs err and maps it to an exit code.
// Failing references are already reported, so ErrNotPinned isn't logged.
func exitCode(logE *logrus.Entry, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, check.ErrNotPinned):
		return exitNotPinned
	case errors.Is(err, check.ErrParseFailed):
		return exitError
	case errors.Is(err, config.ErrInvalid):
		logerr.WithError(logE, err).Error("the configuration is invalid")
		return exitError
	default:
		logerr.WithError(logE, err).Error("gha-enforce-sha failed")
		return exitError
	}
}

func core(logE *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.Run(ctx, logE, &stdutil.LDFlags{ //nolint:wrapcheck
		Version: version,
		Commit:  commit,
		Date:    date,
	}, os.Args...)
}
