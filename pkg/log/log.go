// Package log creates the logrus logger.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

func New(version string) *logrus.Entry {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
	}
	return logger.WithFields(logrus.Fields{
		"program_version": version,
		"program":         "gha-enforce-sha",
	})
}

// SetLevel sets the log level. An empty level is ignored.
func SetLevel(level string, logE *logrus.Entry) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logE.WithField("log_level", level).WithError(err).Warn("the log level is invalid")
		return
	}
	logE.Logger.Level = lvl
}
