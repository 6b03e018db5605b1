package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

var (
	// ErrNotPinned is returned if some action references fail the policy.
	ErrNotPinned = errors.New("actions aren't pinned")
	// ErrParseFailed is returned if some files can't be read or parsed.
	ErrParseFailed = errors.New("some files can't be parsed")
)

// ValidateFormat returns an error wrapping config.ErrInvalid if format is unknown.
func ValidateFormat(format string) error {
	switch format {
	case "", FormatText, FormatSARIF:
		return nil
	default:
		return fmt.Errorf("%w: format must be text or sarif: %s", config.ErrInvalid, format)
	}
}

// Run checks the target files.
// Every file is reported, then Run returns ErrParseFailed if any file failed to be
// read or parsed, ErrNotPinned if any reference failed the policy, or nil.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if err := ValidateFormat(c.param.Format); err != nil {
		return err
	}
	files, err := SearchFiles(logE, c.fs, c.param.WorkflowFilePaths, c.cfg)
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}
	logE.WithField("num_of_files", len(files)).Debug("found target files")

	results, err := c.linter.LintFiles(ctx, c.fs, files, c.param.Concurrency)
	if err != nil {
		return err //nolint:wrapcheck
	}

	parseFailed := false
	notPinned := false
	for _, result := range results {
		logE := logE.WithField("workflow_file", result.Path)
		if result.Err != nil {
			parseFailed = true
			logerr.WithError(logE, result.Err).Debug("process a file")
			continue
		}
		logE.WithFields(logrus.Fields{
			"kind":              result.Kind.String(),
			"num_of_references": len(result.Findings),
		}).Debug("checked a file")
		if result.Failed() {
			notPinned = true
		}
	}

	if err := c.output(results); err != nil {
		return err
	}
	if parseFailed {
		return ErrParseFailed
	}
	if notPinned {
		return ErrNotPinned
	}
	return nil
}

func (c *Controller) output(results []*lint.Result) error {
	if c.param.Format == FormatSARIF {
		return c.outputSARIF(results)
	}
	for _, result := range results {
		c.logger.Output(result)
	}
	return nil
}
