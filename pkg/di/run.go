// Package di creates and wires together the dependencies of the commands.
package di

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/action"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/controller/check"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/controller/initcmd"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/controller/list"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/log"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/policy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Check runs the check command.
func Check(ctx context.Context, logE *logrus.Entry, flags *Flags) error {
	setup(logE, flags)
	return runCheck(ctx, logE, afero.NewOsFs(), flags, os.Stdout, os.Stderr)
}

// List runs the list command.
func List(ctx context.Context, logE *logrus.Entry, flags *Flags) error {
	setup(logE, flags)
	return runList(ctx, logE, afero.NewOsFs(), flags, os.Stdout)
}

// Init runs the init command.
func Init(logE *logrus.Entry, flags *Flags) error {
	setup(logE, flags)
	configFilePath := ""
	if len(flags.Args) > 0 {
		configFilePath = flags.Args[0]
	}
	if configFilePath == "" {
		configFilePath = flags.Config
	}
	if configFilePath == "" {
		configFilePath = ".gha-enforce-sha.yaml"
	}
	return initcmd.New(afero.NewOsFs()).Init(logE, configFilePath) //nolint:wrapcheck
}

func setup(logE *logrus.Entry, flags *Flags) {
	if flags.IsGitHubActions {
		color.NoColor = false
	}
	log.SetLevel(flags.LogLevel, logE)
}

func runCheck(ctx context.Context, logE *logrus.Entry, fs afero.Fs, flags *Flags, stdout, stderr io.Writer) error {
	if err := check.ValidateFormat(flags.Format); err != nil {
		return err //nolint:wrapcheck
	}
	cfg, linter, err := prepare(fs, flags)
	if err != nil {
		return err
	}
	ctrl := check.New(fs, cfg, linter, &check.ParamRun{
		WorkflowFilePaths: flags.Args,
		Format:            flags.Format,
		Concurrency:       flags.Concurrency,
		Version:           flags.Version,
		Stdout:            stdout,
		Stderr:            stderr,
	})
	return ctrl.Run(ctx, logE) //nolint:wrapcheck
}

func runList(ctx context.Context, logE *logrus.Entry, fs afero.Fs, flags *Flags, stdout io.Writer) error {
	cfg, linter, err := prepare(fs, flags)
	if err != nil {
		return err
	}
	files, err := check.SearchFiles(logE, fs, flags.Args, cfg)
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}
	ctrl := list.New(fs, linter, &list.Param{
		Files:        files,
		LineTemplate: flags.LineTemplate,
		FailedOnly:   flags.FailedOnly,
		Concurrency:  flags.Concurrency,
	}, stdout)
	return ctrl.List(ctx, logE) //nolint:wrapcheck
}

// prepare reads the configuration and builds the linter.
// All configuration errors are returned here, before any file is read.
func prepare(fs afero.Fs, flags *Flags) (*config.Config, *lint.Linter, error) {
	cfg, err := readConfig(fs, flags.Config)
	if err != nil {
		return nil, nil, err
	}
	linter, err := newLinter(cfg, flags)
	if err != nil {
		return nil, nil, err
	}
	return cfg, linter, nil
}

func readConfig(fs afero.Fs, configFilePath string) (*config.Config, error) {
	cfgFinder := config.NewFinder(fs)
	cfgReader := config.NewReader(fs)
	configPath, err := cfgFinder.Find(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := cfgReader.Read(cfg, configPath); err != nil {
		return nil, fmt.Errorf("read a configuration file: %w", logerr.WithFields(err, logrus.Fields{
			"config_file": configPath,
		}))
	}
	return cfg, nil
}

func compileExemptions(patterns []string) ([]*config.Exemption, error) {
	exemptions := make([]*config.Exemption, len(patterns))
	for i, pattern := range patterns {
		e, err := config.NewGlobExemption(pattern)
		if err != nil {
			return nil, fmt.Errorf("parse an exemption: %w", logerr.WithFields(err, logrus.Fields{
				"exemption": pattern,
			}))
		}
		exemptions[i] = e
	}
	return exemptions, nil
}

func newLinter(cfg *config.Config, flags *Flags) (*lint.Linter, error) {
	if flags.SHALength < 0 {
		return nil, fmt.Errorf("%w: sha-length must be positive", config.ErrInvalid)
	}
	shaLength := cfg.SHALength
	if flags.SHALength > 0 {
		shaLength = flags.SHALength
	}
	exemptions, err := compileExemptions(flags.Exempt)
	if err != nil {
		return nil, err
	}
	return lint.New(action.NewClassifier(shaLength), policy.FromConfig(cfg, exemptions...)), nil
}
