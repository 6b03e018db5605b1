// Package check implements "gha-enforce-sha check".
// It finds workflow and composite action files, checks concurrently that every
// action reference in them is pinned to a full length commit SHA, and reports
// failing references as text or SARIF in a stable order.
package check

import (
	"io"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/spf13/afero"
)

type Controller struct {
	fs     afero.Fs
	cfg    *config.Config
	linter *lint.Linter
	param  *ParamRun
	logger *Logger
}

const (
	FormatText  = "text"
	FormatSARIF = "sarif"
)

type ParamRun struct {
	WorkflowFilePaths []string
	Format            string
	Concurrency       int
	Version           string
	Stdout            io.Writer
	Stderr            io.Writer
}

func New(fs afero.Fs, cfg *config.Config, linter *lint.Linter, param *ParamRun) *Controller {
	return &Controller{
		fs:     fs,
		cfg:    cfg,
		linter: linter,
		param:  param,
		logger: NewLogger(param.Stderr),
	}
}
