// Package list implements "gha-enforce-sha list".
// It prints every action reference of the target files with its classification
// and verdict, so users can review what check would enforce.
package list

import (
	"io"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/spf13/afero"
)

type Controller struct {
	fs     afero.Fs
	linter *lint.Linter
	param  *Param
	stdout io.Writer
}

type Param struct {
	Files        []string
	LineTemplate string
	// FailedOnly restricts the output to references failing the policy.
	FailedOnly  bool
	Concurrency int
}

func New(fs afero.Fs, linter *lint.Linter, param *Param, stdout io.Writer) *Controller {
	return &Controller{
		fs:     fs,
		linter: linter,
		param:  param,
		stdout: stdout,
	}
}
