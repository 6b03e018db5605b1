package check

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/workflow"
)

type colorFunc func(a ...any) string

// Logger writes failing findings and parse errors as text, one line each.
type Logger struct {
	stderr io.Writer
	red    colorFunc
	yellow colorFunc
}

func NewLogger(stderr io.Writer) *Logger {
	return &Logger{
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		stderr: stderr,
	}
}

// Output writes the failures of a file.
//
//	ERROR .github/workflows/ci.yaml:10:15: in job test: in step #1: actions/checkout@v4: the version tag v4 is mutable. ...
func (l *Logger) Output(result *lint.Result) {
	if result.Err != nil {
		fmt.Fprintf(l.stderr, "%s %s: %s\n", l.red("ERROR"), parseErrorLocation(result.Path, result.Err), parseErrorMessage(result.Err))
		return
	}
	for _, f := range result.Findings {
		if f.Passed {
			continue
		}
		fmt.Fprintf(l.stderr, "%s %s: %s%s: %s\n", l.red("ERROR"), f.Location, f.Context(), l.yellow(f.Reference.Raw), f.Message())
	}
}

func parseErrorLocation(path string, err error) string {
	var pe *workflow.ParseError
	if errors.As(err, &pe) && pe.Line > 0 {
		return fmt.Sprintf("%s:%d:%d", path, pe.Line, pe.Column)
	}
	return path
}

func parseErrorMessage(err error) string {
	var pe *workflow.ParseError
	if errors.As(err, &pe) {
		return "parse the file as YAML: " + pe.Message
	}
	return err.Error()
}
