package check

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/sarif"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/workflow"
)

const (
	ruleUnpinnedAction = "unpinned-action"
	ruleParseError     = "parse-error"
)

// outputSARIF writes failing findings and parse errors in SARIF to stdout.
func (c *Controller) outputSARIF(results []*lint.Result) error {
	log := sarif.Log{
		Schema:  sarif.Schema,
		Version: sarif.Version,
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:    "gha-enforce-sha",
						Version: c.param.Version,
						Rules: []sarif.Rule{
							{
								ID: ruleUnpinnedAction,
								ShortDescription: sarif.Message{
									Text: "GitHub Action is not pinned to a full length commit SHA",
								},
							},
							{
								ID: ruleParseError,
								ShortDescription: sarif.Message{
									Text: "Failed to parse a workflow file",
								},
							},
						},
					},
				},
				Results: buildSARIFResults(results),
			},
		},
	}

	encoder := json.NewEncoder(c.param.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func newSARIFLocation(file string, line, column int) sarif.Location {
	loc := sarif.Location{
		PhysicalLocation: sarif.PhysicalLocation{
			ArtifactLocation: sarif.ArtifactLocation{
				URI: file,
			},
		},
	}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarif.Region{
			StartLine:   line,
			StartColumn: column,
		}
	}
	return loc
}

func buildSARIFResults(results []*lint.Result) []sarif.Result {
	ret := []sarif.Result{}
	for _, result := range results {
		if result.Err != nil {
			line, column := 0, 0
			var pe *workflow.ParseError
			if errors.As(result.Err, &pe) {
				line, column = pe.Line, pe.Column
			}
			ret = append(ret, sarif.Result{
				RuleID:    ruleParseError,
				Level:     "error",
				Message:   sarif.Message{Text: parseErrorMessage(result.Err)},
				Locations: []sarif.Location{newSARIFLocation(result.Path, line, column)},
			})
			continue
		}
		for _, f := range result.Findings {
			if f.Passed {
				continue
			}
			ret = append(ret, sarif.Result{
				RuleID:  ruleUnpinnedAction,
				Level:   "error",
				Message: sarif.Message{Text: f.Context() + f.Reference.Raw + ": " + f.Message()},
				Locations: []sarif.Location{
					newSARIFLocation(f.Location.File, f.Location.Line, f.Location.Column),
				},
			})
		}
	}
	return ret
}
