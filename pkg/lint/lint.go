// Package lint runs the pipeline of a document:
// extract references, classify them, and evaluate the policy.
package lint

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/action"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/policy"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/workflow"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

type Linter struct {
	classifier *action.Classifier
	evaluator  *policy.Evaluator
}

func New(classifier *action.Classifier, evaluator *policy.Evaluator) *Linter {
	return &Linter{
		classifier: classifier,
		evaluator:  evaluator,
	}
}

// Result is the outcome of a file.
// Err is set if the file couldn't be read or parsed, and then Findings is empty.
type Result struct {
	Path     string
	Kind     workflow.Kind
	Findings []*policy.Finding
	Err      error
}

// Failed reports whether the file failed to be processed or has a failing finding.
func (r *Result) Failed() bool {
	return r.Err != nil || policy.Failed(r.Findings)
}

// Inputs classifies the references of doc in document order.
func (l *Linter) Inputs(doc *workflow.Document) []*policy.Input {
	inputs := []*policy.Input{}
	for o := range doc.References() {
		ref, kind := l.classifier.Classify(o.Raw)
		inputs = append(inputs, &policy.Input{
			Location: policy.Location{
				File:   doc.Path,
				Line:   o.Position.Line,
				Column: o.Position.Column,
			},
			Reference: ref,
			Kind:      kind,
			Job:       o.Job,
			Step:      o.Step,
		})
	}
	return inputs
}

// Lint returns one finding per reference of doc in document order.
func (l *Linter) Lint(doc *workflow.Document) []*policy.Finding {
	return l.evaluator.EvaluateAll(l.Inputs(doc))
}

// LintFile reads, parses, and lints a file.
func (l *Linter) LintFile(fs afero.Fs, path string) *Result {
	result := &Result{
		Path:     path,
		Findings: []*policy.Finding{},
	}
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		result.Err = fmt.Errorf("read a file: %w", err)
		return result
	}
	doc, err := workflow.Parse(path, content)
	if err != nil {
		result.Err = err
		return result
	}
	result.Kind = doc.Kind()
	result.Findings = l.Lint(doc)
	return result
}

// LintFiles lints files concurrently and returns the results sorted by path.
// A non-positive concurrency means the number of CPUs.
// Errors of a file are stored in its Result; only ctx's error is returned.
func (l *Linter) LintFiles(ctx context.Context, fs afero.Fs, paths []string, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	results := make([]*Result, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}
			results[i] = l.LintFile(fs, path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("lint files: %w", err)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}
