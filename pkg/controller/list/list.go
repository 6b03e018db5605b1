package list

import (
	"context"
	"fmt"
	"text/template"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/controller/check"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/policy"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// List prints the references of the files.
// Files that can't be parsed are logged and skipped, and then
// check.ErrParseFailed is returned after the other files are printed.
func (c *Controller) List(ctx context.Context, logE *logrus.Entry) error {
	tmpl, err := c.parseTemplate()
	if err != nil {
		return err
	}
	results, err := c.linter.LintFiles(ctx, c.fs, c.param.Files, c.param.Concurrency)
	if err != nil {
		return err //nolint:wrapcheck
	}
	parseFailed := false
	for _, result := range results {
		if result.Err != nil {
			parseFailed = true
			logerr.WithError(logE.WithField("workflow_file", result.Path), result.Err).Error("list action references")
			continue
		}
		if err := c.listResult(result, tmpl); err != nil {
			return err
		}
	}
	if parseFailed {
		return check.ErrParseFailed
	}
	return nil
}

func (c *Controller) parseTemplate() (*template.Template, error) {
	if c.param.LineTemplate == "" {
		return nil, nil //nolint:nilnil
	}
	tmpl, err := template.New("line").Parse(c.param.LineTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse line template: %w", err)
	}
	return tmpl, nil
}

func (c *Controller) listResult(result *lint.Result, tmpl *template.Template) error {
	for _, f := range result.Findings {
		if c.param.FailedOnly && f.Passed {
			continue
		}
		if err := c.output(newReferenceInfo(f), tmpl); err != nil {
			return err
		}
	}
	return nil
}

func newReferenceInfo(f *policy.Finding) *ReferenceInfo {
	return &ReferenceInfo{
		FilePath:  f.Location.File,
		Line:      f.Location.Line,
		Column:    f.Location.Column,
		Raw:       f.Reference.Raw,
		Identity:  string(f.Reference.Identity),
		RepoOwner: f.Reference.Identity.Owner(),
		RepoName:  f.Reference.Identity.Repo(),
		Specifier: f.Reference.Specifier,
		Kind:      f.Kind.String(),
		Passed:    f.Passed,
		Job:       f.Job,
		Step:      f.Step,
	}
}

func verdict(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

func (c *Controller) output(info *ReferenceInfo, tmpl *template.Template) error {
	if tmpl != nil {
		if err := tmpl.Execute(c.stdout, info); err != nil {
			return fmt.Errorf("execute template: %w", err)
		}
		fmt.Fprintln(c.stdout)
		return nil
	}
	// <FilePath>,<Line>,<Column>,<Identity>,<Specifier>,<Kind>,<Verdict>
	fmt.Fprintf(c.stdout, "%s,%d,%d,%s,%s,%s,%s\n", info.FilePath, info.Line, info.Column, info.Identity, info.Specifier, info.Kind, verdict(info.Passed))
	return nil
}
