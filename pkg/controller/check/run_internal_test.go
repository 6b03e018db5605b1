package check

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/action"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/lint"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/policy"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/sarif"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"github.com/spf13/afero"
)

const sha = "8e5e7e5ab8b370d6c329ec480221332ada57f0ab"

var (
	pinnedWorkflow = dedent.Dedent(`
		jobs:
		  build:
		    steps:
		      - uses: actions/checkout@` + sha + `
		`)
	unpinnedWorkflow = dedent.Dedent(`
		jobs:
		  build:
		    steps:
		      - uses: actions/checkout@v4
		      - uses: ./.github/actions/foo
		      - uses: actions/setup-go@main
		`)
)

type runResult struct {
	err    error
	stdout string
	stderr string
}

func runController(t *testing.T, files map[string]string, format string) *runResult {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	linter := lint.New(action.NewClassifier(0), policy.New(nil))
	ctrl := New(fs, &config.Config{}, linter, &ParamRun{
		Format:  format,
		Version: "v1.0.0",
		Stdout:  stdout,
		Stderr:  stderr,
	})
	err := ctrl.Run(context.Background(), newLogE())
	return &runResult{
		err:    err,
		stdout: stdout.String(),
		stderr: stderr.String(),
	}
}

func TestController_Run(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name   string
		files  map[string]string
		err    error
		stderr string
	}{
		{
			name: "pass",
			files: map[string]string{
				".github/workflows/test.yaml": pinnedWorkflow,
			},
		},
		{
			name:  "no file",
			files: map[string]string{},
		},
		{
			name: "not pinned",
			files: map[string]string{
				".github/workflows/test.yaml": unpinnedWorkflow,
				".github/workflows/a.yaml":    pinnedWorkflow,
			},
			err: ErrNotPinned,
			stderr: "ERROR .github/workflows/test.yaml:5:15: in job build: in step #1: actions/checkout@v4: the version tag v4 is mutable. Pin the action to a full length commit SHA\n" +
				"ERROR .github/workflows/test.yaml:7:15: in job build: in step #3: actions/setup-go@main: the branch or tag main is mutable. Pin the action to a full length commit SHA\n",
		},
		{
			name: "missing version",
			files: map[string]string{
				"action.yaml": "runs:\n  using: composite\n  steps:\n    - uses: actions/cache\n",
			},
			err:    ErrNotPinned,
			stderr: "ERROR action.yaml:4:13: in step #1: actions/cache: no version is specified. Pin the action to a full length commit SHA\n",
		},
		{
			name: "parse error takes precedence",
			files: map[string]string{
				".github/workflows/a.yaml": "jobs: [\n",
				".github/workflows/b.yaml": unpinnedWorkflow,
			},
			err: ErrParseFailed,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			r := runController(t, d.files, FormatText)
			if d.err == nil {
				if r.err != nil {
					t.Fatal(r.err)
				}
			} else if !errors.Is(r.err, d.err) {
				t.Fatalf("wanted %v, got %v", d.err, r.err)
			}
			if r.stdout != "" {
				t.Errorf("stdout must be empty: %s", r.stdout)
			}
			if d.stderr != "" {
				if diff := cmp.Diff(d.stderr, r.stderr); diff != "" {
					t.Error(diff)
				}
			}
		})
	}
}

func TestController_Run_parseError(t *testing.T) {
	t.Parallel()
	r := runController(t, map[string]string{
		".github/workflows/a.yaml": "jobs: [\n",
		".github/workflows/b.yaml": unpinnedWorkflow,
	}, FormatText)
	if !errors.Is(r.err, ErrParseFailed) {
		t.Fatalf("wanted ErrParseFailed, got %v", r.err)
	}
	lines := bytes.Split([]byte(r.stderr), []byte("\n"))
	if len(lines) != 4 {
		t.Fatalf("wanted 3 lines, got %q", r.stderr)
	}
	if !bytes.HasPrefix(lines[0], []byte("ERROR .github/workflows/a.yaml")) {
		t.Errorf("the parse error must be reported first: %s", lines[0])
	}
	if !bytes.Contains(lines[0], []byte("parse the file as YAML: ")) {
		t.Errorf("the parse error must be reported: %s", lines[0])
	}
	if !bytes.HasPrefix(lines[1], []byte("ERROR .github/workflows/b.yaml:5:15: ")) {
		t.Errorf("the other file must still be checked: %s", lines[1])
	}
}

func TestController_Run_sarif(t *testing.T) {
	t.Parallel()
	r := runController(t, map[string]string{
		".github/workflows/test.yaml": unpinnedWorkflow,
	}, FormatSARIF)
	if !errors.Is(r.err, ErrNotPinned) {
		t.Fatalf("wanted ErrNotPinned, got %v", r.err)
	}
	if r.stderr != "" {
		t.Errorf("stderr must be empty: %s", r.stderr)
	}
	log := &sarif.Log{}
	if err := json.Unmarshal([]byte(r.stdout), log); err != nil {
		t.Fatal(err)
	}
	if log.Version != sarif.Version || len(log.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "gha-enforce-sha" || run.Tool.Driver.Version != "v1.0.0" {
		t.Errorf("unexpected driver: %+v", run.Tool.Driver)
	}
	exp := []sarif.Result{
		{
			RuleID:  ruleUnpinnedAction,
			Level:   "error",
			Message: sarif.Message{Text: "in job build: in step #1: actions/checkout@v4: the version tag v4 is mutable. Pin the action to a full length commit SHA"},
			Locations: []sarif.Location{
				newSARIFLocation(".github/workflows/test.yaml", 5, 15),
			},
		},
		{
			RuleID:  ruleUnpinnedAction,
			Level:   "error",
			Message: sarif.Message{Text: "in job build: in step #3: actions/setup-go@main: the branch or tag main is mutable. Pin the action to a full length commit SHA"},
			Locations: []sarif.Location{
				newSARIFLocation(".github/workflows/test.yaml", 7, 15),
			},
		},
	}
	if diff := cmp.Diff(exp, run.Results); diff != "" {
		t.Fatal(diff)
	}
}

func TestController_Run_sarifPass(t *testing.T) {
	t.Parallel()
	r := runController(t, map[string]string{
		".github/workflows/test.yaml": pinnedWorkflow,
	}, FormatSARIF)
	if r.err != nil {
		t.Fatal(r.err)
	}
	log := &sarif.Log{}
	if err := json.Unmarshal([]byte(r.stdout), log); err != nil {
		t.Fatal(err)
	}
	if len(log.Runs) != 1 || len(log.Runs[0].Results) != 0 {
		t.Fatalf("wanted no result: %s", r.stdout)
	}
}

func TestController_Run_invalidFormat(t *testing.T) {
	t.Parallel()
	r := runController(t, map[string]string{}, "json")
	if !errors.Is(r.err, config.ErrInvalid) {
		t.Fatalf("wanted config.ErrInvalid, got %v", r.err)
	}
}

func Test_buildSARIFResults_parseError(t *testing.T) {
	t.Parallel()
	results := []*lint.Result{
		{
			Path: "a.yaml",
			Err:  errors.New("read a file: permission denied"),
		},
	}
	got := buildSARIFResults(results)
	exp := []sarif.Result{
		{
			RuleID:    ruleParseError,
			Level:     "error",
			Message:   sarif.Message{Text: "read a file: permission denied"},
			Locations: []sarif.Location{newSARIFLocation("a.yaml", 0, 0)},
		},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatal(diff)
	}
	if got[0].Locations[0].PhysicalLocation.Region != nil {
		t.Fatal("region must be omitted if the line is unknown")
	}
}
