package di

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/flag"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/controller/check"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const sha = "8e5e7e5ab8b370d6c329ec480221332ada57f0ab"

var workflow = dedent.Dedent(`
	jobs:
	  build:
	    steps:
	      - uses: actions/checkout@` + sha + `
	      - uses: my-org/deploy@v1
	`)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newLogE() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func Test_runCheck(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name   string
		files  map[string]string
		flags  *Flags
		err    error
		stderr string
	}{
		{
			name: "not pinned",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
			},
			flags:  &Flags{},
			err:    check.ErrNotPinned,
			stderr: "ERROR .github/workflows/test.yaml:6:15: in job build: in step #2: my-org/deploy@v1: the version tag v1 is mutable. Pin the action to a full length commit SHA\n",
		},
		{
			name: "exempted by the configuration",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
				".gha-enforce-sha.yaml":       "version: 1\nexemptions:\n  - name: my-org/*\n",
			},
			flags: &Flags{},
		},
		{
			name: "exempted by the flag",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
			},
			flags: &Flags{Exempt: []string{"my-org/*"}},
		},
		{
			name: "configuration file is given",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
				"foo.yaml":                    "version: 1\nexemptions:\n  - name: my-org/deploy\n    name_format: fixed_string\n",
			},
			flags: &Flags{GlobalFlags: &flag.GlobalFlags{Config: "foo.yaml"}},
		},
		{
			name: "sha length",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
				".gha-enforce-sha.yaml":       "version: 1\nsha_length: 64\nexemptions:\n  - name: my-org/*\n",
			},
			flags:  &Flags{},
			err:    check.ErrNotPinned,
			stderr: "ERROR .github/workflows/test.yaml:5:15: in job build: in step #1: actions/checkout@" + sha + ": the branch or tag " + sha + " is mutable. Pin the action to a full length commit SHA\n",
		},
		{
			name: "the flag overrides sha_length",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
				".gha-enforce-sha.yaml":       "version: 1\nsha_length: 64\nexemptions:\n  - name: my-org/*\n",
			},
			flags: &Flags{SHALength: 40},
		},
		{
			name: "invalid configuration",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
				".gha-enforce-sha.yaml":       "exemptions: []\n",
			},
			flags: &Flags{},
			err:   config.ErrInvalid,
		},
		{
			name: "invalid exemption flag",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
			},
			flags: &Flags{Exempt: []string{"my-org/[deploy"}},
			err:   config.ErrInvalid,
		},
		{
			name: "negative sha length",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
			},
			flags: &Flags{SHALength: -1},
			err:   config.ErrInvalid,
		},
		{
			name: "invalid format",
			files: map[string]string{
				".github/workflows/test.yaml": workflow,
			},
			flags: &Flags{Format: "xml"},
			err:   config.ErrInvalid,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if d.flags.GlobalFlags == nil {
				d.flags.GlobalFlags = &flag.GlobalFlags{}
			}
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			err := runCheck(context.Background(), newLogE(), newTestFs(t, d.files), d.flags, stdout, stderr)
			if d.err == nil {
				if err != nil {
					t.Fatal(err)
				}
			} else if !errors.Is(err, d.err) {
				t.Fatalf("wanted %v, got %v", d.err, err)
			}
			if diff := cmp.Diff(d.stderr, stderr.String()); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func Test_runList(t *testing.T) {
	t.Parallel()
	fs := newTestFs(t, map[string]string{
		".github/workflows/test.yaml": workflow,
		".gha-enforce-sha.yaml":       "version: 1\nexemptions:\n  - name: my-org/*\n",
	})
	stdout := &bytes.Buffer{}
	flags := &Flags{GlobalFlags: &flag.GlobalFlags{}}
	if err := runList(context.Background(), newLogE(), fs, flags, stdout); err != nil {
		t.Fatal(err)
	}
	exp := ".github/workflows/test.yaml,5,15,actions/checkout," + sha + ",sha_pinned,pass\n" +
		".github/workflows/test.yaml,6,15,my-org/deploy,v1,tag_or_branch,pass\n"
	if diff := cmp.Diff(exp, stdout.String()); diff != "" {
		t.Fatal(diff)
	}
}
