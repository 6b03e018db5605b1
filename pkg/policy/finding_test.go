package policy_test

import (
	"testing"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/action"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/policy"
)

func TestFinding_Message(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		raw     string
		passed  bool
		exempt  string
		message string
	}{
		{
			name:    "version tag",
			raw:     "actions/checkout@v4",
			message: "the version tag v4 is mutable. Pin the action to a full length commit SHA",
		},
		{
			name:    "branch",
			raw:     "actions/checkout@main",
			message: "the branch or tag main is mutable. Pin the action to a full length commit SHA",
		},
		{
			name:    "missing",
			raw:     "actions/checkout",
			message: "no version is specified. Pin the action to a full length commit SHA",
		},
		{
			name:    "malformed",
			raw:     "actions/checkout@",
			message: "the reference is malformed. It must be owner/repo[/path]@<full length commit SHA>",
		},
		{
			name:    "pinned",
			raw:     "actions/checkout@" + sha,
			passed:  true,
			message: "pinned to a full length commit SHA",
		},
		{
			name:    "exempted",
			raw:     "actions/checkout@v4",
			passed:  true,
			exempt:  "exemption actions/*",
			message: "exempted by exemption actions/*",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			ref, kind := action.Classify(d.raw)
			f := &policy.Finding{
				Reference:  ref,
				Kind:       kind,
				Passed:     d.passed,
				ExemptedBy: d.exempt,
			}
			if got := f.Message(); got != d.message {
				t.Fatalf("wanted %q, got %q", d.message, got)
			}
		})
	}
}

func TestFinding_Context(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		job  string
		step int
		exp  string
	}{
		{name: "job and step", job: "build", step: 2, exp: "in job build: in step #2: "},
		{name: "job", job: "call", exp: "in job call: "},
		{name: "step", step: 1, exp: "in step #1: "},
		{name: "none", exp: ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			f := &policy.Finding{Job: d.job, Step: d.step}
			if got := f.Context(); got != d.exp {
				t.Fatalf("wanted %q, got %q", d.exp, got)
			}
		})
	}
}

func TestLocation_String(t *testing.T) {
	t.Parallel()
	l := policy.Location{File: ".github/workflows/test.yaml", Line: 12, Column: 15}
	if got := l.String(); got != ".github/workflows/test.yaml:12:15" {
		t.Fatal(got)
	}
}

func TestFinding_Message_shortSHA(t *testing.T) {
	t.Parallel()
	ref, kind := action.Classify("actions/checkout@8e5e7e5")
	f := &policy.Finding{Reference: ref, Kind: kind}
	exp := "the branch or tag 8e5e7e5 is mutable. Pin the action to a full length commit SHA"
	if got := f.Message(); got != exp {
		t.Fatalf("wanted %q, got %q", exp, got)
	}
}
