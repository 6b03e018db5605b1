// Package policy decides whether action references pass.
// A reference pinned to a full length commit SHA always passes.
// Any other reference fails unless it is exempted.
package policy

import (
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/action"
	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/config"
)

// Matcher is an exemption pattern.
type Matcher interface {
	Match(identity, ref string) bool
	String() string
}

// Input is a classified reference with its location.
type Input struct {
	Location  Location
	Reference *action.Reference
	Kind      action.VersionKind
	Job       string
	Step      int
}

// Evaluator applies the policy. It is immutable and safe for concurrent use.
type Evaluator struct {
	exemptions    []Matcher
	enforceLocal  bool
	enforceDocker bool
}

type Option func(*Evaluator)

// EnforceLocal makes local references such as ./.github/actions/foo subject to the policy.
func EnforceLocal(b bool) Option {
	return func(e *Evaluator) {
		e.enforceLocal = b
	}
}

// EnforceDocker makes docker:// references subject to the policy.
func EnforceDocker(b bool) Option {
	return func(e *Evaluator) {
		e.enforceDocker = b
	}
}

func New(exemptions []Matcher, opts ...Option) *Evaluator {
	e := &Evaluator{
		exemptions: append([]Matcher(nil), exemptions...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig builds an Evaluator from cfg and extra exemptions given by command line arguments.
func FromConfig(cfg *config.Config, extra ...*config.Exemption) *Evaluator {
	matchers := make([]Matcher, 0, len(cfg.Exemptions)+len(extra))
	for _, ex := range cfg.Exemptions {
		matchers = append(matchers, ex)
	}
	for _, ex := range extra {
		matchers = append(matchers, ex)
	}
	return New(matchers, EnforceLocal(cfg.EnforceLocal), EnforceDocker(cfg.EnforceDocker))
}

// Evaluate returns a Finding for the input.
func (e *Evaluator) Evaluate(in *Input) *Finding {
	f := &Finding{
		Location:  in.Location,
		Reference: in.Reference,
		Kind:      in.Kind,
		Job:       in.Job,
		Step:      in.Step,
	}
	if in.Kind == action.SHAPinned {
		f.Passed = true
		return f
	}
	if reason := e.exemptedBy(in.Reference); reason != "" {
		f.Passed = true
		f.ExemptedBy = reason
	}
	return f
}

// EvaluateAll returns one Finding per input in the same order.
func (e *Evaluator) EvaluateAll(inputs []*Input) []*Finding {
	findings := make([]*Finding, len(inputs))
	for i, in := range inputs {
		findings[i] = e.Evaluate(in)
	}
	return findings
}

func (e *Evaluator) exemptedBy(ref *action.Reference) string {
	if !e.enforceLocal && ref.Identity.IsLocal() {
		return "local action"
	}
	if !e.enforceDocker && ref.Identity.IsDocker() {
		return "docker action"
	}
	for _, m := range e.exemptions {
		if m.Match(string(ref.Identity), ref.Specifier) {
			return "exemption " + m.String()
		}
	}
	return ""
}

// Failed reports whether any finding failed.
func Failed(findings []*Finding) bool {
	for _, f := range findings {
		if !f.Passed {
			return true
		}
	}
	return false
}
