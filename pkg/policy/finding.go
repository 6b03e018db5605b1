package policy

import (
	"fmt"

	"github.com/gha-enforce-sha/gha-enforce-sha/pkg/action"
	"github.com/hashicorp/go-version"
)

// Location is a 1-based position in a file.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Finding is the verdict on one action reference. It isn't modified after creation.
type Finding struct {
	Location  Location
	Reference *action.Reference
	Kind      action.VersionKind
	Passed    bool
	// ExemptedBy is the reason a non-pinned reference passed, e.g. an exemption pattern.
	ExemptedBy string
	// Job and Step locate the reference in a workflow. They are optional.
	Job  string
	Step int
}

// Context returns "in job JOB: in step #N: " for the parts that are known.
func (f *Finding) Context() string {
	s := ""
	if f.Job != "" {
		s += "in job " + f.Job + ": "
	}
	if f.Step > 0 {
		s += fmt.Sprintf("in step #%d: ", f.Step)
	}
	return s
}

// Message describes why the finding failed or passed.
func (f *Finding) Message() string {
	switch f.Kind {
	case action.SHAPinned:
		return "pinned to a full length commit SHA"
	case action.Missing:
		return f.exempted("no version is specified. Pin the action to a full length commit SHA")
	case action.Malformed:
		return f.exempted("the reference is malformed. It must be owner/repo[/path]@<full length commit SHA>")
	default:
		return f.exempted(fmt.Sprintf("%s %s is mutable. Pin the action to a full length commit SHA", describeSpecifier(f.Reference.Specifier), f.Reference.Specifier))
	}
}

func (f *Finding) exempted(msg string) string {
	if !f.Passed {
		return msg
	}
	return "exempted by " + f.ExemptedBy
}

// describeSpecifier tells version tags like v4 or 1.2.3 from other refs.
// NewSemver is used because NewVersion accepts hex strings such as 8e5e7e5.
func describeSpecifier(specifier string) string {
	if _, err := version.NewSemver(specifier); err == nil {
		return "the version tag"
	}
	return "the branch or tag"
}
