package config

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	formatFixedString = "fixed_string"
	formatGlob        = "glob"
	formatRegexp      = "regexp"
)

type File struct {
	Pattern string `json:"pattern" jsonschema:"description=A glob pattern of target files. ** matches any number of directories"`
}

func (f *File) Init() error {
	if f.Pattern == "" {
		return invalid("pattern is required")
	}
	if !doublestar.ValidatePattern(f.Pattern) {
		return invalid("pattern isn't a valid glob: " + f.Pattern)
	}
	return nil
}

// Exemption is a pattern of action identities that don't have to be pinned.
// If Ref is set, only matching version specifiers are exempted.
type Exemption struct {
	Name       string `json:"name" jsonschema:"description=A pattern of action identities such as actions/checkout"`
	NameFormat string `json:"name_format,omitempty" yaml:"name_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp,description=The default is glob"`
	Ref        string `json:"ref,omitempty" jsonschema:"description=A pattern of version specifiers. If not specified, any specifier is exempted"`
	RefFormat  string `json:"ref_format,omitempty" yaml:"ref_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp,description=The default is glob"`
	nameRegexp *regexp.Regexp
	refRegexp  *regexp.Regexp
}

// NewGlobExemption returns an initialized Exemption matching identities by a glob.
func NewGlobExemption(pattern string) (*Exemption, error) {
	e := &Exemption{
		Name:       pattern,
		NameFormat: formatGlob,
	}
	if err := e.Init(); err != nil {
		return nil, err
	}
	return e, nil
}

func initFormat(value, format string) (*regexp.Regexp, error) {
	switch format {
	case formatFixedString:
		return nil, nil //nolint:nilnil
	case formatGlob:
		if !doublestar.ValidatePattern(value) {
			return nil, invalid("parse as a glob: " + value)
		}
		return nil, nil //nolint:nilnil
	case formatRegexp:
		r, err := regexp.Compile(value)
		if err != nil {
			return nil, invalid(fmt.Sprintf("compile as a regular expression: %v", err))
		}
		return r, nil
	default:
		return nil, invalid("format must be fixed_string, glob, or regexp: " + format)
	}
}

func (e *Exemption) Init() error {
	if e.Name == "" {
		return invalid("name is required")
	}
	if e.NameFormat == "" {
		e.NameFormat = formatGlob
	}
	r, err := initFormat(e.Name, e.NameFormat)
	if err != nil {
		return fmt.Errorf("initialize name: %w", err)
	}
	e.nameRegexp = r
	if e.Ref == "" {
		return nil
	}
	if e.RefFormat == "" {
		e.RefFormat = formatGlob
	}
	r, err = initFormat(e.Ref, e.RefFormat)
	if err != nil {
		return fmt.Errorf("initialize ref: %w", err)
	}
	e.refRegexp = r
	return nil
}

func match(value, pattern, format string, r *regexp.Regexp) bool {
	switch format {
	case formatFixedString:
		return value == pattern
	case formatGlob:
		return doublestar.MatchUnvalidated(pattern, value)
	case formatRegexp:
		return r.MatchString(value)
	default:
		return false
	}
}

// Match reports whether the identity and the version specifier are exempted.
// Init must be called first.
func (e *Exemption) Match(identity, ref string) bool {
	if !match(identity, e.Name, e.NameFormat, e.nameRegexp) {
		return false
	}
	if e.Ref == "" {
		return true
	}
	return match(ref, e.Ref, e.RefFormat, e.refRegexp)
}

// String returns the pattern for diagnostics.
func (e *Exemption) String() string {
	if e.Ref == "" {
		return e.Name
	}
	return e.Name + "@" + e.Ref
}
