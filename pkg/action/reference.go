// Package action classifies action references such as
// "actions/checkout@11bd71901bbe5b1630ceea73d27597364c9af683".
//
// A reference is split on its last "@" into an identity and a version specifier.
// Specifiers never contain "@", so the last "@" is always the separator.
package action

import (
	"strings"
	"unicode"
)

// DefaultSHALength is the length of a full SHA-1 commit hash.
const DefaultSHALength = 40

// VersionKind is the classification of a reference's version specifier.
type VersionKind int

const (
	// Malformed means the reference has no usable identity or specifier.
	Malformed VersionKind = iota
	// Missing means the reference has no "@".
	Missing
	// TagOrBranch means the specifier is a mutable tag or branch.
	TagOrBranch
	// SHAPinned means the specifier is a full length hexadecimal commit hash.
	SHAPinned
)

func (k VersionKind) String() string {
	switch k {
	case SHAPinned:
		return "sha_pinned"
	case TagOrBranch:
		return "tag_or_branch"
	case Missing:
		return "missing"
	default:
		return "malformed"
	}
}

// Identity is the part of a reference before the last "@".
// e.g. owner/repo or owner/repo/path/to/action
type Identity string

// Owner returns the first path segment.
func (id Identity) Owner() string {
	owner, _, _ := strings.Cut(string(id), "/")
	return owner
}

// Repo returns the second path segment, or "" if there is none.
func (id Identity) Repo() string {
	_, rest, ok := strings.Cut(string(id), "/")
	if !ok {
		return ""
	}
	repo, _, _ := strings.Cut(rest, "/")
	return repo
}

// Path returns the segments after owner/repo, or "" if there are none.
func (id Identity) Path() string {
	a := strings.SplitN(string(id), "/", 3) //nolint:mnd
	if len(a) < 3 {                          //nolint:mnd
		return ""
	}
	return a[2]
}

// IsLocal reports whether the identity is a path in the same repository.
func (id Identity) IsLocal() bool {
	return strings.HasPrefix(string(id), "./") || strings.HasPrefix(string(id), "../") || strings.HasPrefix(string(id), "/")
}

// IsDocker reports whether the identity is a Docker image.
func (id Identity) IsDocker() bool {
	return strings.HasPrefix(string(id), "docker://")
}

// Reference is an action reference decomposed into identity and specifier.
type Reference struct {
	Raw          string
	Identity     Identity
	Specifier    string
	HasSpecifier bool
}

// String joins the identity and the specifier. It always equals Raw.
func (r *Reference) String() string {
	if !r.HasSpecifier {
		return string(r.Identity)
	}
	return string(r.Identity) + "@" + r.Specifier
}

// Classifier classifies references against a fixed SHA length.
type Classifier struct {
	shaLength int
}

// NewClassifier returns a Classifier. A non-positive shaLength means DefaultSHALength.
func NewClassifier(shaLength int) *Classifier {
	if shaLength <= 0 {
		shaLength = DefaultSHALength
	}
	return &Classifier{shaLength: shaLength}
}

// SHALength returns the accepted length of a commit hash.
func (c *Classifier) SHALength() int {
	return c.shaLength
}

// Classify splits raw into a Reference and classifies its specifier.
// It never fails.
func (c *Classifier) Classify(raw string) (*Reference, VersionKind) {
	ref := &Reference{
		Raw: raw,
	}
	idx := strings.LastIndex(raw, "@")
	if idx < 0 {
		ref.Identity = Identity(raw)
		return ref, Missing
	}
	ref.Identity = Identity(raw[:idx])
	ref.Specifier = raw[idx+1:]
	ref.HasSpecifier = true
	if !validIdentity(string(ref.Identity)) || ref.Specifier == "" {
		return ref, Malformed
	}
	if c.isSHA(ref.Specifier) {
		return ref, SHAPinned
	}
	return ref, TagOrBranch
}

// Classify classifies raw with DefaultSHALength.
func Classify(raw string) (*Reference, VersionKind) {
	return defaultClassifier.Classify(raw)
}

var defaultClassifier = NewClassifier(DefaultSHALength) //nolint:gochecknoglobals

func (c *Classifier) isSHA(s string) bool {
	if len(s) != c.shaLength {
		return false
	}
	for _, r := range s {
		if !isHex(r) {
			return false
		}
	}
	return true
}

func isHex(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// validIdentity reports whether s is non-empty and has neither spaces nor non-printable characters.
func validIdentity(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
