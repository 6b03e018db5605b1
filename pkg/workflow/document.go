// Package workflow reads GitHub Actions workflow and composite action files
// into a typed tree of mappings, sequences, and scalars that keeps the source
// position of every node, and extracts the action references in them.
package workflow

// Document is a parsed YAML stream. Each YAML document of the stream is a root.
type Document struct {
	Path  string
	Roots []Node
}

// Kind is a guess at what a document describes, based on its top level keys.
type Kind int

const (
	KindUnknown Kind = iota
	KindWorkflow
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindWorkflow:
		return "workflow"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// Kind returns KindWorkflow if the first root has "jobs",
// KindAction if it has "runs", and KindUnknown otherwise.
func (d *Document) Kind() Kind {
	if len(d.Roots) == 0 {
		return KindUnknown
	}
	m, ok := d.Roots[0].(*Mapping)
	if !ok {
		return KindUnknown
	}
	if _, ok := m.Get("jobs"); ok {
		return KindWorkflow
	}
	if _, ok := m.Get("runs"); ok {
		return KindAction
	}
	return KindUnknown
}
