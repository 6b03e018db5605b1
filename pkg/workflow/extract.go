package workflow

import "iter"

// usesKey is the key of a step (or a job calling a reusable workflow)
// whose value is an action reference.
const usesKey = "uses"

// Occurrence is an action reference found in a document.
type Occurrence struct {
	Position Position
	// Raw is the scalar value as written. It is empty for a null value.
	Raw string
	// Job is the id of the enclosing job under "jobs", if any.
	Job string
	// Step is the 1-based index of the enclosing step, or 0.
	Step int
}

type segment struct {
	key   string
	index int // -1 for a mapping key
}

// References returns the action references of the document in document order.
// A "uses" key is matched at any depth. Its value must be a scalar;
// otherwise the value is searched like any other node.
func (d *Document) References() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, root := range d.Roots {
			if !walk(root, nil, yield) {
				return
			}
		}
	}
}

// Occurrences collects References into a slice.
func (d *Document) Occurrences() []Occurrence {
	var occurrences []Occurrence
	for o := range d.References() {
		occurrences = append(occurrences, o)
	}
	return occurrences
}

func walk(n Node, trail []segment, yield func(Occurrence) bool) bool {
	switch n := n.(type) {
	case *Mapping:
		for _, e := range n.Entries {
			t := append(trail, segment{key: e.Key.Value, index: -1}) //nolint:gocritic
			if s, ok := e.Value.(*Scalar); ok && e.Key.Value == usesKey {
				if !yield(newOccurrence(s, t)) {
					return false
				}
				continue
			}
			if !walk(e.Value, t, yield) {
				return false
			}
		}
	case *Sequence:
		for i, item := range n.Items {
			if !walk(item, append(trail, segment{index: i}), yield) { //nolint:gocritic
				return false
			}
		}
	}
	return true
}

func newOccurrence(s *Scalar, trail []segment) Occurrence {
	o := Occurrence{
		Position: s.Position,
		Raw:      s.Value,
	}
	o.Job = jobID(trail)
	for i := 1; i < len(trail); i++ {
		if trail[i-1].key == "steps" && trail[i-1].index < 0 && trail[i].index >= 0 {
			o.Step = trail[i].index + 1
		}
	}
	return o
}

// jobID returns <job> of jobs.<job>.uses, jobs.<job>.steps[i].uses, and
// runs.<job>.steps[i].uses. runs.steps[i].uses of a composite action has no job.
func jobID(trail []segment) string {
	if len(trail) < 2 || trail[1].index >= 0 { //nolint:mnd
		return ""
	}
	switch trail[0].key {
	case "jobs":
		return trail[1].key
	case "runs":
		if len(trail) > 2 && trail[2].key == "steps" && trail[2].index < 0 { //nolint:mnd
			return trail[1].key
		}
	}
	return ""
}
