package workflow

// Position is a 1-based location in a document. A zero Line means unknown.
type Position struct {
	Line   int
	Column int
}

func (p Position) Pos() Position {
	return p
}

// Node is one of *Mapping, *Sequence, or *Scalar.
type Node interface {
	Pos() Position
	node()
}

type Mapping struct {
	Position
	Entries []*Entry
}

// Entry is a key/value pair of a Mapping.
// Value is nil when it can't be represented, e.g. an alias of a collection.
type Entry struct {
	Key   *Scalar
	Value Node
}

type Sequence struct {
	Position
	Items []Node
}

type Scalar struct {
	Position
	Value string
	Null  bool
}

func (*Mapping) node()  {}
func (*Sequence) node() {}
func (*Scalar) node()   {}

// Get returns the value of the first entry whose key is key.
func (m *Mapping) Get(key string) (Node, bool) {
	for _, e := range m.Entries {
		if e.Key.Value == key {
			return e.Value, true
		}
	}
	return nil, false
}
