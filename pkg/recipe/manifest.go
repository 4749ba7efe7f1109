package recipe

import "github.com/ormasoftchile/unbox/pkg/schema"

// Move relocates one file inside the destination. Moves never depend
// on each other: each target's parent directories are created when the
// move is applied.
type Move struct {
	From string
	To   string
}

// Manifest is the resolved file set for one recipe variant: the paths
// that must exist in the destination, and the renames to apply. Paths
// are slash-separated and destination-relative.
type Manifest struct {
	Paths   map[string]struct{}
	Moves   []Move
	targets map[string]struct{}
}

// Build flattens a resolved leaf plus the recipe's common files into a
// manifest. Plain specs contribute their path; move specs contribute
// their From to the path set and the full move, in source order.
func Build(leaf, common []schema.FileSpec) *Manifest {
	m := &Manifest{
		Paths:   make(map[string]struct{}, len(leaf)+len(common)),
		targets: make(map[string]struct{}),
	}
	m.add(leaf)
	m.add(common)
	return m
}

func (m *Manifest) add(specs []schema.FileSpec) {
	for _, spec := range specs {
		if spec.IsMove() {
			m.Paths[spec.From] = struct{}{}
			m.targets[spec.To] = struct{}{}
			m.Moves = append(m.Moves, Move{From: spec.From, To: spec.To})
			continue
		}
		m.Paths[spec.Path] = struct{}{}
	}
}

// Contains reports whether the slash-separated relative path is part
// of the variant.
func (m *Manifest) Contains(rel string) bool {
	_, ok := m.Paths[rel]
	return ok
}

// Retain adds an extra path to the variant, shielding it from
// pruning. Used for files deliberately left in the destination
// outside any recipe, such as a preserved box config.
func (m *Manifest) Retain(rel string) {
	m.Paths[rel] = struct{}{}
}

// IsMoveTarget reports whether the slash-separated relative path is
// the destination of one of the manifest's moves. Such paths are
// exempt from pruning so reconciling an already-reconciled tree
// deletes nothing.
func (m *Manifest) IsMoveTarget(rel string) bool {
	_, ok := m.targets[rel]
	return ok
}
