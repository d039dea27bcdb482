package relation

import (
	"cmp"
	"slices"
)

// Kind is the kind of a structural relationship.
type Kind int

const (
	KindInheritance Kind = iota
	KindAssociation
	KindComposition
)

func (k Kind) String() string {
	switch k {
	case KindInheritance:
		return "inheritance"
	case KindAssociation:
		return "association"
	case KindComposition:
		return "composition"
	default:
		return "unknown"
	}
}

// Pair is a directed (source, target) class pair.
type Pair struct {
	Source string
	Target string
}

// EdgeSet is a set of pairs of one kind.
type EdgeSet map[Pair]struct{}

// Add inserts the pair; duplicates collapse.
func (s EdgeSet) Add(source, target string) {
	s[Pair{Source: source, Target: target}] = struct{}{}
}

// Has reports whether the pair is in the set.
func (s EdgeSet) Has(source, target string) bool {
	_, ok := s[Pair{Source: source, Target: target}]
	return ok
}

// Sorted returns the pairs ordered by source, then target.
func (s EdgeSet) Sorted() []Pair {
	out := make([]Pair, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Pair) int {
		return cmp.Or(cmp.Compare(a.Source, b.Source), cmp.Compare(a.Target, b.Target))
	})
	return out
}
