package ast

// HelperSet is an insertion-ordered set of runtime helpers. Generated code
// must be reproducible, so the order in which helpers are first used is the
// order they are imported in.
type HelperSet struct {
	order []RuntimeHelper
	index map[RuntimeHelper]struct{}
}

// NewHelperSet creates an empty set.
func NewHelperSet() *HelperSet {
	return &HelperSet{index: make(map[RuntimeHelper]struct{})}
}

// Add registers h and reports whether it was not already present.
func (s *HelperSet) Add(h RuntimeHelper) bool {
	if s.index == nil {
		s.index = make(map[RuntimeHelper]struct{})
	}
	if _, ok := s.index[h]; ok {
		return false
	}
	s.index[h] = struct{}{}
	s.order = append(s.order, h)
	return true
}

// Has reports membership.
func (s *HelperSet) Has(h RuntimeHelper) bool {
	_, ok := s.index[h]
	return ok
}

// Len returns the number of registered helpers.
func (s *HelperSet) Len() int {
	return len(s.order)
}

// List returns a copy of the helpers in first-insertion order.
func (s *HelperSet) List() []RuntimeHelper {
	out := make([]RuntimeHelper, len(s.order))
	copy(out, s.order)
	return out
}

// Names returns the symbol names in first-insertion order.
func (s *HelperSet) Names() []string {
	out := make([]string, len(s.order))
	for i, h := range s.order {
		out[i] = h.Name()
	}
	return out
}
