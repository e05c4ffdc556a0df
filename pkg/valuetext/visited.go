package valuetext

import "github.com/goliatone/go-domtemplate/pkg/value"

// Visited records, in encounter order, the containers already entered during
// one top-level serialization. It is shared by every branch of that call and
// must not be reused across unrelated calls: a container reached twice through
// different paths is treated as a repeat either way.
type Visited struct {
	order []value.Ref
	seen  map[value.Ref]struct{}
}

// NewVisited returns an empty Visited set.
func NewVisited() *Visited {
	return &Visited{seen: make(map[value.Ref]struct{})}
}

// Has reports whether source was already recorded.
func (v *Visited) Has(source any) bool {
	if v == nil {
		return false
	}
	ref, ok := value.Identity(source)
	if !ok {
		return false
	}
	_, found := v.seen[ref]
	return found
}

// Add records source. Values without reference identity are ignored.
func (v *Visited) Add(source any) {
	ref, ok := value.Identity(source)
	if !ok {
		return
	}
	if v.seen == nil {
		v.seen = make(map[value.Ref]struct{})
	}
	if _, found := v.seen[ref]; found {
		return
	}
	v.seen[ref] = struct{}{}
	v.order = append(v.order, ref)
}

// Len returns the number of recorded containers.
func (v *Visited) Len() int {
	if v == nil {
		return 0
	}
	return len(v.order)
}
