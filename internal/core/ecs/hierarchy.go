package ecs

import "sort"

// Parent links an entity to the entity it is attached under.
type Parent struct {
	Entity EntityID
}

// Hierarchy maintains a topologically sorted view over a Parent store:
// every entity appears after its parent. It rebuilds lazily, only when the
// parent store has changed since the last call to All.
//
// Entities on a parent cycle are unreachable from any root and are left
// out of the order; they surface to callers as unresolved, which the
// attachment pass reports.
type Hierarchy struct {
	parents  *Store[Parent]
	cursor   *Cursor
	order    []EntityID
	excluded []EntityID
	built    bool
}

func NewHierarchy(parents *Store[Parent]) *Hierarchy {
	return &Hierarchy{
		parents: parents,
		cursor:  parents.Register(),
	}
}

// All returns every entity that has a Parent component, parents before
// children. The returned slice is owned by the hierarchy; do not mutate.
func (h *Hierarchy) All() []EntityID {
	if len(h.parents.Read(h.cursor)) > 0 || !h.built {
		h.rebuild()
		h.built = true
	}
	return h.order
}

// Excluded returns the entities left out of the last ordering: members of
// a parent cycle. Callers report them; the hierarchy itself stays quiet.
func (h *Hierarchy) Excluded() []EntityID {
	return h.excluded
}

func (h *Hierarchy) rebuild() {
	children := make(map[EntityID][]EntityID, h.parents.Len())
	roots := make([]EntityID, 0, 16)
	h.parents.Each(func(id EntityID, p *Parent) {
		children[p.Entity] = append(children[p.Entity], id)
	})
	// A root is any referenced parent that itself carries no Parent
	// component: the chain above it is resolved outside the hierarchy.
	for parent := range children {
		if !h.parents.Has(parent) {
			roots = append(roots, parent)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	h.order = h.order[:0]
	queue := roots
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		kids := children[cur]
		sort.Slice(kids, func(i, j int) bool { return kids[i] < kids[j] })
		for _, kid := range kids {
			h.order = append(h.order, kid)
			queue = append(queue, kid)
		}
	}

	h.excluded = h.excluded[:0]
	if len(h.order) < h.parents.Len() {
		ordered := make(map[EntityID]struct{}, len(h.order))
		for _, id := range h.order {
			ordered[id] = struct{}{}
		}
		h.parents.Each(func(id EntityID, _ *Parent) {
			if _, ok := ordered[id]; !ok {
				h.excluded = append(h.excluded, id)
			}
		})
		sort.Slice(h.excluded, func(i, j int) bool { return h.excluded[i] < h.excluded[j] })
	}
}
