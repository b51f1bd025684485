package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyParentsBeforeChildren(t *testing.T) {
	parents := NewStore[Parent]()
	h := NewHierarchy(parents)

	root := NewEntityID(1, 0)
	mid := NewEntityID(2, 0)
	leaf := NewEntityID(3, 0)

	// Register deepest first to make the ordering work.
	parents.Set(leaf, &Parent{Entity: mid})
	parents.Set(mid, &Parent{Entity: root})

	order := h.All()
	require.Len(t, order, 2, "the root has no Parent component and is not listed")

	pos := map[EntityID]int{}
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos[mid], pos[leaf])
}

func TestHierarchyRebuildsOnChange(t *testing.T) {
	parents := NewStore[Parent]()
	h := NewHierarchy(parents)

	root := NewEntityID(1, 0)
	a := NewEntityID(2, 0)
	parents.Set(a, &Parent{Entity: root})
	require.Len(t, h.All(), 1)

	b := NewEntityID(3, 0)
	parents.Set(b, &Parent{Entity: a})
	order := h.All()
	require.Len(t, order, 2)
	assert.Equal(t, []EntityID{a, b}, order)

	parents.Remove(b)
	assert.Len(t, h.All(), 1)
}

func TestHierarchyMultipleTrees(t *testing.T) {
	parents := NewStore[Parent]()
	h := NewHierarchy(parents)

	r1, r2 := NewEntityID(1, 0), NewEntityID(2, 0)
	c1, c2 := NewEntityID(3, 0), NewEntityID(4, 0)
	parents.Set(c1, &Parent{Entity: r1})
	parents.Set(c2, &Parent{Entity: r2})

	order := h.All()
	assert.ElementsMatch(t, []EntityID{c1, c2}, order)
}

func TestHierarchyCycleExcluded(t *testing.T) {
	parents := NewStore[Parent]()
	h := NewHierarchy(parents)

	a, b := NewEntityID(1, 0), NewEntityID(2, 0)
	parents.Set(a, &Parent{Entity: b})
	parents.Set(b, &Parent{Entity: a})

	assert.Empty(t, h.All(), "a cycle has no root to start from")
	assert.ElementsMatch(t, []EntityID{a, b}, h.Excluded())
}
