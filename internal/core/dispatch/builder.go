package dispatch

import "fmt"

type node struct {
	sys     System
	access  Access
	deps    []string
	barrier bool // barrier marker; sys is nil
}

// Builder collects systems, their access declarations and their ordering
// constraints, then compiles them into a static Schedule. All wiring errors
// (duplicate names, unknown dependencies) are reported by Build, before any
// frame runs.
type Builder struct {
	nodes []node
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add registers a system. deps name systems that must have finished before
// this one starts within the same barrier section.
func (b *Builder) Add(sys System, access Access, deps ...string) *Builder {
	b.nodes = append(b.nodes, node{sys: sys, access: access, deps: deps})
	return b
}

// AddBarrier ends the current section: everything registered before the
// barrier completes before anything after it starts.
func (b *Builder) AddBarrier() *Builder {
	b.nodes = append(b.nodes, node{barrier: true})
	return b
}

// Build compiles the registered systems into sequential batches. Within a
// barrier section a system lands in the earliest batch after all of its
// dependencies and after any earlier system with conflicting access.
func (b *Builder) Build() (*Schedule, error) {
	seen := make(map[string]int, len(b.nodes)) // name -> batch index
	var batches []batch
	sectionStart := 0 // first batch index usable in the current section

	for _, n := range b.nodes {
		if n.barrier {
			sectionStart = len(batches)
			continue
		}
		name := n.sys.Name()
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("dispatch: duplicate system %q", name)
		}
		at := sectionStart
		for _, dep := range n.deps {
			depBatch, ok := seen[dep]
			if !ok {
				return nil, fmt.Errorf("dispatch: system %q depends on unknown system %q", name, dep)
			}
			if depBatch < sectionStart {
				// Dependency already sequenced by an interposed barrier.
				continue
			}
			if depBatch+1 > at {
				at = depBatch + 1
			}
		}
		// Serialize against every earlier-registered conflicting system:
		// land after the last batch whose members conflict with us.
		for i := at; i < len(batches); i++ {
			if batches[i].conflicts(n.access) {
				at = i + 1
			}
		}
		for len(batches) <= at {
			batches = append(batches, batch{})
		}
		batches[at].add(n.sys, n.access)
		seen[name] = at
	}
	return &Schedule{batches: batches}, nil
}
