// Package dispatch schedules systems over shared world state. Systems
// declare the resources they read and write; systems whose declarations do
// not conflict run concurrently, conflicting ones are serialized, and
// explicit barriers cut the schedule into strictly ordered sections.
package dispatch

import "time"

// System is one unit of work executed every frame.
type System interface {
	Name() string
	Update(dt time.Duration)
}

// Access declares the resource keys a system touches. Keys are free-form
// strings; two systems conflict when one writes a key the other reads or
// writes.
type Access struct {
	Reads  []string
	Writes []string
}

func (a Access) conflicts(b Access) bool {
	return overlaps(a.Writes, b.Writes) ||
		overlaps(a.Writes, b.Reads) ||
		overlaps(a.Reads, b.Writes)
}

func overlaps(xs, ys []string) bool {
	for _, x := range xs {
		for _, y := range ys {
			if x == y {
				return true
			}
		}
	}
	return false
}
