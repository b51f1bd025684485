package dispatch

import (
	"sync"
	"time"
)

type batch struct {
	systems  []System
	accesses []Access
}

func (b *batch) add(s System, a Access) {
	b.systems = append(b.systems, s)
	b.accesses = append(b.accesses, a)
}

func (b *batch) conflicts(a Access) bool {
	for _, other := range b.accesses {
		if other.conflicts(a) {
			return true
		}
	}
	return false
}

// Schedule is the compiled form of a Builder: sequential batches whose
// members have pairwise disjoint conflict sets and therefore run
// concurrently.
type Schedule struct {
	batches []batch
}

// Run executes one frame. Batches run in order; systems within a batch run
// on their own goroutines and the batch completes when all of them return.
func (s *Schedule) Run(dt time.Duration) {
	for i := range s.batches {
		systems := s.batches[i].systems
		if len(systems) == 1 {
			systems[0].Update(dt)
			continue
		}
		var wg sync.WaitGroup
		for _, sys := range systems {
			wg.Add(1)
			go func(sys System) {
				defer wg.Done()
				sys.Update(dt)
			}(sys)
		}
		wg.Wait()
	}
}

// Systems returns the scheduled systems in execution order, batch by batch.
// Used by tests and startup logging.
func (s *Schedule) Systems() [][]string {
	out := make([][]string, len(s.batches))
	for i := range s.batches {
		for _, sys := range s.batches[i].systems {
			out[i] = append(out[i], sys.Name())
		}
	}
	return out
}
