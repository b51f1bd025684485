package physics

import "math"

// Time tracks the fixed-step physics clock: the sub-step duration, the
// bound on sub-steps per frame, and the bank of unconsumed frame time.
//
// The bank clamp is the spiral-of-death guard. Each frame the wall-clock
// delta is added to the bank, and the bank is clamped to
// deltaSeconds*maxSubSteps before sub-steps are taken out of it, so a stall
// can never force an unbounded amount of catch-up stepping.
//
// Time is plain shared state. The batch system is its only writer during a
// run and declares write access on it; concurrent readers rely on that
// declaration, not on internal locking.
type Time struct {
	deltaSeconds float64
	maxSubSteps  int
	maxBankSize  float64
	timeBank     float64
	inSubStep    bool
}

// NewTime returns the clock at its defaults: 60 steps per second, at most
// 8 sub-steps per frame.
func NewTime() *Time {
	t := &Time{}
	t.SetFramesPerSecond(60)
	t.SetMaxSubSteps(8)
	return t
}

// DeltaSeconds is the duration of one physics sub-step.
func (t *Time) DeltaSeconds() float64 { return t.deltaSeconds }

// MaxSubSteps is the largest number of sub-steps a single frame may run.
func (t *Time) MaxSubSteps() int { return t.maxSubSteps }

// TimeBank is the currently banked, not yet consumed simulation time.
func (t *Time) TimeBank() float64 { return t.timeBank }

// InSubStep reports whether the sub-step loop is currently dispatching.
// Systems that run both per-frame and per-sub-step use this to tell the
// two contexts apart.
func (t *Time) InSubStep() bool { return t.inSubStep }

// SetFramesPerSecond sets the sub-step rate. The bank bound is recomputed
// immediately.
func (t *Time) SetFramesPerSecond(fps int) {
	t.setDeltaSeconds(1 / float64(fps))
}

// SetMaxSubSteps bounds the sub-steps per frame. Too high defeats the
// spiral-of-death guard, too low makes the simulation fall behind; the
// default of 8 is a good compromise.
func (t *Time) SetMaxSubSteps(n int) {
	t.maxSubSteps = n
	t.maxBankSize = t.deltaSeconds * float64(t.maxSubSteps)
}

func (t *Time) setDeltaSeconds(d float64) {
	t.deltaSeconds = d
	t.maxBankSize = t.deltaSeconds * float64(t.maxSubSteps)
}

// Advance banks a frame delta, clamps the bank, and withdraws as many whole
// sub-steps as the bank holds, returning the count. Afterwards
// 0 <= TimeBank < DeltaSeconds.
func (t *Time) Advance(frameDelta float64) int {
	t.timeBank += frameDelta
	t.timeBank = math.Min(t.timeBank, t.maxBankSize)
	steps := math.Floor(t.timeBank / t.deltaSeconds)
	t.timeBank -= steps * t.deltaSeconds
	return int(steps)
}

// BeginSubStepping and EndSubStepping bracket the sub-step loop; only the
// batch system calls them.
func (t *Time) BeginSubStepping() { t.inSubStep = true }
func (t *Time) EndSubStepping()  { t.inSubStep = false }
