package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeAdvanceClampsRunawayDelta(t *testing.T) {
	clock := NewTime()

	// A ten second stall at 60fps would owe 600 steps; the bank clamp
	// caps the frame at the sub-step bound.
	steps := clock.Advance(10)
	assert.Equal(t, 8, steps)
	assert.Equal(t, 0.0, clock.TimeBank())
}

func TestTimeAdvanceBanksRemainder(t *testing.T) {
	clock := NewTime()
	clock.SetFramesPerSecond(30)
	clock.SetMaxSubSteps(4)

	steps := clock.Advance(0.2)
	assert.Equal(t, 4, steps, "0.2s at 30fps owes 6 steps, clamped to 4")
	assert.InDelta(t, 0, clock.TimeBank(), 1e-12)

	steps = clock.Advance(0.05)
	assert.Equal(t, 1, steps)
	assert.InDelta(t, 0.05-1.0/30, clock.TimeBank(), 1e-12)
}

func TestTimeBankInvariant(t *testing.T) {
	clock := NewTime()
	deltas := []float64{0.001, 0.016, 0.3, 0.0167, 1.5, 0.008, 0.033}
	for _, d := range deltas {
		clock.Advance(d)
		assert.GreaterOrEqual(t, clock.TimeBank(), 0.0)
		assert.Less(t, clock.TimeBank(), clock.DeltaSeconds())
	}
}

func TestTimeSmallDeltaAccumulates(t *testing.T) {
	clock := NewTime()
	clock.SetFramesPerSecond(64)

	// Frames shorter than a sub-step bank up until a whole step fits.
	total := 0
	for i := 0; i < 10; i++ {
		total += clock.Advance(0.005)
	}
	assert.Equal(t, 3, total, "50ms of 5ms frames at 64fps yields 3 steps")
}

func TestTimeRateChangeRecomputesBankBound(t *testing.T) {
	clock := NewTime()
	clock.SetFramesPerSecond(10)
	assert.Equal(t, 0.1, clock.DeltaSeconds())

	steps := clock.Advance(100)
	assert.Equal(t, 8, steps, "bank bound follows the new delta")
}

func TestTimeSubStepBracketing(t *testing.T) {
	clock := NewTime()
	assert.False(t, clock.InSubStep())
	clock.BeginSubStepping()
	assert.True(t, clock.InSubStep())
	clock.EndSubStepping()
	assert.False(t, clock.InSubStep())
}
