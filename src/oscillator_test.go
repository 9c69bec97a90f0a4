package gravesdet

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Oscillator_UnitMagnitude(t *testing.T) {
	var o = newOscillator(1000, 137)

	for i := 0; i < 5000; i++ {
		var s = o.read()
		assert.InDelta(t, 1.0, cmplx.Abs(s), 1e-9)
	}
}

func Test_Oscillator_ZeroOffset_IsConstantOne(t *testing.T) {
	var o = newOscillator(1000, 0)

	for i := 0; i < 10; i++ {
		var s = o.read()
		assert.InDelta(t, 1.0, real(s), 1e-9)
		assert.InDelta(t, 0.0, imag(s), 1e-9)
	}
}

func Test_Oscillator_SetFreq_DoesNotResetPhase(t *testing.T) {
	var o = newOscillator(1000, 100)

	_ = o.read()
	_ = o.read()
	var phaseBefore = o.phase

	o.setFreq(1000, 50)

	assert.Equal(t, phaseBefore, o.phase)
}

func Test_Oscillator_PhaseStaysWrapped(t *testing.T) {
	var o = newOscillator(8000, 3900)

	for i := 0; i < 100_000; i++ {
		o.read()
		assert.True(t, o.phase > -math.Pi-1e-9 && o.phase <= math.Pi+1e-9)
	}
}
