package gravesdet

import "math"

// oscillator is a numerically controlled oscillator producing
// exp(-j*2*pi*(Fc/Fs)*n), advanced one sample per tick. It is the detector's
// local tuning reference: the raw input is multiplied by the conjugate of
// this tone to bring the band of interest to baseband.
//
// Phase is tracked directly (not regenerated from n) so that retuning via
// setFreq never introduces a phase discontinuity: only the phase
// increment changes, not the accumulated phase itself.
type oscillator struct {
	phase float64 // radians, wrapped to (-pi, pi]
	step  float64 // radians advanced per tick = -2*pi*Fc/Fs
}

func newOscillator(sampleRate, tuningOffset float64) *oscillator {
	o := &oscillator{}
	o.setFreq(sampleRate, tuningOffset)
	return o
}

// setFreq reseats the oscillator's per-sample phase increment. Phase itself
// is left untouched, per spec.md §4.1 ("implementations should avoid
// re-initializing phase to zero").
func (o *oscillator) setFreq(sampleRate, tuningOffset float64) {
	o.step = -2 * math.Pi * tuningOffset / sampleRate
}

// read returns the current complex tone sample and advances the phase by
// one step.
func (o *oscillator) read() complex128 {
	s, c := math.Sincos(o.phase)
	out := complex(c, s)

	o.phase += o.step
	if o.phase > math.Pi {
		o.phase -= 2 * math.Pi
	} else if o.phase <= -math.Pi {
		o.phase += 2 * math.Pi
	}

	return out
}
