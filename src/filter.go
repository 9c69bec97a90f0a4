package gravesdet

import "math"

// butterworthSections is the number of cascaded biquad sections used for a
// 4-pole Butterworth low-pass (2 poles per section).
const butterworthSections = 2

// biquadCoeffs holds a normalized (a0 == 1) direct-form-II-transposed biquad
// section's coefficients, designed once at construction.
type biquadCoeffs struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// biquadState holds one channel's running state for a biquad section.
// Direct-form-II-transposed needs only two state words per section
// regardless of whether the input is real or imaginary.
type biquadState struct {
	w1, w2 float64
}

func (c biquadCoeffs) tick(s *biquadState, x float64) float64 {
	y := c.b0*x + s.w1
	s.w1 = c.b1*x - c.a1*y + s.w2
	s.w2 = c.b2*x - c.a2*y
	return y
}

// butterworthLPF is a 4-pole (order-4) Butterworth low-pass filter applied
// independently to the real and imaginary rails of a complex baseband
// sample, realized as a cascade of two biquad sections designed from the
// standard analog Butterworth pole angles and the bilinear transform.
type butterworthLPF struct {
	coeffs [butterworthSections]biquadCoeffs
	re     [butterworthSections]biquadState
	im     [butterworthSections]biquadState
}

// newButterworthLPF designs a 4-pole Butterworth low-pass with the given
// cutoff already normalized to the sample rate (cutoff/Fs, 0 < fc < 0.5).
func newButterworthLPF(normalizedCutoff float64) *butterworthLPF {
	const order = 2 * butterworthSections

	// Pre-warp the cutoff for the bilinear transform.
	warped := math.Tan(math.Pi * normalizedCutoff)

	f := &butterworthLPF{}
	for k := 0; k < butterworthSections; k++ {
		// Butterworth pole angles for an order-N all-pole prototype,
		// paired into conjugate sections; each section behaves like a
		// 2nd-order low-pass with Q = 1/(2*cos(theta)).
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		q := 1 / (2 * math.Cos(theta))

		wc := warped
		k0 := wc * wc
		alpha := wc / q
		a0 := k0 + alpha + 1

		f.coeffs[k] = biquadCoeffs{
			b0: k0 / a0,
			b1: 2 * k0 / a0,
			b2: k0 / a0,
			a1: (2*k0 - 2) / a0,
			a2: (k0 - alpha + 1) / a0,
		}
	}

	return f
}

// feed applies the cascade to one complex sample and returns the filtered
// output.
func (f *butterworthLPF) feed(x complex128) complex128 {
	re, im := real(x), imag(x)
	for k := 0; k < butterworthSections; k++ {
		re = f.coeffs[k].tick(&f.re[k], re)
		im = f.coeffs[k].tick(&f.im[k], im)
	}
	return complex(re, im)
}
