package gravesdet

import "math"

// minNormalizedCutoffFloor is the hard safety floor on a normalized filter
// cutoff (cutoff / sample rate), below which the Butterworth design becomes
// numerically unreliable. Mirrors GRAVES_MIN_LPF_CUTOFF from the reference
// detector.
const minNormalizedCutoffFloor = 0.00016

// snrCeiling bounds q_to_snr's output as Q approaches 1.
const snrCeiling = 100.0

// DetectorParams are the immutable construction parameters of a Detector.
// See spec.md §3 for the full semantics of each field.
type DetectorParams struct {
	// SampleRate is Fs in Hz, must be > 0.
	SampleRate float64

	// TuningOffset is Fc in Hz, the initial NCO frequency; |Fc| < Fs/2.
	TuningOffset float64

	// WideCutoff is Fc1 in Hz, the wide Butterworth low-pass cutoff.
	WideCutoff float64

	// NarrowCutoff is Fc2 in Hz, the narrow Butterworth low-pass cutoff.
	// Must be strictly less than WideCutoff.
	NarrowCutoff float64

	// Threshold is tau, dimensionless, > 0. Reference default 2.0.
	Threshold float64

	// MinChirpDuration is T_min in seconds. Reference default 0.07.
	MinChirpDuration float64
}

// DefaultParams returns the reference detector's defaults for every field
// except SampleRate and TuningOffset, which are inherently deployment
// specific.
func DefaultParams(sampleRate, tuningOffset float64) DetectorParams {
	return DetectorParams{
		SampleRate:       sampleRate,
		TuningOffset:     tuningOffset,
		WideCutoff:       300,
		NarrowCutoff:     50,
		Threshold:        2.0,
		MinChirpDuration: 0.07,
	}
}

// validate checks the construction invariants from spec.md §3/§4.2 and
// returns a ready-to-use *Error (kind InvalidParameter) on failure, along
// with the derived quantities callers need (ratio, window length, alpha,
// energy threshold) so Detector construction doesn't recompute them.
func (p DetectorParams) validate() (ratio float64, windowLen int, alpha float64, energyThreshold float64, err *Error) {
	if p.SampleRate <= 0 {
		return 0, 0, 0, 0, newError(InvalidParameter, "sample rate must be positive, got %g", p.SampleRate)
	}

	if math.Abs(p.TuningOffset) >= p.SampleRate/2 {
		return 0, 0, 0, 0, newError(
			InvalidParameter,
			"tuning offset %g Hz must satisfy |Fc| < Fs/2 (%g Hz)",
			p.TuningOffset, p.SampleRate/2)
	}

	if p.WideCutoff <= p.NarrowCutoff {
		return 0, 0, 0, 0, newError(
			InvalidParameter,
			"wide cutoff (%g Hz) must be greater than narrow cutoff (%g Hz)",
			p.WideCutoff, p.NarrowCutoff)
	}

	if p.Threshold <= 0 {
		return 0, 0, 0, 0, newError(InvalidParameter, "threshold must be positive, got %g", p.Threshold)
	}

	if p.MinChirpDuration <= 0 {
		return 0, 0, 0, 0, newError(InvalidParameter, "min chirp duration must be positive, got %g", p.MinChirpDuration)
	}

	for _, cutoff := range []float64{p.WideCutoff, p.NarrowCutoff} {
		normalized := cutoff / p.SampleRate
		if normalized < minNormalizedCutoffFloor {
			safeMinFs := cutoff / minNormalizedCutoffFloor
			return 0, 0, 0, 0, newError(
				InvalidParameter,
				"cutoff %g Hz is below the safety floor at Fs=%g Hz; "+
					"this cutoff is only safe when Fs >= %g Hz",
				cutoff, p.SampleRate, safeMinFs)
		}
	}

	ratio = p.NarrowCutoff / p.WideCutoff
	windowLen = int(math.Ceil(p.SampleRate * p.MinChirpDuration))
	if windowLen < 1 {
		windowLen = 1
	}
	alpha = 1 - math.Exp(-1/(p.SampleRate*p.MinChirpDuration))
	energyThreshold = p.Threshold * ratio * float64(windowLen)

	return ratio, windowLen, alpha, energyThreshold, nil
}
