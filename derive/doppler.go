package derive

import (
	"math"

	gravesdet "meteorscatter/gravesdet/src"
)

// speedOfLight in m/s, used to convert a Doppler frequency shift into a
// radial velocity. Matches spec.md §6.5's stated constant.
const speedOfLight = 2.998e8

// GravesCarrierHz is GRAVES's published transmit frequency (spec.md §6.5),
// the default carrier for Doppler conversion when no other is configured.
const GravesCarrierHz = 143.050e6

// Doppler computes a per-sample radial velocity series (m/s) from a
// ChirpRecord's raw samples, by unwrapping the instantaneous phase
// difference between consecutive samples into a frequency shift and scaling
// by the transmitter's carrier frequency and the bistatic half-angle
// (bistaticAngleRad; 0 for a monostatic approximation).
//
// The first sample has no predecessor, so its Doppler value repeats the
// second sample's estimate.
func Doppler(record *gravesdet.ChirpRecord, carrierHz, bistaticAngleRad float64) []float64 {
	var n = record.Len()
	var out = make([]float64, n)
	if n < 2 {
		return out
	}

	var cosHalfAngle = math.Cos(bistaticAngleRad / 2)
	if cosHalfAngle == 0 {
		cosHalfAngle = 1
	}

	var prevPhase = phaseOf(record.Samples[0])
	for i := 1; i < n; i++ {
		var phase = phaseOf(record.Samples[i])
		var diff = unwrap(phase - prevPhase)
		prevPhase = phase

		var freqShift = diff * record.SampleRate / (2 * math.Pi)
		out[i] = freqShift * speedOfLight / (2 * carrierHz * cosHalfAngle)
	}
	out[0] = out[1]

	return out
}

func phaseOf(s complex128) float64 {
	return math.Atan2(imag(s), real(s))
}

// unwrap folds a phase difference into (-pi, pi], correcting the single
// ±2*pi jump that a per-sample phase difference can exhibit.
func unwrap(diff float64) float64 {
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff <= -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}
