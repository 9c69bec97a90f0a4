// Package derive computes consumer-side convenience values from a
// gravesdet.ChirpRecord: aggregate SNR/duration statistics and a per-sample
// Doppler series. None of this is part of the detector's contract — spec.md
// draws that line explicitly — it is what a real GRAVES monitoring station
// does with a chirp after the detector hands it over.
package derive

import (
	"math"

	gravesdet "meteorscatter/gravesdet/src"
)

// MeanSNR averages the per-sample SNR series already carried on the record.
func MeanSNR(record *gravesdet.ChirpRecord) float64 {
	if len(record.SNR) == 0 {
		return 0
	}

	var sum float64
	for _, snr := range record.SNR {
		sum += snr
	}
	return sum / float64(len(record.SNR))
}

// Duration returns the record's span in seconds.
func Duration(record *gravesdet.ChirpRecord) float64 {
	return float64(record.Len()) / record.SampleRate
}

// PeakSNR returns the largest per-sample SNR observed in the record, the
// instant closest to specular reflection for most meteor trails.
func PeakSNR(record *gravesdet.ChirpRecord) float64 {
	var peak float64
	for _, snr := range record.SNR {
		if snr > peak {
			peak = snr
		}
	}
	return peak
}

// MeanDoppler averages a Doppler velocity series (m/s) previously produced
// by Doppler. Kept as a free function, not a ChirpRecord method, because it
// operates on derived data the detector itself never computes.
func MeanDoppler(doppler []float64) float64 {
	if len(doppler) == 0 {
		return 0
	}

	var sum float64
	for _, v := range doppler {
		sum += v
	}
	return sum / float64(len(doppler))
}

// RMSDoppler returns the root-mean-square Doppler velocity, a measure of
// how much a trail's reflection wandered rather than simply drifted.
func RMSDoppler(doppler []float64) float64 {
	if len(doppler) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range doppler {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(doppler)))
}
