package gravesdet

import "math"

// ChirpRecord is a self-contained descriptor of one detected echo. It owns
// its buffers; a Sink may retain, copy, or discard them freely once OnChirp
// returns.
type ChirpRecord struct {
	// StartSeconds and StartFraction together locate the chirp's leading
	// edge on the stream's wall clock: StartSeconds + StartFraction is the
	// time, in seconds since the detector's first feed, of the oldest
	// sample in this record.
	StartSeconds  int64
	StartFraction float64

	// SampleRate and Ratio are copied from the detector at assembly time.
	SampleRate float64
	Ratio      float64

	// Samples, Q and PNarrow are the three captured series, in the order
	// they were originally fed: the look-back window followed by whatever
	// was captured while the chirp was active.
	Samples []complex128
	Q       []float64
	PNarrow []float64

	// SNR and NoiseFloor are derived per-sample series (spec.md §4.3),
	// computed once here at record assembly rather than on every feed.
	SNR        []float64
	NoiseFloor []float64
}

// Len returns the number of samples in the record (L in spec.md).
func (c *ChirpRecord) Len() int { return len(c.Samples) }

// assembleChirpRecord builds a ChirpRecord from the capture buffers at the
// instant a chirp closes. nClose is the sample counter's value at close
// (i.e. the index of the sample that caused the close transition).
func assembleChirpRecord(fs, ratio float64, nClose uint64, capture *captureBuffer) *ChirpRecord {
	l := capture.len()

	samples := make([]complex128, l)
	copy(samples, capture.samples)
	q := make([]float64, l)
	copy(q, capture.q)
	pNarrow := make([]float64, l)
	copy(pNarrow, capture.pNarrow)

	snr := make([]float64, l)
	noiseFloor := make([]float64, l)
	for i := range q {
		snr[i] = qToSNR(ratio, q[i])
		noiseFloor[i] = ratio * noisePower(ratio, pNarrow[i], snr[i])
	}

	n0 := nClose - uint64(l)
	totalSeconds := float64(n0) / fs
	startSeconds := math.Floor(totalSeconds)

	return &ChirpRecord{
		StartSeconds:  int64(startSeconds),
		StartFraction: totalSeconds - startSeconds,
		SampleRate:    fs,
		Ratio:         ratio,
		Samples:       samples,
		Q:             q,
		PNarrow:       pNarrow,
		SNR:           snr,
		NoiseFloor:    noiseFloor,
	}
}
