package gravesdet

// captureBuffer accumulates the three parallel series recorded during an
// active chirp: demodulated samples, the Q statistic and the narrow-channel
// noise power. Growth is amortized O(1) via Go's slice append; reset keeps
// the backing arrays so a long run of short chirps does not re-allocate on
// every event.
//
// maxLen bounds how large a single capture may grow. The C reference
// surfaces a malloc failure as AllocationFailed; Go's GC does not expose
// allocation failure as a recoverable return value, so this bound is the
// idiomatic stand-in — it protects against unbounded growth if a pathological
// input (e.g. persistent in-band RFI) never lets the energy statistic drop
// back below threshold.
type captureBuffer struct {
	samples []complex128
	q       []float64
	pNarrow []float64
	maxLen  int
}

func newCaptureBuffer(maxLen int) *captureBuffer {
	return &captureBuffer{maxLen: maxLen}
}

// reset truncates the buffers to zero length without releasing capacity.
func (c *captureBuffer) reset() {
	c.samples = c.samples[:0]
	c.q = c.q[:0]
	c.pNarrow = c.pNarrow[:0]
}

// appendRing seeds the buffer with the full look-back window, oldest first.
func (c *captureBuffer) appendRing(r *ring) bool {
	if c.maxLen > 0 && r.len() > c.maxLen {
		return false
	}
	c.samples, c.q, c.pNarrow = r.oldestFirst(c.samples, c.q, c.pNarrow)
	return true
}

// append adds one more sample/Q/noise-power triple. It reports false (and
// leaves the buffer untouched) if growing past maxLen.
func (c *captureBuffer) append(sample complex128, q, pNarrow float64) bool {
	if c.maxLen > 0 && len(c.samples) >= c.maxLen {
		return false
	}
	c.samples = append(c.samples, sample)
	c.q = append(c.q, q)
	c.pNarrow = append(c.pNarrow, pNarrow)
	return true
}

func (c *captureBuffer) len() int { return len(c.samples) }
