package gravesdet

// ring is the fixed-size look-back history described in spec.md §3: H
// samples, Q values and narrow-channel noise powers, written in a circle.
// After a write, cursor points at the oldest surviving entry — exactly the
// sample that will be overwritten next.
//
// windowedEnergy recomputes the sum over all H entries on every call. This
// is deliberately O(H) per feed (spec.md §5's documented worst case): the
// reference detector does the same full-window summation rather than
// maintaining an incremental running total, and H is bounded by a handful
// of hundred samples for any realistic T_min/Fs pair.
type ring struct {
	samples []complex128
	q       []float64
	pNarrow []float64
	cursor  int
}

func newRing(length int) *ring {
	return &ring{
		samples: make([]complex128, length),
		q:       make([]float64, length),
		pNarrow: make([]float64, length),
	}
}

func (r *ring) len() int { return len(r.samples) }

// write stores one entry and advances the cursor modulo H, so that after
// the call r.cursor points at the oldest remaining slot.
func (r *ring) write(sample complex128, q, pNarrow float64) {
	r.samples[r.cursor] = sample
	r.q[r.cursor] = q
	r.pNarrow[r.cursor] = pNarrow

	r.cursor++
	if r.cursor == len(r.samples) {
		r.cursor = 0
	}
}

// windowedEnergy sums the Q history across the whole ring.
func (r *ring) windowedEnergy() float64 {
	var e float64
	for _, v := range r.q {
		e += v
	}
	return e
}

// oldestFirst appends the ring's contents to dst, samples, q and pNarrow,
// starting at the current cursor (the oldest entry) and wrapping around —
// i.e. in the order the samples were originally fed.
func (r *ring) oldestFirst(dstSamples []complex128, dstQ, dstPNarrow []float64) ([]complex128, []float64, []float64) {
	n := len(r.samples)
	for i := 0; i < n; i++ {
		idx := (r.cursor + i) % n
		dstSamples = append(dstSamples, r.samples[idx])
		dstQ = append(dstQ, r.q[idx])
		dstPNarrow = append(dstPNarrow, r.pNarrow[idx])
	}
	return dstSamples, dstQ, dstPNarrow
}
