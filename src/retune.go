package gravesdet

import "sync/atomic"

// pendingRetune is the single cross-thread mutable cell described in
// spec.md §5 and §9: SetCenterFreqLater may be called from any producer,
// but is only ever consumed by the feeding goroutine at the top of a feed
// batch. atomic.Pointer gives us a true single-word exchange: set stores a
// fresh *float64, and take swaps it out for nil in one atomic operation, so
// the producer thread never observes a torn or double-applied value.
type pendingRetune struct {
	cell atomic.Pointer[float64]
}

// set schedules fc to be applied at the next take. Safe from any goroutine.
func (p *pendingRetune) set(fc float64) {
	v := fc
	p.cell.Store(&v)
}

// take atomically retrieves and clears any pending retune. Called only by
// the feeding goroutine.
func (p *pendingRetune) take() (fc float64, ok bool) {
	v := p.cell.Swap(nil)
	if v == nil {
		return 0, false
	}
	return *v, true
}
