package gravesdet

// Sink receives chirps as they are closed. OnChirp runs inline on the
// feeding goroutine (spec.md §5): it must not block for longer than one
// sample interval at the target rate. Returning false aborts the current
// Feed/FeedBatch call with a SinkFailed error; the detector itself remains
// in a consistent IDLE state and feeding may continue.
type Sink interface {
	OnChirp(record *ChirpRecord) bool
}

// SinkFunc adapts a plain function to the Sink interface, the way
// http.HandlerFunc adapts a function to http.Handler.
type SinkFunc func(record *ChirpRecord) bool

func (f SinkFunc) OnChirp(record *ChirpRecord) bool { return f(record) }
