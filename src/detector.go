package gravesdet

import (
	"math/cmplx"

	"github.com/charmbracelet/log"
)

// Detector is the streaming chirp detector described in spec.md. It is
// driven by a single producer calling Feed/FeedBatch; SetCenterFreqLater is
// the only operation safe to call from another goroutine.
type Detector struct {
	params DetectorParams

	ratio           float64
	windowLen       int
	alpha           float64
	energyThreshold float64

	osc       *oscillator
	wideLPF   *butterworthLPF
	narrowLPF *butterworthLPF
	pWide     *powerTracker
	pNarrow   *powerTracker
	q         *qStatistic

	hist    *ring
	capture *captureBuffer

	inChirp bool
	n       uint64

	retune pendingRetune

	sink   Sink
	logger *log.Logger
}

// Option configures optional Detector behavior at construction time.
type Option func(*detectorOptions)

type detectorOptions struct {
	maxCaptureSamples int
	logger            *log.Logger
}

// defaultMaxCaptureMultiple bounds a capture to this many multiples of the
// look-back window H before AllocationFailed is raised, guarding against
// unbounded growth if persistent in-band energy never lets a chirp close.
const defaultMaxCaptureMultiple = 4096

// WithMaxCaptureSamples overrides the default capture bound. Zero disables
// the bound entirely (not recommended for production use).
func WithMaxCaptureSamples(n int) Option {
	return func(o *detectorOptions) { o.maxCaptureSamples = n }
}

// WithLogger overrides the detector's logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(o *detectorOptions) { o.logger = logger }
}

// New constructs a Detector. It validates params (returning an
// InvalidParameter *Error on failure) and allocates the look-back ring up
// front; the capture buffer starts empty and grows as chirps are captured.
// No partial detector is ever returned.
func New(params DetectorParams, sink Sink, opts ...Option) (*Detector, error) {
	if sink == nil {
		panic("gravesdet: nil Sink")
	}

	ratio, windowLen, alpha, energyThreshold, err := params.validate()
	if err != nil {
		return nil, err
	}

	options := detectorOptions{
		maxCaptureSamples: windowLen * defaultMaxCaptureMultiple,
		logger:            discardLogger(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = discardLogger()
	}

	d := &Detector{
		params:          params,
		ratio:           ratio,
		windowLen:       windowLen,
		alpha:           alpha,
		energyThreshold: energyThreshold,

		osc:       newOscillator(params.SampleRate, params.TuningOffset),
		wideLPF:   newButterworthLPF(params.WideCutoff / params.SampleRate),
		narrowLPF: newButterworthLPF(params.NarrowCutoff / params.SampleRate),
		pWide:     newPowerTracker(alpha),
		pNarrow:   newPowerTracker(alpha),
		q:         newQStatistic(),

		hist:    newRing(windowLen),
		capture: newCaptureBuffer(options.maxCaptureSamples),

		sink:   sink,
		logger: options.logger,
	}

	d.logger.Info("detector constructed",
		"sample_rate", params.SampleRate,
		"tuning_offset", params.TuningOffset,
		"wide_cutoff", params.WideCutoff,
		"narrow_cutoff", params.NarrowCutoff,
		"threshold", params.Threshold,
		"window", windowLen,
		"ratio", ratio,
		"energy_threshold", energyThreshold)

	return d, nil
}

// Params returns the immutable construction parameters.
func (d *Detector) Params() DetectorParams { return d.params }

// Ratio returns R = Fc2/Fc1, the band ratio used for SNR normalization.
func (d *Detector) Ratio() float64 { return d.ratio }

// SetCenterFreqLater schedules a retune to fc, applied at the start of the
// next Feed/FeedBatch call. Safe to call from any goroutine.
func (d *Detector) SetCenterFreqLater(fc float64) {
	d.retune.set(fc)
}

// Feed applies any pending retune, then consumes one complex baseband
// sample. It never blocks; every call costs O(H) for the windowed energy
// sum, and appends to the capture buffer are amortized O(1).
func (d *Detector) Feed(sample complex128) error {
	d.applyPendingRetune()
	return d.feedSample(sample)
}

func (d *Detector) applyPendingRetune() {
	if fc, ok := d.retune.take(); ok {
		d.osc.setFreq(d.params.SampleRate, fc)
		d.logger.Debug("retuned", "fc", fc)
	}
}

func (d *Detector) feedSample(sample complex128) error {
	lo := d.osc.read()
	tuned := sample * cmplx.Conj(lo)

	yWide := d.wideLPF.feed(tuned)
	pWide := d.pWide.update(yWide)

	yNarrow := d.narrowLPF.feed(tuned)
	pNarrow := d.pNarrow.update(yNarrow)

	q := d.q.update(pNarrow, pWide)

	d.hist.write(yNarrow, q, pNarrow)
	energy := d.hist.windowedEnergy()

	var feedErr error

	switch {
	case d.inChirp && energy < d.energyThreshold:
		d.inChirp = false
		record := assembleChirpRecord(d.params.SampleRate, d.ratio, d.n, d.capture)
		if !d.sink.OnChirp(record) {
			feedErr = newError(SinkFailed, "sink rejected chirp of length %d closing at sample %d", record.Len(), d.n)
			d.logger.Warn("sink rejected chirp", "length", record.Len(), "n_close", d.n)
		} else {
			d.logger.Info("chirp emitted", "length", record.Len(), "n_close", d.n)
		}

	case d.inChirp:
		if !d.capture.append(yNarrow, q, pNarrow) {
			d.inChirp = false
			d.capture.reset()
			feedErr = newError(AllocationFailed, "capture buffer exceeded max length at sample %d", d.n)
			d.logger.Error("capture buffer overflow, chirp dropped", "n", d.n)
		}

	case energy >= d.energyThreshold:
		d.capture.reset()
		if !d.capture.appendRing(d.hist) {
			feedErr = newError(AllocationFailed, "capture buffer could not hold look-back window at sample %d", d.n)
			d.logger.Error("could not seed look-back window", "n", d.n)
		} else {
			d.inChirp = true
		}
	}

	d.n++

	return feedErr
}

// FeedBatch feeds samples in order. Any pending retune is applied exactly
// once, at the first sample of the batch. Feeding stops at the first error;
// the caller decides whether to continue with a subsequent call.
func (d *Detector) FeedBatch(samples []complex128) error {
	d.applyPendingRetune()
	for _, s := range samples {
		if err := d.feedSample(s); err != nil {
			return err
		}
	}
	return nil
}
