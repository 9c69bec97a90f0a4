package iqsource

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// AudioSource reads a live complex baseband stream from the default sound
// card's stereo input: left channel is I, right channel is Q. This is the
// common hobbyist path for feeding a GRAVES detector from an SDR dongle's
// audio-rate baseband output.
type AudioSource struct {
	sampleRate float64
	frames     int
}

// NewAudioSource prepares an AudioSource at sampleRate, reading frames
// stereo samples per underlying portaudio buffer.
func NewAudioSource(sampleRate float64, frames int) *AudioSource {
	return &AudioSource{sampleRate: sampleRate, frames: frames}
}

// Run opens the default audio device and delivers samples to onSample
// until ctx is canceled or the device reports an error. It initializes and
// terminates the portaudio library itself, so callers should not also call
// portaudio.Initialize.
func (a *AudioSource) Run(ctx context.Context, onSample func(complex128) error) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("iqsource: portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	var in = make([]float32, a.frames*2) // interleaved stereo: L, R, L, R, ...

	var stream, openErr = portaudio.OpenDefaultStream(2, 0, a.sampleRate, a.frames, in)
	if openErr != nil {
		return fmt.Errorf("iqsource: open audio stream: %w", openErr)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("iqsource: start audio stream: %w", err)
	}
	defer stream.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return fmt.Errorf("iqsource: read audio stream: %w", err)
		}

		for i := 0; i < a.frames; i++ {
			var sample = complex(float64(in[2*i]), float64(in[2*i+1]))
			if err := onSample(sample); err != nil {
				return err
			}
		}
	}
}
