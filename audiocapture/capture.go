// Package audiocapture records microphone input into a float32 sample
// buffer.
package audiocapture

import (
	"errors"
	"sync"
)

// ErrAlreadyRecording is returned when starting a recorder that is
// already running.
var ErrAlreadyRecording = errors.New("already recording")

// Config holds capture configuration.
type Config struct {
	SampleRate int // default 16000 Hz, what Whisper expects
	Channels   int // default 1
}

// captureImpl is the platform capture backend.
type captureImpl interface {
	start(sampleRate, channels int, callback func(samples []float32)) error
	stop() error
}

// Recorder captures microphone audio between Start and Stop. Frames
// arrive on the backend's callback thread and are accumulated under a
// lock.
type Recorder struct {
	sampleRate int
	channels   int

	mu        sync.Mutex
	recording bool
	frames    [][]float32

	impl captureImpl
}

// New creates a Recorder.
func New(cfg Config) (*Recorder, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}

	impl, err := newCaptureImpl()
	if err != nil {
		return nil, err
	}

	return &Recorder{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		impl:       impl,
	}, nil
}

// SampleRate returns the configured sample rate.
func (r *Recorder) SampleRate() int { return r.sampleRate }

// Start begins recording. Fails when the input device is unavailable or
// busy.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}

	r.frames = r.frames[:0]
	if err := r.impl.start(r.sampleRate, r.channels, r.append); err != nil {
		return err
	}
	r.recording = true
	return nil
}

// Stop ends recording and returns the captured audio as mono samples.
// Returns an empty slice when nothing was captured. Stopping an idle
// recorder is a no-op.
func (r *Recorder) Stop() ([]float32, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, nil
	}
	r.recording = false
	r.mu.Unlock()

	// The backend stop can block on an in-flight callback, so it runs
	// outside the lock.
	err := r.impl.stop()

	r.mu.Lock()
	frames := r.frames
	r.frames = nil
	r.mu.Unlock()

	total := 0
	for _, f := range frames {
		total += len(f)
	}
	interleaved := make([]float32, 0, total)
	for _, f := range frames {
		interleaved = append(interleaved, f...)
	}

	return downmix(interleaved, r.channels), err
}

// Recording reports whether capture is running.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Close releases the backend.
func (r *Recorder) Close() error {
	if c, ok := r.impl.(interface{ close() error }); ok {
		return c.close()
	}
	return nil
}

func (r *Recorder) append(samples []float32) {
	cp := make([]float32, len(samples))
	copy(cp, samples)

	r.mu.Lock()
	if r.recording {
		r.frames = append(r.frames, cp)
	}
	r.mu.Unlock()
}

// downmix averages interleaved multi-channel samples to mono.
func downmix(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}
	mono := make([]float32, 0, len(samples)/channels)
	for i := 0; i+channels <= len(samples); i += channels {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += samples[i+c]
		}
		mono = append(mono, sum/float32(channels))
	}
	return mono
}
