package audiocapture

import (
	"errors"
	"testing"
)

// fakeImpl is an in-memory capture backend.
type fakeImpl struct {
	callback func([]float32)
	startErr error
	started  int
	stopped  int
}

func (f *fakeImpl) start(sampleRate, channels int, callback func(samples []float32)) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.callback = callback
	f.started++
	return nil
}

func (f *fakeImpl) stop() error {
	f.stopped++
	return nil
}

func newTestRecorder(impl captureImpl, channels int) *Recorder {
	return &Recorder{sampleRate: 16000, channels: channels, impl: impl}
}

func TestRecorderCapturesFrames(t *testing.T) {
	impl := &fakeImpl{}
	r := newTestRecorder(impl, 1)

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	impl.callback([]float32{0.1, 0.2})
	impl.callback([]float32{0.3})

	samples, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	want := []float32{0.1, 0.2, 0.3}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestRecorderEmptyCapture(t *testing.T) {
	impl := &fakeImpl{}
	r := newTestRecorder(impl, 1)

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	samples, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("got %d samples, want 0", len(samples))
	}
}

func TestRecorderDoubleStart(t *testing.T) {
	r := newTestRecorder(&fakeImpl{}, 1)

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Start(); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("second Start error = %v, want ErrAlreadyRecording", err)
	}
}

func TestRecorderStartFailurePropagates(t *testing.T) {
	devErr := errors.New("device busy")
	r := newTestRecorder(&fakeImpl{startErr: devErr}, 1)

	if err := r.Start(); !errors.Is(err, devErr) {
		t.Errorf("Start error = %v, want %v", err, devErr)
	}
	if r.Recording() {
		t.Error("Recording() = true after failed start")
	}
}

func TestRecorderStopWhenIdle(t *testing.T) {
	impl := &fakeImpl{}
	r := newTestRecorder(impl, 1)

	samples, err := r.Stop()
	if err != nil || samples != nil {
		t.Errorf("Stop on idle = (%v, %v), want (nil, nil)", samples, err)
	}
	if impl.stopped != 0 {
		t.Errorf("backend stopped %d times, want 0", impl.stopped)
	}
}

func TestDownmixStereo(t *testing.T) {
	impl := &fakeImpl{}
	r := newTestRecorder(impl, 2)

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Interleaved L/R pairs.
	impl.callback([]float32{0.2, 0.4, -1, 1})

	samples, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d mono samples, want 2", len(samples))
	}
	if got := samples[0]; got < 0.299 || got > 0.301 {
		t.Errorf("samples[0] = %v, want 0.3", got)
	}
	if samples[1] != 0 {
		t.Errorf("samples[1] = %v, want 0", samples[1])
	}
}

func TestLateCallbackAfterStopDiscarded(t *testing.T) {
	impl := &fakeImpl{}
	r := newTestRecorder(impl, 1)

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	// A buffer still in flight when the stream stopped.
	impl.callback([]float32{0.5})

	if err := r.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	samples, _ := r.Stop()
	if len(samples) != 0 {
		t.Errorf("stale frame leaked into next session: %v", samples)
	}
}
