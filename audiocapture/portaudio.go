package audiocapture

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// paInit guards the process-wide PortAudio initialization.
var (
	paInitOnce sync.Once
	paInitErr  error
)

// paCapture records from the default input device through PortAudio.
type paCapture struct {
	mu     sync.Mutex
	stream *portaudio.Stream
}

func newCaptureImpl() (captureImpl, error) {
	paInitOnce.Do(func() {
		paInitErr = portaudio.Initialize()
	})
	if paInitErr != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", paInitErr)
	}
	return &paCapture{}, nil
}

func (p *paCapture) start(sampleRate, channels int, callback func(samples []float32)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stream, err := portaudio.OpenDefaultStream(
		channels, 0, float64(sampleRate), portaudio.FramesPerBufferUnspecified,
		func(in []float32) {
			callback(in)
		})
	if err != nil {
		return fmt.Errorf("open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start input stream: %w", err)
	}

	p.stream = stream
	return nil
}

func (p *paCapture) stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return nil
	}
	err := p.stream.Stop()
	if cerr := p.stream.Close(); err == nil {
		err = cerr
	}
	p.stream = nil
	return err
}

func (p *paCapture) close() error {
	if err := p.stop(); err != nil {
		return err
	}
	portaudio.Terminate()
	return nil
}
