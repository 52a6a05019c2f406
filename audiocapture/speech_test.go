package audiocapture

import (
	"math"
	"testing"
)

func tone(amplitude float32, samples int) []float32 {
	out := make([]float32, samples)
	for i := range out {
		out[i] = amplitude * float32(math.Sin(2*math.Pi*440*float64(i)/16000))
	}
	return out
}

func TestHasSpeech(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    bool
	}{
		{"empty", nil, false},
		{"silence", make([]float32, 16000), false},
		{"half second tone", tone(0.3, 8000), true},
		{"quiet hiss", tone(0.005, 16000), false},
		{"short blip", tone(0.3, speechWindowSize*2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasSpeech(tt.samples); got != tt.want {
				t.Errorf("HasSpeech = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasSpeechIgnoresIsolatedClicks(t *testing.T) {
	// A keyboard tap in an otherwise silent capture: two loud windows
	// spread across a second of audio.
	samples := make([]float32, 16000)
	copy(samples[2*speechWindowSize:], tone(0.5, speechWindowSize))
	copy(samples[18*speechWindowSize:], tone(0.5, speechWindowSize))
	if HasSpeech(samples) {
		t.Error("isolated clicks should not count as speech")
	}
}

func TestRMS(t *testing.T) {
	if got := rms(nil); got != 0 {
		t.Errorf("rms(nil) = %v, want 0", got)
	}
	got := rms([]float32{0.5, -0.5, 0.5, -0.5})
	if math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("rms = %v, want 0.5", got)
	}
}
