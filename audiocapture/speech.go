package audiocapture

import "math"

// Speech gate parameters for 16 kHz mono captures. A window is voiced
// when its RMS clears the threshold; a capture counts as speech when
// enough voiced windows accumulate.
const (
	speechThreshold  = 0.01
	speechWindowSize = 480 // 30ms at 16 kHz
	minVoicedWindows = 4   // ~120ms of voiced audio
)

// HasSpeech reports whether a finished capture contains enough voiced
// audio to be worth transcribing. Keyboard taps and silence produce
// captures that would otherwise cost a full model run.
func HasSpeech(samples []float32) bool {
	voiced := 0
	for start := 0; start < len(samples); start += speechWindowSize {
		end := start + speechWindowSize
		if end > len(samples) {
			end = len(samples)
		}
		if rms(samples[start:end]) > speechThreshold {
			voiced++
			if voiced >= minVoicedWindows {
				return true
			}
		}
	}
	return false
}

func rms(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sum / float64(len(samples))))
}
