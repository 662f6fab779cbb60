package audio

import (
	"math"
	"time"
)

// DefaultSampleRate is the sample rate of generated placeholder tones.
const DefaultSampleRate = 44100

// PlaceholderFrequencies are the notes used for the seeded sample tracks (A4 C5 E5 G5 A5 B5).
var PlaceholderFrequencies = []float64{440, 523, 659, 784, 880, 988}

// ToneOptions controls placeholder tone synthesis.
type ToneOptions struct {
	Frequency  float64
	Duration   time.Duration
	SampleRate int
	Fade       time.Duration // linear fade in and out
	Peak       float64       // output is normalised to this absolute peak
}

// DefaultToneOptions returns the 3 second tone used for sample tracks.
func DefaultToneOptions(frequency float64) ToneOptions {
	return ToneOptions{
		Frequency:  frequency,
		Duration:   3 * time.Second,
		SampleRate: DefaultSampleRate,
		Fade:       100 * time.Millisecond,
		Peak:       0.9,
	}
}

// GenerateTone synthesises a tone with its first two harmonics at half and
// quarter amplitude, faded at both ends and normalised to opts.Peak.
func GenerateTone(opts ToneOptions) []float64 {
	n := int(float64(opts.SampleRate) * opts.Duration.Seconds())
	if n <= 0 {
		return nil
	}

	seconds := opts.Duration.Seconds()
	samples := make([]float64, n)
	for i := range samples {
		var t float64
		if n > 1 {
			t = seconds * float64(i) / float64(n-1)
		}
		w := 2 * math.Pi * opts.Frequency * t
		samples[i] = math.Sin(w) + 0.5*math.Sin(2*w) + 0.25*math.Sin(3*w)
	}

	fadeLen := int(opts.Fade.Seconds() * float64(opts.SampleRate))
	if fadeLen > n/2 {
		fadeLen = n / 2
	}
	if fadeLen > 1 {
		for i := 0; i < fadeLen; i++ {
			gain := float64(i) / float64(fadeLen-1)
			samples[i] *= gain
			samples[n-1-i] *= gain
		}
	}

	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak > 0 {
		scale := opts.Peak / peak
		for i := range samples {
			samples[i] *= scale
		}
	}
	return samples
}
