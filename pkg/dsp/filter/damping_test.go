package filter

import (
	"math"
	"testing"
)

func TestDampingAttenuatesOutOfBand(t *testing.T) {
	const sampleRate = 48000.0
	d := NewDamping(1, sampleRate)
	d.SetHighFreqCutoff(2000)
	d.SetLowFreqCutoff(200)

	// Drive a high-frequency tone near Nyquist and a low-frequency tone
	// near DC, and confirm damping attenuates both relative to a mid-band
	// tone that sits inside the passband.
	rmsAt := func(freq float64) float64 {
		dd := NewDamping(1, sampleRate)
		dd.SetHighFreqCutoff(2000)
		dd.SetLowFreqCutoff(200)

		var sumSq float64
		const n = 4096
		for i := 0; i < n; i++ {
			x := float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))
			y := dd.ProcessSample(0, x)
			sumSq += float64(y) * float64(y)
		}
		return math.Sqrt(sumSq / n)
	}

	midband := rmsAt(800)
	highband := rmsAt(18000)
	lowband := rmsAt(20)

	if highband >= midband {
		t.Errorf("expected high-frequency tone (18kHz) to be attenuated below midband (800Hz): high=%f mid=%f", highband, midband)
	}
	if lowband >= midband {
		t.Errorf("expected low-frequency tone (20Hz) to be attenuated below midband (800Hz): low=%f mid=%f", lowband, midband)
	}
}

func TestDampingReset(t *testing.T) {
	d := NewDamping(2, 48000)
	d.ProcessSample(0, 1.0)
	d.ProcessSample(1, 1.0)
	d.Reset()
	// After reset, an impulse should produce the same first-sample output
	// as on a fresh filter.
	fresh := NewDamping(2, 48000)
	got := d.ProcessSample(0, 1.0)
	want := fresh.ProcessSample(0, 1.0)
	if math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("expected reset filter to match fresh filter, got %f want %f", got, want)
	}
}
