package reverb

import (
	"math"
	"testing"
)

func TestCrossFeedMonoConvergence(t *testing.T) {
	const sampleRate = 48000.0
	cf := NewCrossFeed(sampleRate)
	cf.SetCrossFeedAmount(1.0)
	cf.SetStereoWidth(0)
	cf.SetPhaseInvert(false)

	const msSamples = int(sampleRate / 1000)
	var lastL, lastR float32
	for i := 0; i < msSamples*5; i++ {
		l := float32(math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate))
		r := float32(math.Sin(2*math.Pi*440*float64(i)/sampleRate + 1.0))
		lastL, lastR = cf.Process(l, r)
	}

	if math.Abs(float64(lastL-lastR)) > 1e-3 {
		t.Errorf("expected converged L/R outputs with width=0, got L=%f R=%f", lastL, lastR)
	}
}

func TestCrossFeedBypassIsWidthOnly(t *testing.T) {
	cf := NewCrossFeed(48000)
	cf.SetBypass(true)
	cf.SetStereoWidth(1.0)

	l, r := cf.Process(0.5, -0.5)
	if math.Abs(float64(l)-0.5) > 1e-6 || math.Abs(float64(r)+0.5) > 1e-6 {
		t.Errorf("expected bypass with full width to pass input through, got L=%f R=%f", l, r)
	}
}

func TestCrossFeedClamping(t *testing.T) {
	cf := NewCrossFeed(48000)
	cf.SetCrossFeedAmount(5)
	if cf.crossFeedAmount != 1.0 {
		t.Errorf("expected crossFeedAmount clamped to 1.0, got %f", cf.crossFeedAmount)
	}
	cf.SetCrossFeedAmount(-5)
	if cf.crossFeedAmount != 0 {
		t.Errorf("expected crossFeedAmount clamped to 0, got %f", cf.crossFeedAmount)
	}
	cf.SetStereoWidth(10)
	if cf.stereoWidth != 2.0 {
		t.Errorf("expected stereoWidth clamped to 2.0, got %f", cf.stereoWidth)
	}
	cf.SetCrossDelayMs(1000)
	if cf.crossDelayMs != 50 {
		t.Errorf("expected crossDelayMs clamped to 50, got %f", cf.crossDelayMs)
	}
}
