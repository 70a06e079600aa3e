package reverb

import "github.com/justyntemme/fdnreverb/pkg/dsp/delay"

// CrossFeed implements the stereo cross-feed processor (spec.md §4.5): it
// mixes a delayed, attenuated copy of each channel into the other before
// the signal reaches the FDN, then applies a mid/side width stage on the
// way out. It owns its own delay lines — never a single one-sample delay.
type CrossFeed struct {
	sampleRate float64

	lineLToR *delay.Line // holds L, read to feed into R
	lineRToL *delay.Line // holds R, read to feed into L

	crossDelayMs    float64
	crossFeedAmount float32
	stereoWidth     float32
	phaseInvert     bool
	bypass          bool
}

// NewCrossFeed creates a cross-feed processor. The cross delay lines'
// capacity is fixed at 50ms, the cap on crossDelayMs.
func NewCrossFeed(sampleRate float64) *CrossFeed {
	const maxCrossDelaySeconds = 0.05
	return &CrossFeed{
		sampleRate:      sampleRate,
		lineLToR:        delay.New(maxCrossDelaySeconds, sampleRate),
		lineRToL:        delay.New(maxCrossDelaySeconds, sampleRate),
		crossDelayMs:    0,
		crossFeedAmount: 0,
		stereoWidth:     1.0,
	}
}

// SetCrossDelayMs sets the cross-feed delay time, clamped to [0, 50] ms.
// Reconfiguring the delay length never requires a buffer flush — the
// existing delayed samples simply decay naturally (spec.md §4.5).
func (c *CrossFeed) SetCrossDelayMs(ms float64) {
	if ms < 0 {
		ms = 0
	}
	if ms > 50 {
		ms = 50
	}
	c.crossDelayMs = ms
}

// SetCrossFeedAmount sets the cross-feed mix amount, clamped to [0, 1].
func (c *CrossFeed) SetCrossFeedAmount(amount float32) {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	c.crossFeedAmount = amount
}

// SetStereoWidth sets the mid/side width factor, clamped to [0, 2].
func (c *CrossFeed) SetStereoWidth(width float32) {
	if width < 0 {
		width = 0
	}
	if width > 2 {
		width = 2
	}
	c.stereoWidth = width
}

// SetPhaseInvert toggles phase inversion of the R→L cross-feed path.
func (c *CrossFeed) SetPhaseInvert(invert bool) {
	c.phaseInvert = invert
}

// SetBypass toggles the cross-feed path; when bypassed only the mid/side
// width stage runs.
func (c *CrossFeed) SetBypass(bypass bool) {
	c.bypass = bypass
}

// Process runs one stereo frame through the cross-feed algorithm and
// returns the processed frame.
func (c *CrossFeed) Process(inputL, inputR float32) (outL, outR float32) {
	delaySamples := c.crossDelayMs * c.sampleRate / 1000.0

	var mixedL, mixedR float32
	if c.bypass {
		mixedL, mixedR = inputL, inputR
	} else {
		delayedL := c.lineLToR.Read(delaySamples)
		delayedR := c.lineRToL.Read(delaySamples)

		crossLToR := delayedL * c.crossFeedAmount
		invert := float32(1)
		if c.phaseInvert {
			invert = -1
		}
		crossRToL := delayedR * c.crossFeedAmount * invert

		mixedL = inputL + crossRToL
		mixedR = inputR + crossLToR

		c.lineLToR.Write(inputL)
		c.lineRToL.Write(inputR)
	}

	mid := 0.5 * (mixedL + mixedR)
	side := 0.5 * (mixedL - mixedR) * c.stereoWidth

	outL = mid + side
	outR = mid - side
	return outL, outR
}

// Reset clears both cross-feed delay lines.
func (c *CrossFeed) Reset() {
	c.lineLToR.Reset()
	c.lineRToL.Reset()
}

// UpdateSampleRate rebuilds the delay lines for a new sample rate.
func (c *CrossFeed) UpdateSampleRate(sampleRate float64) {
	const maxCrossDelaySeconds = 0.05
	c.sampleRate = sampleRate
	c.lineLToR = delay.New(maxCrossDelaySeconds, sampleRate)
	c.lineRToL = delay.New(maxCrossDelaySeconds, sampleRate)
}
