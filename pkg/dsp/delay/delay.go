// Package delay provides the fractional delay line primitive used for
// pre-delay, the FDN delay bank, and cross-feed taps.
package delay

import "github.com/justyntemme/fdnreverb/pkg/dsp/interpolation"

// Line implements a circular-buffer delay line with linear-interpolated
// fractional reads. Read and Write are deliberately separate operations: a
// combined process(0)-then-process(delay) pattern is ambiguous about
// whether the zero-delay call reads before or after the line has been
// written to, so callers that need both always call Read then Write
// explicitly, in that order, once per sample.
type Line struct {
	buffer     []float32
	bufferSize int
	writePos   int
	sampleRate float64
}

// New creates a new delay line with the specified maximum delay time.
func New(maxDelaySeconds, sampleRate float64) *Line {
	bufferSize := int(maxDelaySeconds*sampleRate) + 1
	return &Line{
		buffer:     make([]float32, bufferSize),
		bufferSize: bufferSize,
		writePos:   0,
		sampleRate: sampleRate,
	}
}

// Reset clears the delay buffer and rewinds the write position, without
// reallocating the underlying buffer.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Len returns the buffer's capacity in samples.
func (d *Line) Len() int {
	return d.bufferSize
}

// Write adds a sample to the delay line, advancing the write position.
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= d.bufferSize {
		d.writePos = 0
	}
}

// Read peeks a delayed sample (delay in samples) without mutating the
// line's state. A delay of 1 is the most recently written sample; delays
// are clamped to [1, Len()-1].
func (d *Line) Read(delaySamples float64) float32 {
	if delaySamples < 1 {
		delaySamples = 1
	}
	if maxDelay := float64(d.bufferSize - 1); delaySamples > maxDelay {
		delaySamples = maxDelay
	}
	readPos := float64(d.writePos) - delaySamples
	if readPos < 0 {
		readPos += float64(d.bufferSize)
	}

	readPosInt := int(readPos)
	frac := float32(readPos - float64(readPosInt))

	s1 := d.buffer[readPosInt]
	s2 := d.buffer[(readPosInt+1)%d.bufferSize]

	return interpolation.Linear(s1, s2, frac)
}

// ReadMs peeks a delayed sample with the delay expressed in milliseconds.
func (d *Line) ReadMs(delayMs float64) float32 {
	delaySamples := delayMs * d.sampleRate / 1000.0
	return d.Read(delaySamples)
}

// Tap is an alias for Read, kept for call sites where "tap" reads more
// naturally than "read" (multi-point taps off a single line).
func (d *Line) Tap(delaySamples float64) float32 {
	return d.Read(delaySamples)
}
