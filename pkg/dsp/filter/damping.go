package filter

import "math"

// butterworthQ is the Q factor that gives a maximally-flat (Butterworth)
// second-order response: 1/sqrt(2).
const butterworthQ = math.Sqrt2 / 2.0

// Damping models the frequency-dependent decay of a reverb's delay lines: a
// lowpass stage that darkens the tail as high frequencies die out faster,
// and a highpass stage that thins the tail as low frequencies die out
// faster. Both stages are Butterworth biquads (Q = √2/2), never one-pole
// filters, since a one-pole shelf that is slow to reach its cutoff
// misrepresents the decay rate at the band edge.
type Damping struct {
	lowpass  *Biquad
	highpass *Biquad

	sampleRate float64
	highFreq   float64
	lowFreq    float64
}

// NewDamping creates a damping filter with one channel of state per delay
// line (channels should match the number of lines it will be applied to,
// not the number of audio output channels).
func NewDamping(channels int, sampleRate float64) *Damping {
	d := &Damping{
		lowpass:    NewBiquad(channels),
		highpass:   NewBiquad(channels),
		sampleRate: sampleRate,
		highFreq:   20000,
		lowFreq:    20,
	}
	d.updateLowpass()
	d.updateHighpass()
	return d
}

// SetHighFreqCutoff sets the lowpass cutoff in Hz (damping of the
// high-frequency content of the tail). Clamped to [20, sampleRate/2 - 1].
func (d *Damping) SetHighFreqCutoff(hz float64) {
	nyquist := d.sampleRate / 2.0
	if hz < 20 {
		hz = 20
	}
	if hz > nyquist-1 {
		hz = nyquist - 1
	}
	d.highFreq = hz
	d.updateLowpass()
}

// SetLowFreqCutoff sets the highpass cutoff in Hz (damping of the
// low-frequency content of the tail). Clamped to [10, sampleRate/2 - 1].
func (d *Damping) SetLowFreqCutoff(hz float64) {
	nyquist := d.sampleRate / 2.0
	if hz < 10 {
		hz = 10
	}
	if hz > nyquist-1 {
		hz = nyquist - 1
	}
	d.lowFreq = hz
	d.updateHighpass()
}

// SetSampleRate updates the sample rate and recomputes both stages around
// the currently configured cutoffs.
func (d *Damping) SetSampleRate(sampleRate float64) {
	d.sampleRate = sampleRate
	d.updateLowpass()
	d.updateHighpass()
}

func (d *Damping) updateLowpass() {
	d.lowpass.SetLowpass(d.sampleRate, d.highFreq, butterworthQ)
}

func (d *Damping) updateHighpass() {
	d.highpass.SetHighpass(d.sampleRate, d.lowFreq, butterworthQ)
}

// ProcessSample runs one sample of line `line` through the lowpass then
// highpass stage in series.
func (d *Damping) ProcessSample(line int, x float32) float32 {
	x = d.lowpass.ProcessSample(line, x)
	x = d.highpass.ProcessSample(line, x)
	return x
}

// Reset clears both stages' filter state.
func (d *Damping) Reset() {
	d.lowpass.Reset()
	d.highpass.Reset()
}
