// Package reverb implements the Feedback-Delay-Network reverb engine: the
// delay-line bank, the orthogonal feedback matrix, the early-reflection and
// diffusion all-pass chains, the per-line damping filters, and the RT60
// decay calibration that ties them together.
package reverb

import (
	"math"

	"github.com/justyntemme/fdnreverb/pkg/diagnostics"
	"github.com/justyntemme/fdnreverb/pkg/dsp/delay"
	"github.com/justyntemme/fdnreverb/pkg/dsp/filter"
)

// primeDelays spans ~30-100ms at 48kHz; the first N entries become the
// delay bank's lengths (spec.md §4.4.1).
var primeDelays = [20]int{
	1447, 1549, 1693, 1789, 1907, 2063, 2179, 2311, 2467, 2633,
	2801, 2969, 3137, 3307, 3491, 3677, 3863, 4051, 4241, 4801,
}

// earlyReflectionPrimes spans ~5-25ms at 48kHz.
var earlyReflectionPrimes = [8]int{241, 317, 431, 563, 701, 857, 997, 1151}

// diffusionPrimes are shorter still, for dense late-onset smearing.
var diffusionPrimes = [8]int{89, 109, 127, 149, 167, 191, 211, 233}

const (
	minLines = 4
	maxLines = 12

	minStageCount = 4
	maxStageCount = 8

	earlyGainStart = 0.75
	earlyGainStep  = 0.05
	diffGainStart  = 0.70
	diffGainStep   = 0.03

	maxPreDelaySeconds = 0.2
	maxLineSeconds     = 1.0

	// denormalGuard is added to the feedback accumulator before it's
	// written back into a delay line, keeping tail samples that decay
	// toward zero out of the subnormal range where many CPUs fall back to
	// slow-path arithmetic (spec.md §7).
	denormalGuard = 1e-20
)

// FDN is one complete Feedback Delay Network instance: a full set of owned
// delay lines, filters, and matrix. Stereo processing drives two FDN
// instances (one per channel) rather than sharing state between channels
// (spec.md §4.4.5, §9 "mixed mono/stereo dispatch").
type FDN struct {
	n          int
	sampleRate float64

	lines       []*delay.Line
	lineLengths []float64

	damping *filter.Damping
	matrix  *Matrix

	preDelay        *delay.Line
	preDelayMs      float64
	preDelaySamples float64

	earlyReflections *Chain
	diffusion        *Chain

	roomSize    float64
	decayTime   float64
	density     float64
	hfDamping   float64
	lfDamping   float64

	lastRoomSize float64
	needsFlush   bool

	diag *diagnostics.Queue

	scratchD []float32 // delay-line outputs (pre-matrix)
	scratchM []float32 // matrix outputs
	damped   []float32 // post-damping outputs, returned by Step
}

// NewFDN creates an FDN instance with n delay lines (clamped to [4, 12])
// at the given sample rate. diag may be nil, in which case diagnostic
// events are silently dropped.
func NewFDN(n int, sampleRate float64, diag *diagnostics.Queue) *FDN {
	if n < minLines {
		n = minLines
	}
	if n > maxLines {
		n = maxLines
	}

	f := &FDN{
		n:            n,
		sampleRate:   sampleRate,
		lines:        make([]*delay.Line, n),
		lineLengths:  make([]float64, n),
		damping:      filter.NewDamping(n, sampleRate),
		matrix:       NewMatrix(n),
		preDelay:     delay.New(maxPreDelaySeconds, sampleRate),
		roomSize:     0.5,
		decayTime:    1.5,
		density:      0.5,
		lastRoomSize: 0.5,
		diag:         diag,
		scratchD:     make([]float32, n),
		scratchM:     make([]float32, n),
		damped:       make([]float32, n),
	}
	for i := range f.lines {
		f.lines[i] = delay.New(maxLineSeconds, sampleRate)
	}

	f.regenerateDelayLengths()
	f.regenerateReflectionChains()
	f.updateDamping()
	f.updateMatrixGain()
	f.verifyMatrix()

	return f
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// regenerateDelayLengths recomputes every delay line's length from the
// current room size (spec.md §4.4.1).
func (f *FDN) regenerateDelayLengths() {
	scale := (f.sampleRate / 48000.0) * (0.5 + 1.5*f.roomSize)
	maxLen := float64(f.lines[0].Len() - 1)

	// n is at most maxLines, so a linear scan against already-assigned
	// lengths is cheap enough to avoid a map allocation here.
	var assigned [maxLines]int
	for i := 0; i < f.n; i++ {
		length := math.Round(float64(primeDelays[i]) * scale)
		length = clamp64(length, 200, maxLen)
		if i > 0 {
			length += float64((i % 3) - 1)
		}
		li := int(clamp64(length, 200, maxLen))

		for collision := true; collision; {
			collision = false
			for j := 0; j < i; j++ {
				if assigned[j] == li {
					li++
					if li > int(maxLen) {
						li = 200
					}
					collision = true
					break
				}
			}
		}

		assigned[i] = li
		f.lineLengths[i] = float64(li)
	}
}

// regenerateReflectionChains rebuilds the early-reflection and diffusion
// all-pass chains. Density (spec.md §3 Engine Parameters) selects how many
// of the 4-8 available stages are engaged, per the component description's
// own range for these chains (spec.md §2 item 2-3).
func (f *FDN) regenerateReflectionChains() {
	stageCount := clampInt(int(math.Round(4+4*f.density)), minStageCount, maxStageCount)

	erScale := (f.sampleRate / 48000.0) * (0.3 + 0.7*f.roomSize)
	erLengths := make([]int, stageCount)
	erGains := make([]float32, stageCount)
	for i := 0; i < stageCount; i++ {
		length := clamp64(math.Round(float64(earlyReflectionPrimes[i])*erScale), 10, 2400)
		erLengths[i] = int(length)
		erGains[i] = float32(earlyGainStart - float64(i)*earlyGainStep)
	}
	f.earlyReflections = NewChain(erLengths, erGains)

	diffLengths := make([]int, stageCount)
	diffGains := make([]float32, stageCount)
	for i := 0; i < stageCount; i++ {
		diffLengths[i] = diffusionPrimes[i]
		diffGains[i] = float32(diffGainStart - float64(i)*diffGainStep)
	}
	f.diffusion = NewChain(diffLengths, diffGains)
}

func (f *FDN) updateDamping() {
	hfCutoff := clamp64(8000*(1-f.hfDamping), 100, 8000)
	lfCutoff := clamp64(50+200*(1-f.lfDamping), 50, 250)
	f.damping.SetHighFreqCutoff(hfCutoff)
	f.damping.SetLowFreqCutoff(lfCutoff)
}

// maxDecayForSize is the piecewise-linear RT60 cap (spec.md §4.4.3).
func maxDecayForSize(roomSize float64) float64 {
	switch {
	case roomSize <= 0.3:
		return 8.0
	case roomSize <= 0.7:
		t := (roomSize - 0.3) / 0.4
		return 8.0 + t*(6.0-8.0)
	default:
		t := clamp64((roomSize-0.7)/0.3, 0, 1)
		return 6.0 + t*(3.0-6.0)
	}
}

func (f *FDN) avgDelaySamples() float64 {
	var sum float64
	for _, l := range f.lineLengths {
		sum += l
	}
	return sum / float64(f.n)
}

// updateMatrixGain recomputes g_matrix from the current decay time, room
// size, and damping amounts (spec.md §4.4.3).
func (f *FDN) updateMatrixGain() {
	deltaT := f.avgDelaySamples() / f.sampleRate
	rt60Limited := math.Min(f.decayTime, maxDecayForSize(f.roomSize))
	rt60Effective := math.Max(rt60Limited, 0.05)
	gTheoretical := math.Pow(10, -3*deltaT/rt60Effective)
	gFreqWeighted := gTheoretical * (1 - 0.25*f.hfDamping) * (1 - 0.15*f.lfDamping)
	gStability := math.Min(0.97, 0.98-0.03*f.roomSize)
	gMatrix := math.Min(gFreqWeighted, gStability)

	f.matrix.SetGain(float32(gMatrix))
}

func (f *FDN) verifyMatrix() {
	if f.diag == nil {
		return
	}
	f.diag.TryPush(diagnostics.Event{
		Kind:  diagnostics.EventMatrixOrthogonality,
		Value: f.matrix.OrthogonalityError(),
	})
}

// SetRoomSize sets the room size, clamped to [0, 1]. A change greater than
// 0.05 schedules a buffer flush (spec.md §4.4.6).
func (f *FDN) SetRoomSize(v float64) {
	v = clamp64(v, 0, 1)
	if math.Abs(v-f.lastRoomSize) > 0.05 {
		f.needsFlush = true
		if f.diag != nil {
			f.diag.TryPush(diagnostics.Event{Kind: diagnostics.EventBufferFlush, Value: math.Abs(v - f.lastRoomSize)})
		}
	}
	f.roomSize = v
	f.lastRoomSize = v
	f.regenerateDelayLengths()
	f.regenerateReflectionChains()
	f.updateMatrixGain()
	f.verifyMatrix()
}

// SetDecayTime sets the RT60 target in seconds, clamped to [0.1, 10].
func (f *FDN) SetDecayTime(v float64) {
	f.decayTime = clamp64(v, 0.1, 10.0)
	f.updateMatrixGain()
	f.verifyMatrix()
}

// SetDensity sets the early-reflection/diffusion stage density, clamped to
// [0, 1].
func (f *FDN) SetDensity(v float64) {
	f.density = clamp64(v, 0, 1)
	f.regenerateReflectionChains()
}

// SetHighFreqDamping sets the HF damping amount, clamped to [0, 1].
func (f *FDN) SetHighFreqDamping(v float64) {
	f.hfDamping = clamp64(v, 0, 1)
	f.updateDamping()
	f.updateMatrixGain()
}

// SetLowFreqDamping sets the LF damping amount, clamped to [0, 1].
func (f *FDN) SetLowFreqDamping(v float64) {
	f.lfDamping = clamp64(v, 0, 1)
	f.updateDamping()
	f.updateMatrixGain()
}

// SetPreDelayMs sets the pre-delay time in milliseconds, clamped to
// [0, 200].
func (f *FDN) SetPreDelayMs(v float64) {
	v = clamp64(v, 0, 200)
	f.preDelayMs = v
	f.preDelaySamples = v * f.sampleRate / 1000.0
}

// NeedsFlush reports and clears the pending flush flag.
func (f *FDN) NeedsFlush() bool {
	pending := f.needsFlush
	f.needsFlush = false
	return pending
}

// Flush zeros every owned delay line, filter, and scratch vector
// (spec.md §4.4.6).
func (f *FDN) Flush() {
	for _, l := range f.lines {
		l.Reset()
	}
	f.preDelay.Reset()
	f.earlyReflections.Reset()
	f.diffusion.Reset()
	f.damping.Reset()
	for i := range f.scratchD {
		f.scratchD[i] = 0
		f.scratchM[i] = 0
		f.damped[i] = 0
	}
}

func sanitizeSample(x float32, diag *diagnostics.Queue, line int) float32 {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		if diag != nil {
			diag.TryPush(diagnostics.Event{Kind: diagnostics.EventNumericalGuard, Line: line})
		}
		return 0
	}
	return x
}

// Step runs one sample through the full FDN pipeline — pre-delay, early
// reflections, diffusion, delay bank, feedback matrix, and per-line
// damping — and returns the per-line damped outputs (spec.md §4.4.4 steps
// 1-6). The caller combines these into a single-channel or panned stereo
// output; Step never applies the final ×0.3 output-mix gain itself.
//
// The returned slice is owned by f and is only valid until the next call
// to Step.
func (f *FDN) Step(x float32) []float32 {
	a := f.preDelay.Read(f.preDelaySamples)
	f.preDelay.Write(x)

	b := f.earlyReflections.Process(a)
	c := f.diffusion.Process(b)

	for i := 0; i < f.n; i++ {
		f.scratchD[i] = f.lines[i].Read(f.lineLengths[i])
	}

	f.matrix.Apply(f.scratchD, f.scratchM)

	for i := 0; i < f.n; i++ {
		dampedVal := f.damping.ProcessSample(i, f.scratchM[i])
		dampedVal = sanitizeSample(dampedVal, f.diag, i)
		f.damped[i] = dampedVal

		feedback := c*0.3 + dampedVal + denormalGuard
		f.lines[i].Write(feedback)
	}

	return f.damped
}

// ProcessMono runs one sample through the FDN and sums the per-line damped
// outputs into a single output sample (spec.md §4.4.4 step 7).
func (f *FDN) ProcessMono(x float32) float32 {
	damped := f.Step(x)
	var out float32
	for _, v := range damped {
		out += v
	}
	return out * 0.3
}

// PanWeight returns the (L, R) mix weights for delay-line index i, used to
// build the stereo image on the output stage (spec.md §4.4.5): even
// indices favor the left channel, odd indices favor the right.
func PanWeight(i int) (wL, wR float32) {
	if i%2 == 0 {
		return 0.7, 0.3
	}
	return 0.3, 0.7
}

// Size returns N, the number of delay lines.
func (f *FDN) Size() int {
	return f.n
}

// RoomSize returns the currently applied room size.
func (f *FDN) RoomSize() float64 {
	return f.roomSize
}

// MatrixOrthogonalityError returns the feedback matrix's current deviation
// from orthogonality (spec.md §8, P1).
func (f *FDN) MatrixOrthogonalityError() float64 {
	return f.matrix.OrthogonalityError()
}

// Reset clears all FDN state without reallocating buffers.
func (f *FDN) Reset() {
	f.Flush()
}
