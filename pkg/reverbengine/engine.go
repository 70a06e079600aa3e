// Package reverbengine is the Reverb Engine façade (spec.md §4.7): it owns
// one FDN reverb per channel, the cross-feed processor, and every
// atomically-published, smoothed parameter, and exposes the programmatic
// surface in spec.md §6.
package reverbengine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/justyntemme/fdnreverb/pkg/diagnostics"
	"github.com/justyntemme/fdnreverb/pkg/dsp"
	"github.com/justyntemme/fdnreverb/pkg/dsp/mix"
	"github.com/justyntemme/fdnreverb/pkg/dsp/reverb"
	"github.com/justyntemme/fdnreverb/pkg/framework/param"
)

const (
	minSampleRate = 8000.0
	maxSampleRate = 192000.0
	fdnLines      = 8

	// structuralEpsilon is the smallest change in a structural parameter
	// (roomSize, density) worth re-deriving delay lengths/reflection
	// chains for. Avoids reallocating every block when a parameter is
	// steady but its smoother hasn't quite settled to the bit-identical
	// target yet.
	structuralEpsilon = 1e-9
)

// Engine is the top-level reverb façade. One Engine drives one stereo (or
// mono) signal path; it is not safe for concurrent calls from more than
// one audio thread, though parameter setters may be called concurrently
// from one or more control threads (spec.md §5).
type Engine struct {
	sampleRate   float64
	maxBlockSize int
	initialized  bool

	fdnL *reverb.FDN
	fdnR *reverb.FDN
	cf   *reverb.CrossFeed

	params *params

	bypass      atomic.Bool
	phaseInvert atomic.Bool

	lastRoomSize        float64
	lastDensity         float64
	lastDecayTime       float64
	lastHighFreqDamping float64
	lastLowFreqDamping  float64

	diagQueue  *diagnostics.Queue
	diagLogger *diagnostics.Logger
	diagStop   chan struct{}

	cpuUsageBits atomic.Uint64

	scratchWetL []float32
	scratchWetR []float32
}

// NewEngine constructs an uninitialized Engine. Call Initialize before
// ProcessBlock.
func NewEngine() *Engine {
	e := &Engine{
		params: newParams(),
	}
	e.diagQueue = diagnostics.NewQueue(256)
	e.diagLogger = diagnostics.NewDefault()
	e.diagStop = make(chan struct{})
	diagnostics.Drain(e.diagQueue, e.diagLogger, e.diagStop)
	return e
}

// Initialize allocates the engine's FDN instances, cross-feed processor,
// and scratch buffers for the given sample rate and maximum block size.
// Returns false (engine remains Uninitialized) if sampleRate is outside
// [8000, 192000] Hz (spec.md §4.7, §7).
func (e *Engine) Initialize(sampleRate float64, maxBlockSize int) bool {
	if sampleRate < minSampleRate || sampleRate > maxSampleRate {
		return false
	}
	if maxBlockSize <= 0 {
		return false
	}

	e.sampleRate = sampleRate
	e.maxBlockSize = maxBlockSize

	e.fdnL = reverb.NewFDN(fdnLines, sampleRate, e.diagQueue)
	e.fdnR = reverb.NewFDN(fdnLines, sampleRate, e.diagQueue)
	e.cf = reverb.NewCrossFeed(sampleRate)
	e.cf.SetCrossDelayMs(20)

	e.params.setSampleRate(sampleRate)
	e.applyStructuralParams(true)

	e.scratchWetL = make([]float32, maxBlockSize)
	e.scratchWetR = make([]float32, maxBlockSize)

	e.initialized = true
	return true
}

// applyStructuralParams re-derives the FDN's delay lengths, reflection
// chains, and matrix gain from the current smoothed parameter snapshot.
// force bypasses the epsilon check (used at Initialize and Reset).
func (e *Engine) applyStructuralParams(force bool) {
	roomSize := e.params.roomSize.GetSmoothedValue()
	density := e.params.density.GetSmoothedValue()
	decayTime := e.params.decayTime.GetSmoothedValue()
	hfDamping := e.params.highFreqDamping.GetSmoothedValue()
	lfDamping := e.params.lowFreqDamping.GetSmoothedValue()

	if force || math.Abs(roomSize-e.lastRoomSize) > structuralEpsilon {
		e.fdnL.SetRoomSize(roomSize)
		e.fdnR.SetRoomSize(roomSize)
		e.lastRoomSize = roomSize
	}
	if force || math.Abs(density-e.lastDensity) > structuralEpsilon {
		e.fdnL.SetDensity(density)
		e.fdnR.SetDensity(density)
		e.lastDensity = density
	}
	if force || math.Abs(decayTime-e.lastDecayTime) > structuralEpsilon {
		e.fdnL.SetDecayTime(decayTime)
		e.fdnR.SetDecayTime(decayTime)
		e.lastDecayTime = decayTime
	}
	if force || math.Abs(hfDamping-e.lastHighFreqDamping) > structuralEpsilon {
		e.fdnL.SetHighFreqDamping(hfDamping)
		e.fdnR.SetHighFreqDamping(hfDamping)
		e.lastHighFreqDamping = hfDamping
	}
	if force || math.Abs(lfDamping-e.lastLowFreqDamping) > structuralEpsilon {
		e.fdnL.SetLowFreqDamping(lfDamping)
		e.fdnR.SetLowFreqDamping(lfDamping)
		e.lastLowFreqDamping = lfDamping
	}

	needsFlush := e.fdnL.NeedsFlush()
	needsFlush = e.fdnR.NeedsFlush() || needsFlush
	if needsFlush {
		// spec.md §4.4.6: a room-size-triggered flush clears every delay
		// line, all-pass, damping filter, pre-delay, cross-feed delay, and
		// scratch vector — not just the FDN that detected the threshold
		// crossing, since both channels and the cross-feed stage sit on
		// the same signal path.
		e.fdnL.Flush()
		e.fdnR.Flush()
		e.cf.Reset()
	}
}

// ProcessBlock runs one block of audio through the engine. input and
// output are per-channel sample planes; channels is derived from
// len(input), frames from len(input[0]). Invoked before Initialize, or
// with frames > maxBlockSize or more than 2 channels, it silently copies
// input to output (spec.md §7).
func (e *Engine) ProcessBlock(input, output [][]float32) {
	if !e.initialized || len(input) == 0 || len(output) < len(input) {
		passthrough(input, output)
		return
	}

	channels := len(input)
	frames := len(input[0])
	if frames > e.maxBlockSize || channels > dsp.Stereo {
		passthrough(input, output)
		return
	}

	start := time.Now()

	e.applyStructuralParams(false)

	if e.bypass.Load() {
		passthrough(input, output)
	} else if channels == dsp.Mono {
		e.processMonoUpmix(input[0], output)
	} else {
		e.processStereo(input[0], input[1], output[0], output[1], frames)
	}

	elapsed := time.Since(start)
	blockSeconds := float64(frames) / e.sampleRate
	cpu := 0.0
	if blockSeconds > 0 {
		cpu = elapsed.Seconds() / blockSeconds * 100.0
	}
	e.cpuUsageBits.Store(math.Float64bits(cpu))
}

func passthrough(input, output [][]float32) {
	n := len(input)
	if len(output) < n {
		n = len(output)
	}
	for ch := 0; ch < n; ch++ {
		dsp.Copy(output[ch], input[ch])
	}
}

func (e *Engine) processMonoUpmix(input []float32, output [][]float32) {
	frames := len(input)

	for i := 0; i < frames; i++ {
		wetDryMix := e.params.wetDryMix.GetSmoothedValue() / 100.0
		e.fdnL.SetPreDelayMs(e.params.preDelay.GetSmoothedValue())

		x := input[i]
		wet := e.fdnL.ProcessMono(x)
		e.scratchWetL[i] = mix.DryWet(x, wet, float32(wetDryMix))
	}

	for ch := range output {
		dsp.Copy(output[ch], e.scratchWetL[:frames])
	}
}

func (e *Engine) processStereo(inputL, inputR []float32, outputL, outputR []float32, frames int) {
	for i := 0; i < frames; i++ {
		wetDryMix := e.params.wetDryMix.GetSmoothedValue() / 100.0
		e.cf.SetCrossFeedAmount(float32(e.params.crossFeed.GetSmoothedValue()))
		e.cf.SetStereoWidth(float32(e.params.stereoWidth.GetSmoothedValue()))
		e.cf.SetPhaseInvert(e.phaseInvert.Load())

		preDelayMs := e.params.preDelay.GetSmoothedValue()
		e.fdnL.SetPreDelayMs(preDelayMs)
		e.fdnR.SetPreDelayMs(preDelayMs)

		cfL, cfR := e.cf.Process(inputL[i], inputR[i])

		dampedL := e.fdnL.Step(cfL)
		dampedR := e.fdnR.Step(cfR)

		var wetL, wetR float32
		for idx := 0; idx < e.fdnL.Size(); idx++ {
			wL, wR := reverb.PanWeight(idx)
			wetL += dampedL[idx]*wL + dampedR[idx]*wL
			wetR += dampedL[idx]*wR + dampedR[idx]*wR
		}
		wetL *= 0.3
		wetR *= 0.3

		// The cross-feed/width stage runs on the signal path unconditionally
		// (spec.md §4.5 is a spatial processor, not part of "reverb wetness"),
		// so the wet/dry crossfade's dry reference is the post-cross-feed
		// signal, not the raw input — this is what lets P8 (cross-feed mono
		// convergence) hold even with wetDryMix at 0.
		e.scratchWetL[i] = mix.DryWet(cfL, wetL, float32(wetDryMix))
		e.scratchWetR[i] = mix.DryWet(cfR, wetR, float32(wetDryMix))
	}

	dsp.Copy(outputL, e.scratchWetL[:frames])
	dsp.Copy(outputR, e.scratchWetR[:frames])
}

// SetPreset applies a named parameter table (spec.md §6), or for
// PresetCustom leaves parameters untouched and clears bypass.
func (e *Engine) SetPreset(p Preset) {
	if p == PresetCustom {
		e.bypass.Store(false)
		return
	}

	v, ok := presetTable[p]
	if !ok {
		return
	}

	snapToPlain(e.params.wetDryMix, v.wetDryMix)
	snapToPlain(e.params.decayTime, v.decayTime)
	snapToPlain(e.params.preDelay, v.preDelay)
	snapToPlain(e.params.crossFeed, v.crossFeed)
	snapToPlain(e.params.roomSize, v.roomSize)
	snapToPlain(e.params.density, v.density)
	snapToPlain(e.params.highFreqDamping, v.highFreqDamping)
	snapToPlain(e.params.lowFreqDamping, v.lowFreqDamping)
	snapToPlain(e.params.stereoWidth, v.stereoWidth)
	e.phaseInvert.Store(v.phaseInvert)
	e.bypass.Store(v.bypass)

	if e.initialized {
		e.applyStructuralParams(true)
	}
}

// SetWetDryMix sets the wet/dry mix, clamped to [0, 100] percent.
func (e *Engine) SetWetDryMix(percent float64) { setPlain(e.params.wetDryMix, percent) }

// SetDecayTime sets the RT60 target in seconds, clamped to [0.1, 10].
func (e *Engine) SetDecayTime(seconds float64) { setPlain(e.params.decayTime, seconds) }

// SetPreDelay sets the pre-delay in milliseconds, clamped to [0, 200].
func (e *Engine) SetPreDelay(ms float64) { setPlain(e.params.preDelay, ms) }

// SetCrossFeed sets the cross-feed amount, clamped to [0, 1].
func (e *Engine) SetCrossFeed(amount float64) { setPlain(e.params.crossFeed, amount) }

// SetRoomSize sets the room size, clamped to [0, 1].
func (e *Engine) SetRoomSize(size float64) { setPlain(e.params.roomSize, size) }

// SetDensity sets the reflection/diffusion density, clamped to [0, 1].
func (e *Engine) SetDensity(density float64) { setPlain(e.params.density, density) }

// SetHighFreqDamping sets the HF damping amount, clamped to [0, 1].
func (e *Engine) SetHighFreqDamping(amount float64) { setPlain(e.params.highFreqDamping, amount) }

// SetLowFreqDamping sets the LF damping amount, clamped to [0, 1].
func (e *Engine) SetLowFreqDamping(amount float64) { setPlain(e.params.lowFreqDamping, amount) }

// SetStereoWidth sets the mid/side stereo width, clamped to [0, 2].
func (e *Engine) SetStereoWidth(width float64) { setPlain(e.params.stereoWidth, width) }

// SetPhaseInvert toggles phase inversion of the cross-feed R→L path.
func (e *Engine) SetPhaseInvert(invert bool) { e.phaseInvert.Store(invert) }

// SetBypass toggles bypass; while true, ProcessBlock copies input to
// output exactly (spec.md §8, P5).
func (e *Engine) SetBypass(bypass bool) { e.bypass.Store(bypass) }

// Reset zeroes all FDN, cross-feed, and scratch state without
// reallocating buffers (spec.md §5, Resource scoping).
func (e *Engine) Reset() {
	if !e.initialized {
		return
	}
	e.fdnL.Reset()
	e.fdnR.Reset()
	e.cf.Reset()
	dsp.Clear(e.scratchWetL)
	dsp.Clear(e.scratchWetR)
}

// UpdateSampleRate reallocates the engine's delay buffers and filters for
// a new sample rate. Must not be called concurrently with ProcessBlock
// (spec.md §5).
func (e *Engine) UpdateSampleRate(sampleRate float64) {
	if sampleRate < minSampleRate || sampleRate > maxSampleRate {
		return
	}
	e.sampleRate = sampleRate
	e.fdnL = reverb.NewFDN(fdnLines, sampleRate, e.diagQueue)
	e.fdnR = reverb.NewFDN(fdnLines, sampleRate, e.diagQueue)
	e.cf.UpdateSampleRate(sampleRate)
	e.params.setSampleRate(sampleRate)
	e.applyStructuralParams(true)
}

// CPUUsage returns the last block's processing time as a percentage of
// the block's real-time duration.
func (e *Engine) CPUUsage() float64 {
	return math.Float64frombits(e.cpuUsageBits.Load())
}

// Parameters returns every automatable parameter in registration order, for
// a host to enumerate (name, range, current value) without needing to know
// the engine's internal parameter IDs ahead of time.
func (e *Engine) Parameters() []*param.Parameter {
	return e.params.registry.All()
}

// ParameterCount returns the number of automatable parameters the engine
// exposes.
func (e *Engine) ParameterCount() int32 {
	return e.params.registry.Count()
}

// Parameter looks up one automatable parameter by the ID a prior Parameters
// call reported, or nil if id is unknown.
func (e *Engine) Parameter(id uint32) *param.Parameter {
	return e.params.registry.Get(id)
}

// Close stops the engine's background diagnostics drain goroutine. Safe
// to call once the engine is no longer in use.
func (e *Engine) Close() {
	close(e.diagStop)
}
