package reverbengine

import (
	"math"

	"github.com/justyntemme/fdnreverb/pkg/dsp"
	"github.com/justyntemme/fdnreverb/pkg/framework/param"
)

// Parameter IDs, used only for registry enumeration (e.g. a host listing
// every automatable parameter) — engine code addresses fields directly.
const (
	idWetDryMix uint32 = iota
	idDecayTime
	idPreDelay
	idCrossFeed
	idRoomSize
	idDensity
	idHighFreqDamping
	idLowFreqDamping
	idStereoWidth
)

// smoothingTimeConstant is the ~50ms one-pole time constant every
// audio-rate-visible parameter is fronted by (spec.md §4.6).
const smoothingTimeConstant = 0.05

// smoothingRate returns the param.ExponentialSmoothing "rate" (the
// teacher's Smoother.Next applies `current += (target-current)*(1-rate)`)
// that reproduces spec.md §4.6's literal
// `coeff = 1 - exp(-1/(0.05*sampleRate))` exactly: rate = 1 - coeff.
func smoothingRate(sampleRate float64) float64 {
	return math.Exp(-1.0 / (smoothingTimeConstant * sampleRate))
}

// params bundles one atomically-published param.Parameter plus a one-pole
// param.Smoother per audio-rate-visible engine parameter. Control threads
// call the Set* methods (publishing a target); the audio thread advances
// wetDryMix, preDelay, crossFeed and stereoWidth once per sample, and the
// structural fields (roomSize, density, decayTime, both dampings) once per
// block in Engine.applyStructuralParams.
type params struct {
	registry *param.Registry

	wetDryMix       *param.SmoothedParameter
	decayTime       *param.SmoothedParameter
	preDelay        *param.SmoothedParameter
	crossFeed       *param.SmoothedParameter
	roomSize        *param.SmoothedParameter
	density         *param.SmoothedParameter
	highFreqDamping *param.SmoothedParameter
	lowFreqDamping  *param.SmoothedParameter
	stereoWidth     *param.SmoothedParameter
}

func newSmoothed(id uint32, name string, min, max, def float64) *param.SmoothedParameter {
	p := &param.Parameter{ID: id, Name: name, Min: min, Max: max, DefaultValue: def}
	p.SetPlainValue(def)
	return param.NewSmoothedParameter(p, param.ExponentialSmoothing, 1.0)
}

// newParams builds the parameter set at its spec-default values (matching
// the Custom preset's "leave parameters untouched" baseline — these are
// the values a freshly constructed engine starts at before any SetPreset
// or setter call).
func newParams() *params {
	p := &params{
		registry: param.NewRegistry(),
		wetDryMix: newSmoothed(idWetDryMix, "Wet/Dry Mix", dsp.MinMix*100, dsp.MaxMix*100, 0),
		decayTime: newSmoothed(idDecayTime, "Decay Time", dsp.ReverbMinDecay, dsp.ReverbMaxDecay, 1.5),
		preDelay:  newSmoothed(idPreDelay, "Pre-Delay", 0, 200, 0),
		crossFeed: newSmoothed(idCrossFeed, "Cross Feed", dsp.ReverbMinDamp, dsp.ReverbMaxDamp, 0),
		roomSize:  newSmoothed(idRoomSize, "Room Size", dsp.ReverbMinSize, dsp.ReverbMaxSize, 0.5),
		density:   newSmoothed(idDensity, "Density", dsp.ReverbMinSize, dsp.ReverbMaxSize, 0.5),
		highFreqDamping: newSmoothed(idHighFreqDamping, "HF Damping", dsp.ReverbMinDamp, dsp.ReverbMaxDamp, 0),
		lowFreqDamping:  newSmoothed(idLowFreqDamping, "LF Damping", dsp.ReverbMinDamp, dsp.ReverbMaxDamp, 0),
		stereoWidth:     newSmoothed(idStereoWidth, "Stereo Width", 0, 2, 1.0),
	}
	p.registry.Add(
		p.wetDryMix.Parameter, p.decayTime.Parameter, p.preDelay.Parameter,
		p.crossFeed.Parameter, p.roomSize.Parameter, p.density.Parameter,
		p.highFreqDamping.Parameter, p.lowFreqDamping.Parameter, p.stereoWidth.Parameter,
	)
	return p
}

func (p *params) all() []*param.SmoothedParameter {
	return []*param.SmoothedParameter{
		p.wetDryMix, p.decayTime, p.preDelay, p.crossFeed, p.roomSize,
		p.density, p.highFreqDamping, p.lowFreqDamping, p.stereoWidth,
	}
}

// setSampleRate retunes every smoother's rate for the new sample rate,
// keeping the ~50ms time constant fixed in real time.
func (p *params) setSampleRate(sampleRate float64) {
	rate := smoothingRate(sampleRate)
	for _, sp := range p.all() {
		sp.SetSmoothingRate(rate)
	}
}

// setPlain publishes a new target in plain units, clamped to the
// parameter's configured range (spec.md §8, P6).
func setPlain(sp *param.SmoothedParameter, plain float64) {
	sp.SetValue(sp.Normalize(plain))
}

// snapToPlain immediately sets both the stored value and the smoother's
// current value to plain, with no transition. Used when applying a preset,
// where an audible glide would be wrong.
func snapToPlain(sp *param.SmoothedParameter, plain float64) {
	sp.Parameter.SetPlainValue(plain)
	sp.SetSmoothing(false)
	sp.SetSmoothing(true)
}
