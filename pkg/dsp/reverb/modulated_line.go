package reverb

import (
	"github.com/justyntemme/fdnreverb/pkg/dsp/delay"
	"github.com/justyntemme/fdnreverb/pkg/dsp/modulation"
)

// ModulatedLine wraps a delay.Line with an optional sinusoidal modulation of
// its read position, ±depth samples around a base length. Disabled by
// default (depth 0) and never engaged by a preset; it exists because the
// underlying line is otherwise read at a single fixed length, which some
// rooms benefit from softening with a slow wobble to avoid metallic,
// perfectly periodic comb resonances in the tail.
//
// Each line's LFO starts at a distinct phase offset so that, if enabled,
// lines don't modulate in lockstep and reintroduce the same comb-filtering
// the wobble is meant to break up.
type ModulatedLine struct {
	line  *delay.Line
	lfo   *modulation.LFO
	depth float64 // modulation depth in samples, 0 disables modulation
}

// NewModulatedLine wraps an existing delay line with a modulation LFO at
// the given initial phase offset (0-1) and rate in Hz.
func NewModulatedLine(line *delay.Line, sampleRate, rateHz, phaseOffset float64) *ModulatedLine {
	lfo := modulation.NewLFO(sampleRate)
	lfo.SetFrequency(rateHz)
	lfo.SetWaveform(modulation.WaveformSine)
	lfo.SetPhase(phaseOffset)
	return &ModulatedLine{line: line, lfo: lfo}
}

// SetDepth sets the modulation depth in samples. Zero disables modulation
// (the read position is exactly baseLength every call).
func (m *ModulatedLine) SetDepth(depthSamples float64) {
	if depthSamples < 0 {
		depthSamples = 0
	}
	m.depth = depthSamples
}

// Read peeks the line at baseLength, offset by the LFO's current value
// scaled by depth, and advances the LFO by one sample. At depth 0 it reads
// exactly baseLength and leaves the LFO where it is.
func (m *ModulatedLine) Read(baseLength float64) float32 {
	if m.depth == 0 {
		return m.line.Read(baseLength)
	}
	offset := m.lfo.Process() * m.depth
	delaySamples := baseLength + offset
	if delaySamples < 0 {
		delaySamples = 0
	}
	return m.line.Read(delaySamples)
}

// Write writes a sample into the underlying line.
func (m *ModulatedLine) Write(sample float32) {
	m.line.Write(sample)
}

// Reset clears the underlying line and rewinds the LFO phase.
func (m *ModulatedLine) Reset() {
	m.line.Reset()
	m.lfo.Reset()
}
