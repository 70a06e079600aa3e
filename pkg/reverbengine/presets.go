package reverbengine

// Preset selects a named, fixed parameter table (spec.md §3, §6).
type Preset int

const (
	// PresetClean disables the reverb entirely (bypass).
	PresetClean Preset = iota
	// PresetVocalBooth is a small, lightly damped room.
	PresetVocalBooth
	// PresetStudio is a mid-sized live room.
	PresetStudio
	// PresetCathedral is a large, long-decaying space.
	PresetCathedral
	// PresetCustom leaves parameters untouched and clears bypass.
	PresetCustom
)

// presetValues holds every engine parameter a preset controls. Presets
// only name 7 of the 9 audio-rate parameters (spec.md §6's table has no
// column for lfDamping or stereoWidth); both are pinned to neutral values
// here so applying a preset leaves a fully-determined parameter state.
type presetValues struct {
	wetDryMix       float64
	decayTime       float64
	preDelay        float64
	crossFeed       float64
	roomSize        float64
	density         float64
	highFreqDamping float64
	lowFreqDamping  float64
	stereoWidth     float64
	phaseInvert     bool
	bypass          bool
}

var presetTable = map[Preset]presetValues{
	PresetClean: {
		wetDryMix: 0, decayTime: 0.1, preDelay: 0, crossFeed: 0.0,
		roomSize: 0.0, density: 0.0, highFreqDamping: 0.0, lowFreqDamping: 0,
		stereoWidth: 1.0, phaseInvert: false, bypass: true,
	},
	PresetVocalBooth: {
		wetDryMix: 18, decayTime: 0.9, preDelay: 8, crossFeed: 0.3,
		roomSize: 0.35, density: 0.70, highFreqDamping: 0.30, lowFreqDamping: 0,
		stereoWidth: 1.0, phaseInvert: false, bypass: false,
	},
	PresetStudio: {
		wetDryMix: 40, decayTime: 1.7, preDelay: 15, crossFeed: 0.5,
		roomSize: 0.60, density: 0.85, highFreqDamping: 0.45, lowFreqDamping: 0,
		stereoWidth: 1.0, phaseInvert: false, bypass: false,
	},
	PresetCathedral: {
		wetDryMix: 65, decayTime: 2.8, preDelay: 25, crossFeed: 0.7,
		roomSize: 0.85, density: 0.60, highFreqDamping: 0.60, lowFreqDamping: 0,
		stereoWidth: 1.0, phaseInvert: false, bypass: false,
	},
}
