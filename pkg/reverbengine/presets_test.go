package reverbengine

import "testing"

func applyAndReadBack(preset Preset) (p *params, values presetValues) {
	e := NewEngine()
	e.Initialize(48000, 512)
	e.SetPreset(preset)
	return e.params, presetTable[preset]
}

func checkPresetApplied(t *testing.T, preset Preset) {
	t.Helper()
	p, want := applyAndReadBack(preset)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"wetDryMix", p.wetDryMix.GetPlainValue(), want.wetDryMix},
		{"decayTime", p.decayTime.GetPlainValue(), want.decayTime},
		{"preDelay", p.preDelay.GetPlainValue(), want.preDelay},
		{"crossFeed", p.crossFeed.GetPlainValue(), want.crossFeed},
		{"roomSize", p.roomSize.GetPlainValue(), want.roomSize},
		{"density", p.density.GetPlainValue(), want.density},
		{"highFreqDamping", p.highFreqDamping.GetPlainValue(), want.highFreqDamping},
		{"lowFreqDamping", p.lowFreqDamping.GetPlainValue(), want.lowFreqDamping},
		{"stereoWidth", p.stereoWidth.GetPlainValue(), want.stereoWidth},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("preset %d, field %s: got %f, want %f", preset, c.name, c.got, c.want)
		}
	}
}

func TestPresetCleanMatchesTable(t *testing.T) {
	checkPresetApplied(t, PresetClean)

	e := NewEngine()
	e.Initialize(48000, 512)
	e.SetPreset(PresetClean)
	if !e.bypass.Load() {
		t.Error("expected Clean preset to set bypass")
	}
}

func TestPresetVocalBoothMatchesTable(t *testing.T) {
	checkPresetApplied(t, PresetVocalBooth)
}

func TestPresetStudioMatchesTable(t *testing.T) {
	checkPresetApplied(t, PresetStudio)
}

func TestPresetCathedralMatchesTable(t *testing.T) {
	checkPresetApplied(t, PresetCathedral)
}

func TestPresetCustomClearsBypassWithoutTouchingParams(t *testing.T) {
	e := NewEngine()
	e.Initialize(48000, 512)
	e.SetPreset(PresetCathedral)
	e.bypass.Store(true)

	before := e.params.roomSize.GetPlainValue()
	e.SetPreset(PresetCustom)

	if e.bypass.Load() {
		t.Error("expected PresetCustom to clear bypass")
	}
	if after := e.params.roomSize.GetPlainValue(); after != before {
		t.Errorf("expected PresetCustom to leave roomSize untouched, got %f want %f", after, before)
	}
}
