package reverb

import (
	"math"
	"testing"
)

func TestFDNDelayLengthsAreUniqueAndInRange(t *testing.T) {
	f := NewFDN(8, 48000, nil)

	seen := make(map[float64]bool)
	for i, l := range f.lineLengths {
		if seen[l] {
			t.Fatalf("duplicate delay length %f at line %d", l, i)
		}
		seen[l] = true
		if l < 200 {
			t.Errorf("line %d length %f below minimum 200", i, l)
		}
	}
}

func TestFDNDeterministicAcrossInstances(t *testing.T) {
	a := NewFDN(8, 48000, nil)
	b := NewFDN(8, 48000, nil)

	for i := range a.lineLengths {
		if a.lineLengths[i] != b.lineLengths[i] {
			t.Fatalf("line %d length diverges: %f vs %f", i, a.lineLengths[i], b.lineLengths[i])
		}
	}

	for i := 0; i < 100; i++ {
		x := float32(0)
		if i == 0 {
			x = 1
		}
		oa := a.ProcessMono(x)
		ob := b.ProcessMono(x)
		if oa != ob {
			t.Fatalf("sample %d diverges between identically configured instances: %f vs %f", i, oa, ob)
		}
	}
}

func TestFDNImpulseDecaysToSilence(t *testing.T) {
	f := NewFDN(8, 48000, nil)
	f.SetDecayTime(0.5)

	var last float32
	for i := 0; i < 96000; i++ {
		x := float32(0)
		if i == 0 {
			x = 1
		}
		last = f.ProcessMono(x)
		if math.IsNaN(float64(last)) || math.IsInf(float64(last), 0) {
			t.Fatalf("sample %d is non-finite: %v", i, last)
		}
	}
	if math.Abs(float64(last)) > 0.01 {
		t.Errorf("expected tail to have decayed near silence after 2s, got %f", last)
	}
}

func TestFDNRoomSizeChangeSchedulesFlush(t *testing.T) {
	f := NewFDN(8, 48000, nil)
	if f.NeedsFlush() {
		t.Fatal("fresh instance should not need a flush")
	}

	f.SetRoomSize(f.roomSize + 0.2)
	if !f.NeedsFlush() {
		t.Error("expected a >0.05 room size change to schedule a flush")
	}
	// Consuming the flag clears it.
	if f.NeedsFlush() {
		t.Error("NeedsFlush should clear the pending flag once observed")
	}
}

func TestFDNSmallRoomSizeChangeDoesNotFlush(t *testing.T) {
	f := NewFDN(8, 48000, nil)
	f.NeedsFlush() // clear any startup state

	f.SetRoomSize(f.roomSize + 0.01)
	if f.NeedsFlush() {
		t.Error("expected a <0.05 room size change not to schedule a flush")
	}
}

func TestFDNMatrixGainRespectsStabilityCeiling(t *testing.T) {
	f := NewFDN(8, 48000, nil)
	f.SetDecayTime(10) // large decay time should still clamp below instability
	f.SetRoomSize(0.0)

	if f.matrix.gain > 0.97 {
		t.Errorf("expected g_matrix to respect the stability ceiling, got %f", f.matrix.gain)
	}
}

func TestFDNDensityChangesStageCount(t *testing.T) {
	f := NewFDN(8, 48000, nil)

	f.SetDensity(0)
	lowStages := len(f.earlyReflections.stages)

	f.SetDensity(1)
	highStages := len(f.earlyReflections.stages)

	if highStages <= lowStages {
		t.Errorf("expected higher density to engage more stages: low=%d high=%d", lowStages, highStages)
	}
}

func TestFDNFlushZeroesState(t *testing.T) {
	f := NewFDN(8, 48000, nil)
	for i := 0; i < 1000; i++ {
		x := float32(0)
		if i == 0 {
			x = 1
		}
		f.ProcessMono(x)
	}

	f.Flush()

	out := f.ProcessMono(0)
	if out != 0 {
		t.Errorf("expected silence immediately after a flush with zero input, got %f", out)
	}
}

func TestPanWeightSumsToOne(t *testing.T) {
	for i := 0; i < 8; i++ {
		wL, wR := PanWeight(i)
		if math.Abs(float64(wL+wR)-1.0) > 1e-9 {
			t.Errorf("line %d pan weights do not sum to 1: %f + %f", i, wL, wR)
		}
	}
}
