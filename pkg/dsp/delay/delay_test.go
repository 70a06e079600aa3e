package delay

import (
	"math"
	"testing"
)

func TestLineWriteRead(t *testing.T) {
	d := New(0.01, 48000) // 10ms max delay
	d.Write(1.0)
	for i := 0; i < 4; i++ {
		d.Write(0.0)
	}

	// The impulse was followed by 4 more writes, so it sits 5 samples back
	// (Read(1) is the most recent write).
	got := d.Read(5)
	if math.Abs(float64(got)-1.0) > 1e-6 {
		t.Errorf("expected to read back the impulse at a delay of 5 samples, got %f", got)
	}
}

func TestLineFractionalRead(t *testing.T) {
	d := New(0.01, 48000)
	d.Write(0.0)
	d.Write(2.0)

	// Halfway between the two most recent samples (0.0 and 2.0) should
	// interpolate to 1.0.
	got := d.Read(1.5)
	if math.Abs(float64(got)-1.0) > 1e-5 {
		t.Errorf("expected fractional read to interpolate to 1.0, got %f", got)
	}
}

func TestLineReset(t *testing.T) {
	d := New(0.01, 48000)
	for i := 0; i < 10; i++ {
		d.Write(1.0)
	}
	d.Reset()

	got := d.Read(1)
	if got != 0 {
		t.Errorf("expected reset line to read zeros, got %f", got)
	}
}

func TestLineReadDoesNotMutate(t *testing.T) {
	d := New(0.01, 48000)
	d.Write(1.0)
	d.Write(2.0)

	first := d.Read(1)
	second := d.Read(1)
	if first != second {
		t.Errorf("expected Read to be idempotent, got %f then %f", first, second)
	}
}
