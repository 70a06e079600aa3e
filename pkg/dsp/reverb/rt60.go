package reverb

import (
	"math"

	"github.com/justyntemme/fdnreverb/pkg/dsp/analysis"
)

const (
	rt60WarmupSeconds = 0.05
	rt60StartDB       = -5.0
	rt60EndDB         = -65.0

	// rt60WindowSamples is the running-RMS window width spec.md §8's P4
	// names literally ("512-sample running RMS"), independent of sample
	// rate.
	rt60WindowSamples = 512
)

// MeasureRT60 drives f with a unit impulse and measures the time for its
// response to decay from rt60StartDB to rt60EndDB below its peak level (a
// 60dB span), the standard RT60 extrapolation technique. The peak is the
// highest running-RMS level seen so far; a new peak restarts the
// measurement. maxSeconds bounds
// how long the measurement will run before giving up. Used by tests to
// verify the RT60 calibration in updateMatrixGain against the configured
// decay time (spec.md §8, P4).
func MeasureRT60(f *FDN, sampleRate float64, maxSeconds float64) float64 {
	env := analysis.NewDecayEnvelope(rt60WindowSamples)

	warmupSamples := int(rt60WarmupSeconds * sampleRate)
	maxSamples := int(maxSeconds * sampleRate)

	peakDB := math.Inf(-1)
	for i := 0; i < warmupSamples && i < maxSamples; i++ {
		x := float32(0)
		if i == 0 {
			x = 1
		}
		y := f.ProcessMono(x)
		env.Process([]float64{float64(y)})
		if db := env.GetRMSDB(); db > peakDB {
			peakDB = db
		}
	}

	startSample := -1
	endSample := -1
	for i := warmupSamples; i < maxSamples; i++ {
		y := f.ProcessMono(0)
		env.Process([]float64{float64(y)})
		db := env.GetRMSDB()

		// The peak keeps being tracked past the warmup: long delay lines
		// may not deliver their first arrivals until after it.
		if db > peakDB || math.IsInf(peakDB, -1) {
			peakDB = db
			startSample = -1
			continue
		}
		if startSample < 0 && db <= peakDB+rt60StartDB {
			startSample = i
		}
		if startSample >= 0 && db <= peakDB+rt60EndDB {
			endSample = i
			break
		}
	}

	if startSample < 0 || endSample < 0 {
		return math.Inf(1) // never decayed the full 60dB within maxSeconds
	}

	return float64(endSample-startSample) / sampleRate
}
