// Package analysis provides audio analysis tools for the reverb engine.
//
// The package is intentionally narrow: a windowed RMS decay envelope used to
// measure RT60 from an impulse response, nothing more. Spectral, loudness,
// and stereo-field analysis belong to a mixing/mastering toolkit, not a
// reverb core, and are not provided here.
//
// Example usage:
//
//	env := analysis.NewDecayEnvelope(512)
//	env.Process(impulseResponseBlock)
//	rms := env.GetRMS()
package analysis
