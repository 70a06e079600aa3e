// Package dsp provides digital signal processing utilities and algorithms.
package dsp

// Common audio constants used throughout the DSP package and the reverb engine.
const (
	// Gain/Level constants
	MinDB     = -200.0 // Minimum dB value (effectively silence)
	UnityGain = 1.0    // Unity gain (0 dB)

	// Q factor ranges
	MinQ     = 0.1
	MaxQ     = 20.0
	DefaultQ = 0.707 // Butterworth response

	// Channel counts
	Mono   = 1
	Stereo = 2

	// Common sample rates
	SampleRate32k  = 32000.0
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0
	SampleRate88k2 = 88200.0
	SampleRate96k  = 96000.0
	SampleRate192k = 192000.0

	// Buffer sizes
	MinBufferSize     = 32
	DefaultBufferSize = 512
	MaxBufferSize     = 8192

	// Smoothing times
	FastSmoothing   = 0.001 // 1ms
	MediumSmoothing = 0.010 // 10ms
	SlowSmoothing   = 0.050 // 50ms

	// Common mix ranges
	MinMix  = 0.0 // Dry
	MaxMix  = 1.0 // Wet
	HalfMix = 0.5 // 50/50

	// Phase constants
	TwoPi  = 6.283185307179586
	Pi     = 3.141592653589793
	HalfPi = 1.5707963267948966

	// Conversion factors
	DegreesToRadians = Pi / 180.0
	RadiansToDegrees = 180.0 / Pi

	// Small values for comparisons
	Epsilon      = 1e-6
	SmallFloat32 = 1e-30

	// Clipping thresholds
	ClipThreshold     = 0.999
	SoftClipThreshold = 0.95

	// Reverb parameter ranges (spec.md §3, Engine Parameters)
	ReverbMinDecay = 0.1
	ReverbMaxDecay = 10.0
	ReverbMinSize  = 0.0
	ReverbMaxSize  = 1.0
	ReverbMinDamp  = 0.0
	ReverbMaxDamp  = 1.0

	// Delay ranges
	DelayMinTime = 0.001 // 1ms
	DelayMaxTime = 5.0   // 5s
)
