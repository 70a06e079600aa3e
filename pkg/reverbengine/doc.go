// Package reverbengine is the top-level reverb façade: it owns a stereo
// pair of FDN reverb instances, a cross-feed/width processor, and every
// atomically-published, smoothed engine parameter, and exposes the
// programmatic surface a host calls from its audio and control threads.
//
// Engine is the only exported type most callers need. Construct one with
// NewEngine, call Initialize once with the host's sample rate and maximum
// block size, then drive it with ProcessBlock from the audio thread and
// the Set* methods from any thread. SetPreset applies one of the named,
// fixed parameter tables in presets.go.
package reverbengine
