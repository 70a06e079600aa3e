// Package reverb implements a Feedback Delay Network reverb core: a bank of
// prime-length delay lines coupled through an orthogonal Householder
// feedback matrix, preceded by series all-pass chains for early reflections
// and diffusion, with per-line Butterworth damping shaping the decay's
// frequency content.
//
// AllPass and Chain implement the two-multiply Schroeder all-pass used for
// both the early-reflection and diffusion stages. Matrix is the seeded,
// orthogonal Householder feedback matrix, with its unscaled structure kept
// separate from the RT60-derived scalar gain. CrossFeed implements the
// stereo width and cross-channel bleed stage that runs ahead of the FDN.
// FDN ties a complete set of these into one instance; stereo operation
// drives two independent FDN instances and combines their outputs with
// PanWeight. MeasureRT60 is a test harness for verifying the RT60
// calibration against a configured decay time.
package reverb
