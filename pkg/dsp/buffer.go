// Package dsp provides digital signal processing utilities for audio
package dsp

// Buffer utilities for common audio operations

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Copy copies from source to destination - no allocations
func Copy(dst, src []float32) {
	copy(dst, src)
}
