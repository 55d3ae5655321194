// Package spectrum provides magnitude and power helpers for complex FFT
// output and a Goertzel single-bin analyzer for tone measurement.
package spectrum
