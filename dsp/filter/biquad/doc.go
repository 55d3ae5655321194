// Package biquad provides the second-order IIR runtime used by the equalizer.
//
// A [Stage] runs Direct Form II Transposed processing for one section
// described by [Coefficients]. Its coefficient set is held behind an atomic
// handle so a control goroutine can install new coefficients while an audio
// goroutine is processing: the audio side always sees either the complete
// old set or the complete new one. Delay state belongs to the stage and is
// only touched by the goroutine that processes it.
//
// Coefficient design (peaking EQ, shelves, Butterworth cascades) lives in
// dsp/filter/design.
package biquad
