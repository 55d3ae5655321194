// Package eq implements a seven-stage stereo parametric equalizer.
//
// Each channel runs the same fixed topology:
//
//	low cut -> low shelf -> peak 1 -> peak 2 -> peak 3 -> high shelf -> high cut
//
// The cut positions are cascades of up to four Butterworth sections whose
// active count follows the selected slope (12, 24, 36 or 48 dB/oct). All
// other positions are a single RBJ biquad.
//
// Engine owns both channel chains. Process runs on the audio goroutine and
// never blocks or allocates; UpdateParameters runs on a control goroutine
// and publishes new coefficients by swapping immutable per-stage handles,
// so the audio path only ever sees complete coefficient sets.
package eq
