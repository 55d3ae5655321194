// Package design provides the coefficient designers behind the equalizer's
// filter stages.
//
// All designers return biquad coefficients consumable by dsp/filter/biquad.
// The single-section designers follow the RBJ audio EQ cookbook (peaking,
// low/high shelf, low/high pass); ButterworthLP and ButterworthHP build
// higher-order cut filters as cascades of those sections.
//
// Designers never return non-finite coefficients. Parameters that cannot
// describe a filter at the given sample rate (frequency outside (0, Nyquist),
// non-finite values) produce [biquad.Identity], so a misconfigured stage
// passes audio through instead of muting or blowing up.
package design
