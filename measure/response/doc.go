// Package response measures the magnitude response of a block processor.
//
// A unit impulse is run through the processor and the captured impulse
// response is transformed with an FFT. The result is directly comparable
// to an analytic |H(f)| such as eq.Engine.MagnitudeAt, provided the
// response has decayed within the FFT length.
//
// # Usage
//
//	var chain eq.ChannelChain
//	chain.ApplySnapshot(settings, 48000)
//	r, err := response.Measure(&chain, 16384, 48000)
//	fmt.Printf("1 kHz: %.2f dB\n", r.DB(1000))
package response
