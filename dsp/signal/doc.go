// Package signal provides streaming test-signal sources.
//
// Sources fill caller-owned buffers block by block and keep their phase
// between calls, so they can feed a real-time audio callback. Frequency
// and amplitude may be changed from another goroutine while a source is
// running.
package signal
