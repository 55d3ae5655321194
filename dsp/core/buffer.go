package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Deinterleave splits interleaved stereo frames into left and right.
// It returns the number of frames written, bounded by the shortest of the
// three buffers. A trailing half frame in src is ignored.
func Deinterleave(left, right []float64, src []float32) int {
	n := len(src) / 2
	if len(left) < n {
		n = len(left)
	}
	if len(right) < n {
		n = len(right)
	}

	for i := 0; i < n; i++ {
		left[i] = float64(src[2*i])
		right[i] = float64(src[2*i+1])
	}

	return n
}

// Interleave writes n frames from left and right into dst as interleaved
// stereo. dst must hold at least 2*n samples.
func Interleave(dst []float32, left, right []float64, n int) {
	if n <= 0 {
		return
	}
	_ = dst[2*n-1] // bounds check hint
	for i := 0; i < n; i++ {
		dst[2*i] = float32(left[i])
		dst[2*i+1] = float32(right[i])
	}
}
