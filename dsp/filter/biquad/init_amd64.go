//go:build amd64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/amd64/unroll4" // register unrolled backend
	_ "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/generic"       // register generic backend
)
