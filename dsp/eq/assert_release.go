//go:build !eqdebug

package eq

const debugAssertionsEnabled = false

func assertDesignable(string, float64, float64, float64) {}
