package util

import (
	"math"
	"strconv"
)

// Round2 keeps score and rate fields at two-decimal precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ParseUintParam(s string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
