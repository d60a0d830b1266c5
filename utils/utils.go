package utils

import (
	"math"
	"os"
)

const Float64EqualityThreshold = 1e-9

func AlmostEqual(a, b, threshold float64) bool {
	return math.Abs(a-b) <= threshold
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RoundTicks converts a scaled tick count to an integer no smaller than one.
func RoundTicks(base int, multiplier float64) int {
	ticks := int(math.Round(float64(base) * multiplier))
	if ticks < 1 {
		return 1
	}
	return ticks
}

func GetEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
