package axis

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTick renders a single tick value as label text. When format is
// non-empty it is used as a printf format applied to the float32 v (e.g.
// "%.2f", "%g"); no conversion to an integer is made. When format is empty,
// FormatTick picks a magnitude-adaptive representation: nonzero values of
// magnitude below 0.001 or at least 10000 print in scientific notation,
// integral values print without a decimal point, and other fractional
// values print with trailing zeros and a trailing decimal point trimmed,
// matching the "%g-equivalent when omitted" default.
func FormatTick(v float32, format string) string {
	if format != "" {
		return fmt.Sprintf(format, v)
	}
	return formatTrimZeros(v)
}

func formatTrimZeros(v float32) string {
	f := float64(v)
	if a := abs64(f); a != 0 && (a < 1e-3 || a >= 1e4) {
		return strconv.FormatFloat(f, 'e', -1, 32)
	}
	if f == float64(int64(f)) && abs64(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
