package console

import (
	"math"
	"strconv"
)

// streamPrecision is the default significant-digit count of a C++ ostream
const streamPrecision = 6

// FormatFloat renders v the way a default-configured output stream does:
// shortest of fixed or exponent notation, 6 significant digits, no trailing zeros.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', streamPrecision, 64)
}
