package diagfmt

import (
	"math"
	"strconv"
)

// FormatValue renders a result. precision < 0 selects the shortest
// representation that reads back to the same float64.
func FormatValue(v float64, precision int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	if precision < 0 {
		precision = -1
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
