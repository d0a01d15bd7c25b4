package server

import "strconv"

const sizeUnits = "kMGTP"

// formatSize renders a byte count as "512B", "1.5k", "3.0M" and so on. The
// one-decimal rounding is not renormalised, so 1048525 bytes renders as
// "1024.0k". Counts of 1024P and above stay in P.
func formatSize(n int64) string {
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(sizeUnits) {
		v /= 1024
		i++
	}
	if i == 0 {
		return strconv.FormatInt(n, 10) + "B"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + sizeUnits[i-1:i]
}
