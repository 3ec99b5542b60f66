package utils

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

var countSuffixes = []struct {
	size   uint64
	suffix string
}{
	{1_000_000_000, "B"},
	{1_000_000, "M"},
	{1_000, "K"},
}

// HumanInteger shortens counts like 23476 to "23 K". Counts below 10 of
// a unit keep one decimal ("4.5 K")
func HumanInteger[N constraints.Integer](input N) string {
	if input < 0 {
		return "-" + HumanInteger(-int64(input))
	}
	num := uint64(input)
	for _, s := range countSuffixes {
		if num < s.size {
			continue
		}
		if num < 10*s.size && num%s.size >= s.size/10 {
			return strconv.FormatFloat(float64(num/(s.size/10))/10, 'f', 1, 64) + " " + s.suffix
		}
		return strconv.FormatUint(num/s.size, 10) + " " + s.suffix
	}
	return strconv.FormatUint(num, 10)
}
