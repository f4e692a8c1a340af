package sorter

import (
	"fmt"
	"math"
)

// binLinear partitions the observed metric range into numBins equal-width
// bins. Bin names embed the numeric range, scaled by multiplier for
// readability and suffixed with unit.
func (s *Sorter) binLinear(result ResultSet, multiplier float64, unit string) []Bin {
	if len(result) == 0 {
		return nil
	}

	minVal, maxVal := result[0].Scalar, result[0].Scalar
	for _, e := range result[1:] {
		minVal = math.Min(minVal, e.Scalar)
		maxVal = math.Max(maxVal, e.Scalar)
	}
	width := (maxVal - minVal) / float64(s.numBins)

	bins := make([]Bin, s.numBins)
	for i := range bins {
		lower := minVal + width*float64(i)
		bins[i].Name = fmt.Sprintf("%s_%03d_%d%s_to_%d%s",
			s.method, i,
			int(math.Round(lower*multiplier)), unit,
			int(math.Round((lower+width)*multiplier)), unit)
	}

	for _, e := range result {
		idx := 0
		if width > 0 {
			idx = int((e.Scalar - minVal) / width)
			if idx >= s.numBins {
				idx = s.numBins - 1 // the maximum lands in the last bin
			}
		}
		bins[idx].Members = append(bins[idx].Members, e.Name)
	}
	return bins
}

// binAngular partitions the fixed [-90, 90] degree range into numBins
// equal-width bins, independent of the observed data range. Values are
// clamped into range before assignment. The threshold array runs high to
// low; bin names are numbered from 0 starting at -90 degrees so the
// folder listing reads left to right.
func (s *Sorter) binAngular(result ResultSet) []Bin {
	n := s.numBins
	thresholds := make([]float64, n+1)
	for k := range thresholds {
		thresholds[k] = 90 - 180*float64(k)/float64(n)
	}

	bins := make([]Bin, n)
	for i := range bins {
		lower := int(math.Round(thresholds[n-i] + 90))
		upper := int(math.Round(thresholds[n-i-1] + 90))
		bins[i].Name = fmt.Sprintf("%s_%03d_%ddegs_to_%ddegs", s.method, i, lower, upper)
	}

	for _, e := range result {
		v := math.Max(-90, math.Min(90, e.Scalar))
		idx := n - 1
		for k := 1; k <= n; k++ {
			if v >= thresholds[k] {
				idx = k - 1
				break
			}
		}
		bins[idx].Members = append(bins[idx].Members, e.Name)
	}
	return bins
}
