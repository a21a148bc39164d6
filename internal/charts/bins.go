package charts

import "math"

// Bin is one histogram bucket covering [Lo, Hi); the last bin includes Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Bins splits vals into k equal-width bins. k <= 0 uses Sturges' rule.
// Positions are computed on halved values so spans wider than the float64
// range still land in a bin.
func Bins(vals []float64, k int) []Bin {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(vals)}}
	}
	if k <= 0 {
		k = int(math.Ceil(math.Log2(float64(len(vals))))) + 1
	}
	half := hi/2 - lo/2
	edge := func(i int) float64 {
		return 2 * (lo/2 + half*float64(i)/float64(k))
	}
	bins := make([]Bin, k)
	for i := range bins {
		bins[i].Lo = edge(i)
		bins[i].Hi = edge(i + 1)
	}
	bins[0].Lo, bins[k-1].Hi = lo, hi
	for _, v := range vals {
		i := int((v/2 - lo/2) / half * float64(k))
		if i < 0 {
			i = 0
		}
		if i >= k {
			i = k - 1
		}
		bins[i].Count++
	}
	return bins
}
