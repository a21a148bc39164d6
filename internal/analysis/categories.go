package analysis

import (
	"sort"
	"strings"
)

// CategoryCount is one distinct value and how many rows hold it.
type CategoryCount struct {
	Value string
	Count int
}

// CountCategories counts distinct non-blank values, most frequent first. Ties
// are ordered by value so the result is deterministic.
func CountCategories(cells []string) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, c := range cells {
		v := strings.TrimSpace(c)
		if v == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	out := make([]CategoryCount, 0, len(order))
	for _, v := range order {
		out = append(out, CategoryCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}
