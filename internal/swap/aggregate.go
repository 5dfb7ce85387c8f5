package swap

import "sort"

// Aggregate is a by-name rollup of swapped processes.
type Aggregate struct {
	Name   string
	SwapKB int64
	Count  int
}

// AggregateByName groups swap records by process name, summing swap usage
// and counting group members. Output is ordered by swap descending, name
// ascending on ties.
func AggregateByName(records []ProcessRecord) []Aggregate {
	byName := map[string]*Aggregate{}
	var names []string
	for _, r := range records {
		agg, ok := byName[r.Name]
		if !ok {
			agg = &Aggregate{Name: r.Name}
			byName[r.Name] = agg
			names = append(names, r.Name)
		}
		agg.SwapKB += r.SwapKB
		agg.Count++
	}

	out := make([]Aggregate, 0, len(names))
	for _, name := range names {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SwapKB != out[j].SwapKB {
			return out[i].SwapKB > out[j].SwapKB
		}
		return out[i].Name < out[j].Name
	})
	return out
}
