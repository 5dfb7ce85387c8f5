package parse

import (
	"sort"
	"strconv"
	"strings"
)

// RangeList parses a kernel CPU list string such as "0-3,8-11" into a
// sorted, deduplicated slice of CPU IDs. Tokens are either single integers
// or dash-delimited inclusive ranges; tokens that fail to parse (including
// inverted ranges) are skipped. An empty string yields an empty slice,
// which for a topology node means no CPUs are attached.
func RangeList(s string) []int {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []int{}
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(trimmed, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if dash := strings.Index(token, "-"); dash >= 0 {
			start, err1 := strconv.Atoi(token[:dash])
			end, err2 := strconv.Atoi(token[dash+1:])
			if err1 != nil || err2 != nil || start > end {
				continue
			}
			for cpu := start; cpu <= end; cpu++ {
				seen[cpu] = struct{}{}
			}
			continue
		}
		cpu, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		seen[cpu] = struct{}{}
	}

	cpus := make([]int, 0, len(seen))
	for cpu := range seen {
		cpus = append(cpus, cpu)
	}
	sort.Ints(cpus)
	return cpus
}
