package parse

import (
	"bufio"
	"strconv"
	"strings"
)

// NodePages parses /proc/<pid>/numa_maps-style content into a per-node page
// count map. Each line describes one mapped region: an address, a policy,
// and zero or more "N<node>=<pages>" tokens. A process usually has many
// regions per node, so counts for the same node key are summed, never
// overwritten.
func NodePages(content string) map[int]int64 {
	pages := make(map[int]int64)

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, token := range strings.Fields(scanner.Text()) {
			eq := strings.Index(token, "=")
			if eq <= 1 || token[0] != 'N' {
				continue
			}
			nodeID, err := strconv.Atoi(token[1:eq])
			if err != nil {
				continue
			}
			count, err := strconv.ParseInt(token[eq+1:], 10, 64)
			if err != nil {
				continue
			}
			pages[nodeID] += count
		}
	}
	return pages
}

// NodeMemInfo extracts MemTotal and MemFree (in kB) from a NUMA node's
// meminfo file. Lines look like "Node 0 MemTotal:  16384000 kB". Missing
// fields are reported as zero.
func NodeMemInfo(content string) (totalKB, freeKB int64) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "MemTotal:"):
			if v, ok := kbValue(line); ok {
				totalKB = v
			}
		case strings.Contains(line, "MemFree:"):
			if v, ok := kbValue(line); ok {
				freeKB = v
			}
		}
	}
	return totalKB, freeKB
}

// kbValue pulls the first numeric token after the colon in a
// "Label:  12345 kB" line.
func kbValue(line string) (int64, bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return 0, false
	}
	fields := strings.Fields(line[colon+1:])
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
