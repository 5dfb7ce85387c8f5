package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"ranges", "0-3,8-11", []int{0, 1, 2, 3, 8, 9, 10, 11}},
		{"empty", "", []int{}},
		{"whitespace only", "  \n", []int{}},
		{"single", "5", []int{5}},
		{"mixed", "0,2-4,7", []int{0, 2, 3, 4, 7}},
		{"duplicates collapse", "0-2,1-3", []int{0, 1, 2, 3}},
		{"bad token skipped", "0-3,x,8", []int{0, 1, 2, 3, 8}},
		{"inverted range skipped", "5-2,7", []int{7}},
		{"trailing newline", "0-1\n", []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangeList(tt.input))
		})
	}
}

func TestRangeListSortedAndExtremes(t *testing.T) {
	got := RangeList("8-11,0-3")
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i], "output must be strictly increasing")
	}
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 11, got[len(got)-1])
}

func TestNodePagesSumsRepeatedKeys(t *testing.T) {
	content := "00400000 default N0=100\n" +
		"00500000 default N0=200\n" +
		"00600000 default N1=50\n"
	pages := NodePages(content)
	assert.Equal(t, map[int]int64{0: 300, 1: 50}, pages)
}

func TestNodePagesMultipleNodesPerLine(t *testing.T) {
	content := "00400000 default N0=10 N1=5\n00600000 default N0=3 N2=7"
	pages := NodePages(content)
	assert.Equal(t, int64(13), pages[0])
	assert.Equal(t, int64(5), pages[1])
	assert.Equal(t, int64(7), pages[2])
}

func TestNodePagesIgnoresNonNodeTokens(t *testing.T) {
	// numa_maps lines carry other key=value tokens (file=, anon=, dirty=)
	// that must not be mistaken for node counts.
	content := "7f2a default file=/usr/lib/libc.so anon=12 dirty=12 N0=42 kernelpagesize_kB=4"
	pages := NodePages(content)
	assert.Equal(t, map[int]int64{0: 42}, pages)
}

func TestNodePagesEmpty(t *testing.T) {
	assert.Empty(t, NodePages(""))
}

func TestNodePagesRoundTrip(t *testing.T) {
	content := "00400000 default N0=100 N3=7\n00500000 default N0=1"
	first := NodePages(content)
	second := NodePages(content)
	assert.Equal(t, first, second)
}

func TestNodeMemInfo(t *testing.T) {
	content := "Node 0 MemTotal:       16384000 kB\n" +
		"Node 0 MemFree:         8192000 kB\n" +
		"Node 0 MemUsed:         8192000 kB\n"
	total, free := NodeMemInfo(content)
	assert.Equal(t, int64(16384000), total)
	assert.Equal(t, int64(8192000), free)
}

func TestNodeMemInfoMissingFields(t *testing.T) {
	total, free := NodeMemInfo("Node 0 HugePages_Total: 0\n")
	assert.Zero(t, total)
	assert.Zero(t, free)
}

func TestTableSkipsHeadersAndMalformed(t *testing.T) {
	raw := "index, name, memory.used\n" +
		"# comment line\n" +
		"\n" +
		"0, NVIDIA H100, 4096 MiB\n" +
		"too,short\n" +
		"1, NVIDIA H100, [Not Supported]\n" +
		"1, NVIDIA H100, 2048 MiB\n"

	tab := NewTable(raw, ",", 3, "index", "gpu", "name")
	rows := tab.All()
	require.Len(t, rows, 2)

	idx, ok := rows[0].Int(0)
	require.True(t, ok)
	assert.Equal(t, int64(0), idx)
	assert.Equal(t, "NVIDIA H100", rows[0].Str(1))

	mem, ok := rows[0].MiB(2)
	require.True(t, ok)
	assert.Equal(t, int64(4096*1024), mem)
}

func TestTableRestartable(t *testing.T) {
	raw := "0, a, 1 MiB\n1, b, 2 MiB\n"
	tab := NewTable(raw, ",", 3)

	first := tab.All()
	tab.Reset()
	second := tab.All()
	assert.Equal(t, first, second)
}

func TestTableEmptyInput(t *testing.T) {
	tab := NewTable("", ",", 1)
	_, ok := tab.Next()
	assert.False(t, ok)
	assert.Empty(t, tab.All())
}

func TestRowFieldAccessOutOfRange(t *testing.T) {
	row := Row{Fields: []string{"7"}}
	_, ok := row.Int(5)
	assert.False(t, ok)
	_, ok = row.MiB(-1)
	assert.False(t, ok)
	assert.Equal(t, "", row.Str(9))
}

func TestRowMiBWithoutSuffix(t *testing.T) {
	row := Row{Fields: []string{"2048"}}
	kb, ok := row.MiB(0)
	require.True(t, ok)
	assert.Equal(t, int64(2048*1024), kb)
}
