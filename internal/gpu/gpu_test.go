package gpu

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDevices(t *testing.T) {
	csv := "0, NVIDIA H100, 81920 MiB, 40960 MiB, 40960 MiB, 45, 00000000:01:00.0\n"
	devices := ParseDevices(csv)
	require.Len(t, devices, 1)

	d := devices[0]
	assert.Equal(t, 0, d.Index)
	assert.Equal(t, "NVIDIA H100", d.Name)
	assert.Equal(t, int64(81920*1024), d.MemTotalKB)
	assert.Equal(t, int64(40960*1024), d.MemUsedKB)
	assert.Equal(t, int64(40960*1024), d.MemFreeKB)
	require.NotNil(t, d.Temperature)
	assert.Equal(t, 45, *d.Temperature)
	assert.Equal(t, "00000000:01:00.0", d.BusAddress)
	assert.Nil(t, d.NUMANode)
}

func TestParseDevicesMultiple(t *testing.T) {
	csv := "0, NVIDIA H100, 81920 MiB, 10000 MiB, 71920 MiB, 42, 00000000:01:00.0\n" +
		"1, NVIDIA H100, 81920 MiB, 20000 MiB, 61920 MiB, 50, 00000000:02:00.0\n" +
		"2, NVIDIA H100, 81920 MiB, 5000 MiB, 76920 MiB, 38, 00000000:03:00.0\n"
	devices := ParseDevices(csv)
	require.Len(t, devices, 3)
	assert.Equal(t, 0, devices[0].Index)
	assert.Equal(t, 1, devices[1].Index)
	assert.Equal(t, 2, devices[2].Index)
}

func TestParseDevicesSkipsHeaderAndMalformed(t *testing.T) {
	csv := "index, name, memory.total [MiB], memory.used [MiB], memory.free [MiB], temperature.gpu, pci.bus_id\n" +
		"not, a, valid, row, at, all, here\n" +
		"0, NVIDIA H100, 81920 MiB, 40960 MiB, 40960 MiB, 45, 00000000:01:00.0\n"
	devices := ParseDevices(csv)
	require.Len(t, devices, 1)
	assert.Equal(t, "NVIDIA H100", devices[0].Name)
}

func TestParseDevicesMissingTemperature(t *testing.T) {
	csv := "0, NVIDIA H100, 81920 MiB, 40960 MiB, 40960 MiB, N/A, 00000000:01:00.0\n"
	devices := ParseDevices(csv)
	require.Len(t, devices, 1)
	assert.Nil(t, devices[0].Temperature)
}

func TestParseProcesses(t *testing.T) {
	csv := "0, 1234, python3, 2048 MiB\n"
	procs := ParseProcesses(csv)
	require.Len(t, procs, 1)
	assert.Equal(t, 1234, procs[0].PID)
	assert.Equal(t, "python3", procs[0].Name)
	assert.Equal(t, 0, procs[0].Device)
	assert.Equal(t, int64(2048*1024), procs[0].MemUsedKB)
}

func TestParseProcessesEmptyAndMalformed(t *testing.T) {
	assert.Empty(t, ParseProcesses(""))
	assert.Empty(t, ParseProcesses("this is not valid csv\n0, not_a_pid, proc, 100 MiB\n"))
	assert.Empty(t, ParseProcesses("0, 99, proc, [Not Supported]\n"))
}

func TestParseProcessesResolvedByBusAddress(t *testing.T) {
	byBus := map[string]int{"00000000:02:00.0": 1}
	csv := "00000000:02:00.0, 555, trainer, 4096 MiB\n" +
		"00000000:09:00.0, 777, stranger, 128 MiB\n"
	procs := ParseProcessesResolved(csv, byBus)
	require.Len(t, procs, 1)
	assert.Equal(t, 555, procs[0].PID)
	assert.Equal(t, 1, procs[0].Device)
}

func TestParseProcessesMultiDeviceNotDeduplicated(t *testing.T) {
	csv := "0, 100, trainer, 1024 MiB\n1, 100, trainer, 2048 MiB\n"
	procs := ParseProcesses(csv)
	require.Len(t, procs, 2)
	assert.Equal(t, procs[0].PID, procs[1].PID)
	assert.NotEqual(t, procs[0].Device, procs[1].Device)
}

func TestIndexByBusAddress(t *testing.T) {
	devices := []Device{
		{Index: 0, BusAddress: "00000000:01:00.0"},
		{Index: 1, BusAddress: "00000000:02:00.0"},
		{Index: 2},
	}
	byBus := IndexByBusAddress(devices)
	assert.Len(t, byBus, 2)
	assert.Equal(t, 1, byBus["00000000:02:00.0"])
}

// fakeRunner returns canned output keyed by the first argument.
type fakeRunner struct {
	outputs map[string]string
	err     error
	calls   []string
}

func (f *fakeRunner) Run(args ...string) (string, error) {
	f.calls = append(f.calls, args[0])
	if f.err != nil {
		return "", f.err
	}
	out, ok := f.outputs[args[0]]
	if !ok {
		return "", fmt.Errorf("unexpected query %q", args[0])
	}
	return out, nil
}

func TestAvailable(t *testing.T) {
	ok := &fakeRunner{outputs: map[string]string{availabilityQuery: "0\n"}}
	assert.True(t, Available(ok))

	down := &fakeRunner{err: fmt.Errorf("exec: nvidia-smi: not found")}
	assert.False(t, Available(down))
}

func TestQueryDevices(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		deviceQuery: "0, NVIDIA H100, 81920 MiB, 4096 MiB, 77824 MiB, 45, 00000000:01:00.0\n",
	}}
	devices, err := QueryDevices(runner)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, int64(4096*1024), devices[0].MemUsedKB)
}

func TestQueryProcessesFallsBackToLegacyQuery(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		processQueryLegacy: "0, 200, infer.py, 2048 MiB\n",
	}}
	procs, err := QueryProcesses(runner, nil)
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.Equal(t, 200, procs[0].PID)
	// The primary query was attempted first.
	require.Len(t, runner.calls, 2)
	assert.Equal(t, processQuery, runner.calls[0])
	assert.Equal(t, processQueryLegacy, runner.calls[1])
}

func writePCIDevice(t *testing.T, root, addr, numaNode string) {
	t.Helper()
	dir := filepath.Join(root, addr)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "numa_node"), []byte(numaNode), 0o644))
}

func TestAffinityByNode(t *testing.T) {
	root := t.TempDir()
	writePCIDevice(t, root, "0000:01:00.0", "2\n")
	writePCIDevice(t, root, "0000:02:00.0", "-1\n")

	devices := []Device{
		{Index: 0, BusAddress: "00000000:01:00.0"},
		{Index: 1, BusAddress: "00000000:02:00.0"}, // no affinity
		{Index: 2, BusAddress: "00000000:03:00.0"}, // missing in sysfs
	}

	byNode := AffinityByNode(devices, root)
	assert.Equal(t, map[int]int{2: 0}, byNode)
}

func TestFillNUMANodes(t *testing.T) {
	root := t.TempDir()
	writePCIDevice(t, root, "0000:01:00.0", "3\n")

	devices := []Device{
		{Index: 0, BusAddress: "00000000:01:00.0"},
		{Index: 1, BusAddress: "00000000:02:00.0"},
	}
	FillNUMANodes(devices, root)

	require.NotNil(t, devices[0].NUMANode)
	assert.Equal(t, 3, *devices[0].NUMANode)
	assert.Nil(t, devices[1].NUMANode)
}

func TestAddressCandidates(t *testing.T) {
	assert.Equal(t, []string{"00000000:01:00.0", "0000:01:00.0"}, addressCandidates("00000000:01:00.0"))
	assert.Equal(t, []string{"0000:01:00.0"}, addressCandidates("0000:01:00.0"))
}

func TestShouldResolveName(t *testing.T) {
	assert.True(t, shouldResolveName(""))
	assert.True(t, shouldResolveName("unknown"))
	assert.True(t, shouldResolveName("0x10de"))
	assert.True(t, shouldResolveName("PCI Device 10de:2330"))
	assert.False(t, shouldResolveName("NVIDIA H100"))
}

func TestReadPCIIDNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendor")
	require.NoError(t, os.WriteFile(path, []byte("0x10DE\n"), 0o644))
	assert.Equal(t, "10de", readPCIID(path))

	short := filepath.Join(dir, "device")
	require.NoError(t, os.WriteFile(short, []byte("0xab\n"), 0o644))
	assert.Equal(t, "00ab", readPCIID(short))

	assert.Equal(t, "", readPCIID(filepath.Join(dir, "absent")))
}
