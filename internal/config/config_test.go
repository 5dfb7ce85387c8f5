package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/memtop/internal/cache"
	"github.com/rileyhilliard/memtop/internal/correlate"
	"github.com/rileyhilliard/memtop/internal/errors"
	"github.com/rileyhilliard/memtop/internal/ui"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 20, cfg.TopN)
}

func TestLoadFullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := `version: 1
interval: 2s
unit: mb
sort: gpu-mem
top_n: 10
history: 30
budgets:
  topology: 60s
  distributions: 10s
  devices: 20s
  gpu_processes: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, ui.UnitMB, cfg.DisplayUnit())
	assert.Equal(t, correlate.SortGPUMem, cfg.SortKey())
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 30, cfg.History)
	assert.Equal(t, 60*time.Second, cfg.Budgets.Topology)
}

func TestLoadSparseConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("unit: gb\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ui.UnitGB, cfg.DisplayUnit())
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 20, cfg.TopN)
	assert.Equal(t, 30*time.Second, cfg.Budgets.Topology)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad unit":     "unit: parsecs\n",
		"bad sort":     "sort: favorite\n",
		"fast tick":    "interval: 1ms\n",
		"zero top_n":   "top_n: 0\n",
		"zero history": "history: 0\n",
		"future":       "version: 99\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFindExplicitPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unit: kb\n"), 0o644))

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.Unit = "mb"
	require.NoError(t, Write(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mb", loaded.Unit)
	assert.Equal(t, cfg.TopN, loaded.TopN)
}

func TestToBudgets(t *testing.T) {
	cfg := DefaultConfig()
	budgets := cfg.ToBudgets()
	assert.Equal(t, time.Duration(0), budgets[cache.ClassSwap])
	assert.Equal(t, 30*time.Second, budgets[cache.ClassTopology])
	assert.Equal(t, time.Second, budgets[cache.ClassGPUProcesses])
}

func TestSortKeyMapping(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, correlate.SortSwap, cfg.SortKey())
	cfg.Sort = "node"
	assert.Equal(t, correlate.SortNode, cfg.SortKey())
	cfg.Sort = "name"
	assert.Equal(t, correlate.SortName, cfg.SortKey())
}

func TestLoadOrDefaultWithoutConfigFile(t *testing.T) {
	home := t.TempDir()
	work := filepath.Join(home, "work")
	require.NoError(t, os.Mkdir(work, 0o755))
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOrDefaultFindsLocalConfig(t *testing.T) {
	home := t.TempDir()
	work := filepath.Join(home, "work")
	require.NoError(t, os.Mkdir(work, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, ConfigFileName),
		[]byte("interval: 3s\n"), 0o644))
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Interval)
}
