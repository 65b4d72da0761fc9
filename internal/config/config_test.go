package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Bench.Producers)
	assert.Equal(t, 100_000, cfg.Bench.Items)
	assert.Equal(t, 800_000, cfg.Bench.Capacity())
	assert.Equal(t, Implementations, cfg.Bench.Impls)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOGBENCH_BENCH_PRODUCERS", "3")
	t.Setenv("LOGBENCH_BENCH_IMPLS", "log,mutex")
	t.Setenv("LOGBENCH_LOGGING_FORMAT", "json")

	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Bench.Producers)
	assert.Equal(t, []string{"log", "mutex"}, cfg.Bench.Impls)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbench.yaml")
	data := []byte(`
bench:
  producers: 2
  items: 10
  readers: 0
  impls: [ring]
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Bench.Producers)
	assert.Equal(t, 10, cfg.Bench.Items)
	assert.Equal(t, 0, cfg.Bench.Readers)
	assert.Equal(t, []string{"ring"}, cfg.Bench.Impls)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 1, cfg.Bench.Rounds)
}

func TestInitMissingFile(t *testing.T) {
	err := Init(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Bench.Producers = 0
	cfg.Bench.Impls = []string{"log", "skiplist"}
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "3 validation errors")
	assert.Contains(t, err.Error(), "skiplist")
}

func TestExpandImpls(t *testing.T) {
	assert.Equal(t, Implementations, ExpandImpls([]string{"all"}))
	assert.Equal(t, []string{"mutex", "log"}, ExpandImpls([]string{"Mutex", " log ", "mutex"}))
	assert.Equal(t, []string{"ring", "log", "mutex", "rwmutex"}, ExpandImpls([]string{"ring,all"}))
	assert.Empty(t, ExpandImpls(nil))
}
