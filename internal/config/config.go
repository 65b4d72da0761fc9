// Package config loads the benchmark harness configuration.
// Values are resolved by viper: flags, then LOGBENCH_* environment variables,
// then an optional config file, then the defaults below.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LOGBENCH"

// Implementations the harness knows how to run.
var Implementations = []string{"log", "mutex", "rwmutex", "ring"}

// Config represents the complete harness configuration
type Config struct {
	Bench   BenchConfig   `mapstructure:"bench"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BenchConfig controls the workload.
type BenchConfig struct {
	// Producers is the number of goroutines pushing concurrently
	Producers int `mapstructure:"producers"`
	// Items is the number of pushes per producer; capacity is Producers*Items
	Items int `mapstructure:"items"`
	// Readers is the number of goroutines reading random published indices while producers run
	Readers int `mapstructure:"readers"`
	// Impls lists the implementations to run, "all" selects every one
	Impls []string `mapstructure:"impls"`
	// Rounds repeats each run and keeps the best throughput
	Rounds int `mapstructure:"rounds"`
}

// LoggingConfig controls harness logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Capacity returns the log capacity the workload needs.
func (b BenchConfig) Capacity() int {
	return b.Producers * b.Items
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Bench: BenchConfig{
			Producers: 8,
			Items:     100_000,
			Readers:   2,
			Impls:     []string{"all"},
			Rounds:    1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("bench.producers", d.Bench.Producers)
	v.SetDefault("bench.items", d.Bench.Items)
	v.SetDefault("bench.readers", d.Bench.Readers)
	v.SetDefault("bench.impls", d.Bench.Impls)
	v.SetDefault("bench.rounds", d.Bench.Rounds)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Init prepares v: defaults, environment binding and, if file is not empty, the config file.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	// LOGBENCH_BENCH_PRODUCERS for bench.producers
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Bench.Impls = ExpandImpls(cfg.Bench.Impls)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ExpandImpls normalizes names, replaces "all" with every implementation and drops duplicates.
// A single comma-separated entry, as set from the environment, is split.
func ExpandImpls(impls []string) []string {
	var out []string
	for _, entry := range impls {
		for _, name := range strings.Split(entry, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			switch {
			case name == "":
			case name == "all":
				for _, impl := range Implementations {
					if !slices.Contains(out, impl) {
						out = append(out, impl)
					}
				}
			case !slices.Contains(out, name):
				out = append(out, name)
			}
		}
	}
	return out
}
