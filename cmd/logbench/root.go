package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aradilov/broadcastlog/internal/bench"
	"github.com/aradilov/broadcastlog/internal/config"
	"github.com/aradilov/broadcastlog/internal/logging"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "logbench",
		Short: "Benchmark harness for broadcastlog",
		Long: `logbench pushes into a broadcastlog.Log from many goroutines while readers
tail it, and compares throughput and push latency with lock-based baselines.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	_ = v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newRunCmd(v))
	return rootCmd
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the producer/reader workload",
		Example: `  logbench run --producers 8 --items 100000 --impls log,mutex
  LOGBENCH_BENCH_READERS=4 logbench run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("config")
			if err := config.Init(v, file); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			logger.Info("starting",
				"producers", cfg.Bench.Producers,
				"items", cfg.Bench.Items,
				"readers", cfg.Bench.Readers,
				"capacity", cfg.Bench.Capacity(),
				"impls", cfg.Bench.Impls,
			)

			w := bench.Workload{
				Producers: cfg.Bench.Producers,
				Items:     cfg.Bench.Items,
				Readers:   cfg.Bench.Readers,
			}
			results, err := bench.Suite(cmd.Context(), cfg.Bench.Impls, w, cfg.Bench.Rounds, logger)
			if err != nil {
				logger.Error("benchmark failed", "error", err)
				return err
			}
			return bench.WriteReport(cmd.OutOrStdout(), results)
		},
	}

	flags := cmd.Flags()
	flags.Int("producers", 0, "concurrent producers")
	flags.Int("items", 0, "pushes per producer")
	flags.Int("readers", 0, "concurrent readers")
	flags.StringSlice("impls", nil, "implementations to run: "+strings.Join(config.Implementations, ", ")+" or all")
	flags.Int("rounds", 0, "rounds per implementation, the best one is reported")
	for _, name := range []string{"producers", "items", "readers", "impls", "rounds"} {
		_ = v.BindPFlag("bench."+name, flags.Lookup(name))
	}

	return cmd
}

