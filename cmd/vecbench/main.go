package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/vector/internal/config"
	"github.com/rawbytedev/vector/internal/scenario"
)

var (
	configFile string
	logLevel   string
	memProfile string
	size       int
	seed       uint64
	reserve    int
	pushes     int
	outFile    string

	cfg *config.Config
	log *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering the flags resets the
// package-level flag variables to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "vecbench",
		Short:             "exercise the vector container",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer log.Sync()
			return writeMemProfile()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&memProfile, "memprofile", "", "write a heap profile on exit")

	sortCmd := &cobra.Command{
		Use:   "sort",
		Short: "fill a vector with random values and sort it",
		RunE:  runSort,
	}
	sortCmd.Flags().IntVar(&size, "size", 0, "number of elements (overrides config)")
	sortCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (overrides config)")

	growCmd := &cobra.Command{
		Use:   "grow",
		Short: "trace capacity changes while pushing",
		RunE:  runGrow,
	}
	growCmd.Flags().IntVar(&reserve, "reserve", -1, "slots to reserve first (overrides config)")
	growCmd.Flags().IntVar(&pushes, "pushes", -1, "number of pushes (overrides config)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write a binary snapshot and verify it reads back",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&outFile, "out", "vector.snap", "snapshot file")
	snapshotCmd.Flags().IntVar(&size, "size", 0, "number of elements (overrides config)")
	snapshotCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (overrides config)")

	rootCmd.AddCommand(sortCmd, growCmd, snapshotCmd)
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if size > 0 {
		cfg.Sort.Size = size
	}
	if seed != 0 {
		cfg.Sort.Seed = seed
	}
	if reserve >= 0 {
		cfg.Grow.Reserve = reserve
	}
	if pushes >= 0 {
		cfg.Grow.Pushes = pushes
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	l, err := cfg.Log.Logger()
	if err != nil {
		return err
	}
	log = l
	return nil
}

func runSort(cmd *cobra.Command, args []string) error {
	res := scenario.RunSort(cfg.Sort, scenario.NewRand(cfg.Sort.Seed), log)
	fmt.Fprintf(cmd.OutOrStdout(), "size=%d sorted_before=%t sorted_after=%t elapsed=%s\n",
		res.Size, res.SortedBefore, res.SortedAfter, res.Elapsed)
	if !res.SortedAfter {
		return fmt.Errorf("vector not sorted after sort")
	}
	return nil
}

func runGrow(cmd *cobra.Command, args []string) error {
	steps := scenario.RunGrow(cfg.Grow, log)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEN\tCAP")
	for _, s := range steps {
		fmt.Fprintf(w, "%d\t%d\n", s.Len, s.Cap)
	}
	return w.Flush()
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if err := scenario.RunSnapshot(outFile, cfg.Sort, scenario.NewRand(cfg.Sort.Seed), log); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s ok\n", outFile)
	return nil
}

func writeMemProfile() error {
	if memProfile == "" {
		return nil
	}
	f, err := os.Create(memProfile)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
