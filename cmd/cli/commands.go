package main

import (
	"fmt"
	"os"
	"strings"

	"amphorank/adapters/excel"
	"amphorank/adapters/rng"
	"amphorank/app"
	"amphorank/internal"
	"amphorank/internal/config"
	"amphorank/ports"

	"github.com/spf13/cobra"
)

// inputFlags are shared by every command that reads the test sheets
type inputFlags struct {
	stack    string
	holdDrop string
	sheet    string
	config   string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.stack, "stack", os.Getenv("STACK_FILE"), "Stacking test results (.csv or .xlsx)")
	cmd.Flags().StringVar(&f.holdDrop, "hold-drop", os.Getenv("HOLD_DROP_FILE"), "Hold and drop test results (.csv or .xlsx)")
	cmd.Flags().StringVar(&f.sheet, "sheet", os.Getenv("XLSX_SHEET"), "Sheet to read from .xlsx files (default: first sheet)")
	cmd.Flags().StringVar(&f.config, "config", os.Getenv("ENGINE_CONFIG"), "Engine configuration YAML")
}

func (f *inputFlags) service(seed int64) (*app.RankingService, error) {
	engine, err := config.LoadEngineConfig(f.config)
	if err != nil {
		return nil, err
	}

	logger := internal.NewLogger(internal.LogLevelWarn)
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		logger = internal.NewLogger(internal.ParseLogLevel(lvl))
	}

	return app.NewRankingService(app.ServiceConfig{
		Engine:       engine,
		StackFile:    f.stack,
		HoldDropFile: f.holdDrop,
		DefaultSeed:  seed,
	}, app.Dependencies{
		Source: excel.NewLoader(f.sheet, logger),
		NewRNG: func(seed int64) ports.RNGPort { return rng.NewSeeded(seed) },
		Logger: logger,
	})
}

func newRankCmd() *cobra.Command {
	var in inputFlags
	var selection []string
	var seed int64
	var format string

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the selected specimens",
		Long: `Rank specimens by TOPSIS over stacking tensile stress, hold tensile stress,
drop compressive stress and volume efficiency. Specimens without valid data
for all four protocols are listed as excluded.

Example: amphorank rank --stack stack.xlsx --hold-drop hold_drop.xlsx --select Dressel_20,Greco --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (use table or json)", format)
			}

			svc, err := in.service(seed)
			if err != nil {
				return err
			}
			report, err := svc.Rank(cmd.Context(), app.RankRequest{Selection: selection})
			if err != nil {
				return err
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return writeReportTable(cmd.OutOrStdout(), report)
		},
	}

	in.register(cmd)
	cmd.Flags().StringSliceVar(&selection, "select", nil, "Specimens to rank (default: all)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the bootstrap intervals")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}

func newSpecimensCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "specimens",
		Short: "List the specimen identities found in the input files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := in.service(0)
			if err != nil {
				return err
			}
			ids, err := svc.Specimens(cmd.Context(), "", "")
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	in.register(cmd)
	return cmd
}

func newConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective engine configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadEngineConfig(path)
			if err != nil {
				return err
			}
			data, err := config.MarshalEngineConfig(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&path, "config", os.Getenv("ENGINE_CONFIG"), "Engine configuration YAML")
	return cmd
}
