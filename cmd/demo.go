package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/djrooz/btl-agency-scraper/internal/registry"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the pipeline over the built-in sample records",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		return executeRun(ctx, cmd, env, registry.DemoRecords(), "demo")
	},
}

func init() {
	demoCmd.Flags().StringVar(&runOutCSV, "csv", "", "write roster CSV to this path")
	demoCmd.Flags().StringVar(&runOutXLSX, "xlsx", "", "write roster XLSX to this path")
	demoCmd.Flags().BoolVar(&runSummary, "summary", true, "print a roster summary")
	demoCmd.Flags().BoolVar(&runNoStore, "no-store", false, "skip persisting the run")
	rootCmd.AddCommand(demoCmd)
}
