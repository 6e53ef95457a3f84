package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/enrich"
	"github.com/djrooz/btl-agency-scraper/internal/export"
	"github.com/djrooz/btl-agency-scraper/internal/fetcher"
	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/pipeline"
)

var (
	runRegistryPath string
	runDumpURL      string
	runOutCSV       string
	runOutXLSX      string
	runSummary      bool
	runNoStore      bool
)

var runCmd = &cobra.Command{
	Use:   "run [dump files...]",
	Short: "Clean and deduplicate collected company dumps",
	Long:  "Reads collector dumps (JSON, CSV or XLSX), optionally enriches them from a registry dump, runs the cleaning pipeline and writes the canonical roster.",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if len(args) == 0 && runDumpURL == "" {
			return eris.New("no input: pass dump files or --url")
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var raws []model.RawRecord
		for _, path := range args {
			records, err := readDumpFile(ctx, path)
			if err != nil {
				return err
			}
			zap.L().Info("loaded dump",
				zap.String("path", path),
				zap.Int("records", len(records)),
			)
			raws = append(raws, records...)
		}

		if runDumpURL != "" {
			hf := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
				UserAgent:    cfg.Fetch.UserAgent,
				Timeout:      time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
				MaxRetries:   cfg.Fetch.MaxRetries,
				RateLimiters: fetcher.DefaultRateLimiters(),
			})
			records, err := hf.DownloadJSONRecords(ctx, runDumpURL)
			if err != nil {
				return err
			}
			zap.L().Info("downloaded dump",
				zap.String("url", runDumpURL),
				zap.Int("records", len(records)),
			)
			raws = append(raws, records...)
		}

		if runRegistryPath != "" {
			registryDump, err := readDumpFile(ctx, runRegistryPath)
			if err != nil {
				return err
			}
			enrich.MergeRegistryRecords(raws, registryDump)
		}

		source := strings.Join(args, ",")
		if source == "" {
			source = runDumpURL
		}
		return executeRun(ctx, cmd, env, raws, source)
	},
}

// executeRun drives one pipeline run end to end: persistence, export and
// the optional summary. Shared with the demo command.
func executeRun(ctx context.Context, cmd *cobra.Command, env *pipelineEnv, raws []model.RawRecord, source string) error {
	var runID string
	if !runNoStore {
		run, err := env.Store.CreateRun(ctx, source)
		if err != nil {
			return err
		}
		runID = run.ID
	}

	result, err := env.Pipeline.Run(ctx, raws)
	if err != nil {
		if runID != "" {
			if ferr := env.Store.FailRun(ctx, runID); ferr != nil {
				zap.L().Error("failed to mark run failed", zap.Error(ferr))
			}
		}
		return err
	}

	if runID != "" {
		if err := env.Store.SaveCompanies(ctx, runID, result.Records); err != nil {
			return err
		}
		if err := env.Store.CompleteRun(ctx, runID, result.Stats); err != nil {
			return err
		}
	}

	if runOutCSV != "" {
		if err := export.WriteCSV(result.Records, runOutCSV); err != nil {
			return err
		}
	}
	if runOutXLSX != "" {
		if err := export.WriteXLSX(result.Records, runOutXLSX); err != nil {
			return err
		}
	}

	if runSummary {
		cmd.Println(pipeline.FormatSummary(result.Records))
	}

	cmd.Println(fmt.Sprintf("processed %d records: kept %d, removed %d (%.2f%%)",
		result.Stats.InputCount, result.Stats.OutputCount,
		result.Stats.RemovedCount, result.Stats.RemovedRatePercent))
	return nil
}

// readDumpFile picks the decoder by file extension.
func readDumpFile(ctx context.Context, path string) ([]model.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return fetcher.ReadJSONFile(ctx, path)
	case ".csv":
		return fetcher.ReadCSVFile(ctx, path, fetcher.CSVOptions{TrimSpace: true})
	case ".xlsx":
		return fetcher.ReadXLSXFile(path, fetcher.XLSXOptions{})
	default:
		return nil, eris.Errorf("unsupported dump format: %s", path)
	}
}

func init() {
	runCmd.Flags().StringVar(&runRegistryPath, "registry", "", "registry dump for tax-id enrichment (JSON, CSV or XLSX)")
	runCmd.Flags().StringVar(&runDumpURL, "url", "", "download a JSON dump over HTTP")
	runCmd.Flags().StringVar(&runOutCSV, "csv", "", "write roster CSV to this path")
	runCmd.Flags().StringVar(&runOutXLSX, "xlsx", "", "write roster XLSX to this path")
	runCmd.Flags().BoolVar(&runSummary, "summary", false, "print a roster summary")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "skip persisting the run")
	rootCmd.AddCommand(runCmd)
}
