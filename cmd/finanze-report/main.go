// Command finanze-report writes the monthly PDF report and the full CSV
// export to disk without going through the web UI.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"

	"finanze/internal/backend"
	"finanze/internal/cli"
	"finanze/internal/core"
	"finanze/internal/report"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	now := time.Now()
	year := flag.Int("year", now.Year(), "report year")
	month := flag.Int("month", int(now.Month()), "report month (1-12)")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	key := core.MonthKey{Year: *year, Month: time.Month(*month)}
	if !key.Valid() {
		logger.Error("Invalid month requested", "year", *year, "month", *month)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.Create(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		JSONDataFile: cfg.JSONDataFile,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	ctx := context.Background()
	txs, err := result.Service.Snapshot(ctx)
	if err != nil {
		logger.Error("Failed to load transactions", "error", err)
		os.Exit(1)
	}

	csvData, err := report.CSV(txs)
	if err != nil {
		logger.Error("CSV export failed", "error", err)
		os.Exit(1)
	}
	csvPath := filepath.Join(*outDir, report.CSVFileName)
	if err := os.WriteFile(csvPath, csvData, 0644); err != nil {
		logger.Error("Failed to write CSV", "error", err, "path", csvPath)
		os.Exit(1)
	}
	logger.Info("CSV written", "path", csvPath, "transactions", len(txs))

	doc, err := report.Monthly(txs, key)
	if errors.Is(err, report.ErrNoData) {
		logger.Info("No transactions for the requested month, skipping PDF",
			"year", key.Year, "month", int(key.Month))
		return
	}
	if err != nil {
		logger.Error("Report generation failed", "error", err)
		os.Exit(1)
	}
	pdfPath := filepath.Join(*outDir, report.FileName(key))
	if err := os.WriteFile(pdfPath, doc, 0644); err != nil {
		logger.Error("Failed to write PDF", "error", err, "path", pdfPath)
		os.Exit(1)
	}
	logger.Info("Report written", "path", pdfPath, "month", key.Label())
}
