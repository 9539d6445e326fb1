package main

import (
	"flag"
	"log"
	"time"

	"jobsweep/internal/config"
	"jobsweep/internal/dataset"
	"jobsweep/internal/merge"
	"jobsweep/internal/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// masterNames lists the per-source master datasets feeding the merge.
var masterNames = []string{
	"BDJobs",
	"Noukri.com",
	"Rozee.pk",
	"JobStreet (SG)",
	"JobStreet (PH)",
	"JobStreet (ID)",
}

func main() {
	_ = godotenv.Load()

	outFlag := flag.String("out", "", "output path (default from config)")
	sinceFlag := flag.String("since", "", "drop rows posted before this date (YYYY-MM-DD)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	out := cfg.MergedFile
	if *outFlag != "" {
		out = *outFlag
	}

	masters := dataset.NewStore(cfg.DataDir, logger)

	var sources [][]models.Record
	for _, name := range masterNames {
		records, _, err := masters.Load(name)
		if err != nil {
			logger.Error("failed to load master dataset",
				zap.String("dataset", name),
				zap.Error(err))
			continue
		}
		logger.Info("loaded master dataset",
			zap.String("dataset", name),
			zap.Int("rows", len(records)))
		sources = append(sources, records)
	}

	merger := merge.NewMerger(logger)
	merged, stats := merger.Merge(sources...)

	if *sinceFlag != "" {
		cutoff, err := time.Parse("2006-01-02", *sinceFlag)
		if err != nil {
			logger.Fatal("invalid -since date", zap.String("since", *sinceFlag), zap.Error(err))
		}
		before := len(merged)
		merged = merge.FilterSince(merged, cutoff)
		logger.Info("applied posting date cutoff",
			zap.String("since", *sinceFlag),
			zap.Int("dropped", before-len(merged)))
	}

	if err := dataset.WriteTSV(out, dataset.MergedColumns, merged); err != nil {
		logger.Fatal("failed to write merged dataset", zap.Error(err))
	}

	logger.Info("merged dataset written",
		zap.String("path", out),
		zap.Int("raw_rows", stats.RawRows),
		zap.Int("after_dedup", stats.AfterDedup),
		zap.Int("dates_parsed", stats.DatesParsed),
		zap.Int("salaries_parsed", stats.SalariesParsed))
}
