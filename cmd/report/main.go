package main

import (
	"flag"
	"log"
	"time"

	"jobsweep/internal/config"
	"jobsweep/internal/report"
	"jobsweep/internal/run"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	keepFlag := flag.Bool("keep", false, "keep the summary file after sending")
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

	summaries, err := run.NewSummaryStore(cfg.SummaryFile).Load()
	if err != nil {
		logger.Fatal("failed to load run summaries", zap.Error(err))
	}
	if len(summaries) == 0 {
		logger.Warn("no run summaries found, nothing to report",
			zap.String("path", cfg.SummaryFile))
		return
	}

	digest := report.Build(summaries)

	var delivered bool

	email := report.NewEmailSender(cfg)
	if email.Configured() {
		body, err := report.RenderHTML(digest, time.Now())
		if err != nil {
			logger.Fatal("failed to render report", zap.Error(err))
		}
		if err := email.Send(digest.Subject(), body); err != nil {
			logger.Error("failed to send report email", zap.Error(err))
		} else {
			logger.Info("report email sent", zap.Int("added", digest.GrandAdded))
			delivered = true
		}
	}

	telegram := report.NewTelegramSender(cfg)
	if telegram.Configured() {
		if err := telegram.Send(digest); err != nil {
			logger.Error("failed to send telegram report", zap.Error(err))
		} else {
			logger.Info("telegram report sent")
			delivered = true
		}
	}

	if !delivered {
		logger.Warn("no report channel configured or delivery failed, keeping summaries")
		return
	}

	if !*keepFlag {
		if err := run.NewSummaryStore(cfg.SummaryFile).Clear(); err != nil {
			logger.Error("failed to clear summary file", zap.Error(err))
		}
	}
}
