package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"jobsweep/internal/config"
	"jobsweep/internal/dataset"
	"jobsweep/internal/events"
	"jobsweep/internal/run"
	"jobsweep/internal/scrape"
	"jobsweep/internal/scrape/bdjobs"
	"jobsweep/internal/scrape/jobstreet"
	"jobsweep/internal/scrape/naukri"
	"jobsweep/internal/scrape/rozee"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func allScrapers(cfg *config.Config, logger *zap.Logger) []scrape.Scraper {
	return []scrape.Scraper{
		bdjobs.New(cfg, logger),
		naukri.New(cfg, logger),
		rozee.New(cfg, logger),
		jobstreet.New(cfg, logger, jobstreet.Singapore),
		jobstreet.New(cfg, logger, jobstreet.Philippines),
		jobstreet.New(cfg, logger, jobstreet.Indonesia),
	}
}

// filterScrapers keeps the scrapers whose name or source matches one of the
// comma-separated selectors, case-insensitively.
func filterScrapers(scrapers []scrape.Scraper, selector string) []scrape.Scraper {
	if selector == "" {
		return scrapers
	}

	wanted := map[string]bool{}
	for _, part := range strings.Split(selector, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			wanted[part] = true
		}
	}

	var out []scrape.Scraper
	for _, s := range scrapers {
		if wanted[strings.ToLower(s.Name())] || wanted[strings.ToLower(s.Source())] {
			out = append(out, s)
		}
	}
	return out
}

func main() {
	_ = godotenv.Load()

	var (
		sourceFlag  = flag.String("source", "", "comma-separated scrapers to run (default all)")
		publishFlag = flag.Bool("publish", true, "publish scraped records to the queue")
	)
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

	scrapers := filterScrapers(allScrapers(cfg, logger), *sourceFlag)
	if len(scrapers) == 0 {
		logger.Fatal("no scrapers matched", zap.String("source", *sourceFlag))
	}

	var publisher events.Publisher
	if *publishFlag {
		publisher, err = events.NewPublisher(logger, cfg)
		if err != nil {
			logger.Warn("queue unavailable, records will only reach master files", zap.Error(err))
		} else {
			defer publisher.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logger.Info("shutdown requested")
		cancel()
	}()

	runner := run.NewRunner(
		scrapers,
		dataset.NewStore(cfg.DataDir, logger),
		run.NewSummaryStore(cfg.SummaryFile),
		publisher,
		logger,
	)

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatal("scrape run failed", zap.Error(err))
	}

	logger.Info("scrape run finished")
}
