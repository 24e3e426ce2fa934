package enrich

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/company-enricher/models"
	"github.com/dtnitsch/company-enricher/pkg/dataset"
	"github.com/dtnitsch/company-enricher/pkg/extract"
	"github.com/dtnitsch/company-enricher/pkg/fetcher"
	"github.com/dtnitsch/company-enricher/pkg/history"
	"github.com/dtnitsch/company-enricher/pkg/htmlcache"
	"github.com/dtnitsch/company-enricher/pkg/pipeline"
	"github.com/dtnitsch/company-enricher/pkg/refine"
	"github.com/urfave/cli/v2"
)

// cachedFetcher serves HTML from the on-disk cache and falls through to
// the network on a miss. Cache write failures are logged, never fatal.
type cachedFetcher struct {
	cache  *htmlcache.Cache
	next   pipeline.Fetcher
	logger *slog.Logger
}

func (cf *cachedFetcher) Get(rawURL string) ([]byte, error) {
	if html, ok := cf.cache.Get(rawURL); ok {
		cf.logger.Info("Using cached HTML", "url", rawURL)
		return html, nil
	}
	html, err := cf.next.Get(rawURL)
	if err != nil {
		return nil, err
	}
	if err := cf.cache.Set(rawURL, html); err != nil {
		cf.logger.Warn("Failed to cache HTML", "url", rawURL, "error", err)
	}
	return html, nil
}

func EnrichAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	inputPath := c.String("input")
	if inputPath == "" {
		return fmt.Errorf("no input file provided via --input flag")
	}
	table, err := dataset.ReadCSVFile(inputPath)
	if err != nil {
		logger.Error("failed to read input CSV", "path", inputPath, "error", err)
		os.Exit(2)
	}
	if err := table.RequireColumns([]string{dataset.ColCompany, dataset.ColWebsite}); err != nil {
		logger.Error("input CSV is missing required columns", "path", inputPath, "error", err)
		os.Exit(2)
	}

	var refiner refine.Client = refine.Disabled{}
	if !c.Bool("no-refine") {
		refiner = refine.NewFromEnv(cfg.Model)
	}
	if !refiner.Enabled() {
		logger.Info("Refinement disabled; descriptions come straight from the scraper")
	}

	var f pipeline.Fetcher = fetcher.NewFetcher(cfg.FetchTimeout, cfg.UserAgent)
	if dir := c.String("cache-dir"); dir != "" {
		var maxAge time.Duration
		if !c.Bool("force-fetch") {
			maxAge, err = time.ParseDuration(c.String("max-age"))
			if err != nil {
				logger.Error("invalid max-age duration", "error", err)
				os.Exit(2)
			}
		}
		cache, err := htmlcache.New(dir, maxAge)
		if err != nil {
			logger.Error("failed to initialize HTML cache", "error", err)
			os.Exit(2)
		}
		f = &cachedFetcher{cache: cache, next: f, logger: logger}
	}

	ex := extract.New(cfg.MaxText)
	proc := pipeline.New(cfg, f, ex, refiner, logger)

	// Run history is best-effort: a broken database never blocks enrichment.
	var runID int64
	database, err := history.Open()
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		database = nil
	} else {
		defer database.Close()
		runID, err = database.InsertRun(table.Len(), refiner.Enabled(), cfg.Model)
		if err != nil {
			logger.Warn("failed to create run record", "error", err)
		} else {
			proc.AttachHistory(database, runID)
		}
	}

	logger.Info("Starting enrichment", "input", inputPath, "rows", table.Len(),
		"refine", refiner.Enabled(), "model", cfg.Model)

	stats := proc.Run(c.Context, table)

	if database != nil && runID != 0 {
		if err := database.UpdateRunStats(runID, stats.Success, stats.Issues()); err != nil {
			logger.Warn("failed to update run stats", "error", err)
		}
	}

	outputPath := c.String("output")
	if err := table.WriteCSVFile(outputPath); err != nil {
		logger.Error("failed to write output CSV", "path", outputPath, "error", err)
		os.Exit(2)
	}

	issuesPath := c.String("issues")
	if issuesPath != "" {
		if err := table.Issues().WriteCSVFile(issuesPath); err != nil {
			logger.Error("failed to write issues CSV", "path", issuesPath, "error", err)
			os.Exit(2)
		}
	}

	businessPath := c.String("business")
	if businessPath != "" {
		if err := table.Business().WriteCSVFile(businessPath); err != nil {
			logger.Error("failed to write business CSV", "path", businessPath, "error", err)
			os.Exit(2)
		}
	}

	elapsed := time.Since(startTime).Round(time.Second)
	fmt.Printf("\nEnriched %d rows in %s\n", stats.Total, elapsed)
	fmt.Printf("  success: %d\n", stats.Success)
	fmt.Printf("  skipped: %d\n", stats.Skipped)
	fmt.Printf("  empty:   %d\n", stats.Empty)
	fmt.Printf("  failed:  %d\n", stats.Failed)
	fmt.Printf("\nOutput: %s\n", outputPath)
	if issuesPath != "" {
		fmt.Printf("Issues: %s\n", issuesPath)
	}
	if businessPath != "" {
		fmt.Printf("Business view: %s\n", businessPath)
	}
	if runID != 0 {
		fmt.Printf("\nTip: Use 'company-enricher runs' to see run history, 'company-enricher run %d' for details\n", runID)
	}

	return nil
}
