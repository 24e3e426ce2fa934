package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/company-enricher/internal/enrich"
	"github.com/dtnitsch/company-enricher/internal/runs"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "company-enricher",
		Usage: "Fill in missing company descriptions from their websites",
		Commands: []*cli.Command{
			{
				Name:   "enrich",
				Usage:  "Enrich a companies CSV with website-derived descriptions",
				Action: enrich.EnrichAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Input CSV with Company and Website columns",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "companies_enriched.csv",
						Usage:   "Output CSV with descriptions and ledger columns",
					},
					&cli.StringFlag{
						Name:  "issues",
						Value: "companies_issues.csv",
						Usage: "CSV of rows that ended with an error (empty to skip)",
					},
					&cli.StringFlag{
						Name:  "business",
						Value: "companies_business.csv",
						Usage: "CSV with only Company, Website, Description (empty to skip)",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Value:   "config.yaml",
						Usage:   "Optional YAML config file",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: "enricher-cache",
						Usage: "Directory for cached HTML (empty to disable caching)",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Value: "24h",
						Usage: "Reuse cached HTML younger than this",
					},
					&cli.BoolFlag{
						Name:  "force-fetch",
						Usage: "Ignore cached HTML and refetch every site",
					},
					&cli.BoolFlag{
						Name:  "no-refine",
						Usage: "Skip LLM refinement even when ANTHROPIC_API_KEY is set",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Only log errors",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List past enrichment runs",
				Action: runs.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   20,
						Usage:   "Maximum number of runs to show",
					},
				},
			},
			{
				Name:      "run",
				Usage:     "Show per-row outcomes for a run (latest if no ID given)",
				ArgsUsage: "[run-id]",
				Action:    runs.RunAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
