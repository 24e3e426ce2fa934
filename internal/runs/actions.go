package runs

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/company-enricher/pkg/history"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-8s %-8s %-8s %-8s %-30s\n",
		"ID", "Created", "Rows", "Success", "Issues", "Refine", "Model")
	fmt.Println(strings.Repeat("-", 95))

	for _, r := range runs {
		refined := "no"
		if r.RefineEnabled {
			refined = "yes"
		}
		fmt.Printf("%-6d %-20s %-8d %-8d %-8d %-8s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.RowCount,
			r.SuccessCount,
			r.IssueCount,
			refined,
			r.Model,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'company-enricher run <id>' to see per-row outcomes\n")

	return nil
}

// RunAction shows per-row outcomes for a specific run.
func RunAction(c *cli.Context) error {
	database, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer database.Close()

	runID, err := getRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := database.GetRunRows(runID)
	if err != nil {
		return fmt.Errorf("failed to get run rows: %w", err)
	}

	refined := "no"
	if run.RefineEnabled {
		refined = "yes"
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Rows:     %d total (%d success, %d issues)\n",
		run.RowCount, run.SuccessCount, run.IssueCount)
	fmt.Printf("Refine:   %s\n", refined)
	fmt.Printf("Model:    %s\n", run.Model)

	if len(rows) > 0 {
		fmt.Printf("\nRows (%d):\n", len(rows))
		fmt.Println(strings.Repeat("-", 60))
		for _, r := range rows {
			name := r.Company
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("%3d. [%s] %s\n", r.RowIndex+1, r.Status, name)
			if r.Website != "" {
				fmt.Printf("     %s\n", r.Website)
			}
			if r.Error != "" {
				fmt.Printf("     Error: %s\n", r.Error)
			}
			if r.Language != "" {
				fmt.Printf("     Language: %s (%.2f)\n", r.Language, r.LanguageConfidence)
			}
		}
	}

	return nil
}

// getRunIDOrLatest returns the run ID from args, or the latest run if not provided.
func getRunIDOrLatest(c *cli.Context, database *history.DB) (int64, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return 0, fmt.Errorf("no runs found. Run 'company-enricher enrich --input companies.csv' first")
		}
		return runs[0].RunID, nil
	}

	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}
