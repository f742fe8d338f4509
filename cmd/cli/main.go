package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"hormoiq/adapters/excel"
	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/internal/config"
	"hormoiq/internal/container"
	"hormoiq/internal/report"
	"hormoiq/internal/testkit"

	"github.com/spf13/cobra"
)

// offlineUser owns every history loaded by the CLI
const offlineUser = core.UserID("00000000-0000-4000-8000-000000000001")

// sessionFlags are shared by every command that scores a history file
type sessionFlags struct {
	file           string
	age            int
	gender         string
	postmenopausal bool
	now            string
	asJSON         bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "History workbook (.xlsx) or CSV file")
	cmd.Flags().IntVar(&f.age, "age", 0, "Chronological age (18-100)")
	cmd.Flags().StringVar(&f.gender, "gender", "", "male or female")
	cmd.Flags().BoolVar(&f.postmenopausal, "postmenopausal", false, "Use postmenopausal reference ranges")
	cmd.Flags().StringVar(&f.now, "now", "", "Evaluation instant (RFC3339), defaults to the current time")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the raw JSON result")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("gender")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hormoiq-cli",
		Short: "HormoIQ CLI for scoring hormone histories without a database",
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newBioAgeCmd(),
		newImpactCmd(),
		newStreakCmd(),
		newReportCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openSession imports the history file into an offline container
func openSession(ctx context.Context, f *sessionFlags) (*container.Container, error) {
	now := time.Now().UTC()
	if f.now != "" {
		parsed, err := time.Parse(time.RFC3339, f.now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now format (use RFC3339): %w", err)
		}
		now = parsed.UTC()
	}

	cfg, err := config.LoadOffline()
	if err != nil {
		return nil, err
	}
	c, err := container.New(cfg, nil)
	if err != nil {
		return nil, err
	}
	if err := c.InitOffline(testkit.NewTestKit(now)); err != nil {
		return nil, err
	}

	profile := hormone.UserProfile{
		Age:            f.age,
		Gender:         hormone.Gender(strings.ToLower(f.gender)),
		Postmenopausal: f.postmenopausal,
	}
	if err := c.ScoreService.UpdateProfile(ctx, offlineUser, profile); err != nil {
		return nil, err
	}

	res, err := c.Importer.ImportFile(f.file, offlineUser)
	if err != nil {
		return nil, err
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped row %d: %s\n", skipped.Row, skipped.Reason)
	}
	if _, err := c.ScoreService.ImportMeasurements(ctx, offlineUser, res.Measurements); err != nil {
		return nil, err
	}
	return c, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newScoreCmd() *cobra.Command {
	var f sessionFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the ReadyScore for the latest test in a history",
		Long: `Compute the ReadyScore with its physical and mental breakdown.

Example: hormoiq-cli score --file history.xlsx --age 34 --gender male`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openSession(cmd.Context(), &f)
			if err != nil {
				return err
			}
			rep, err := c.ScoreService.Readiness(cmd.Context(), offlineUser)
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(rep)
			}

			fmt.Printf("\n=== READYSCORE ===\n")
			if rep.Ready.Score != nil {
				fmt.Printf("Score: %d (%s)\n", *rep.Ready.Score, rep.Ready.Message)
			} else {
				fmt.Printf("Score: unavailable (%s)\n", rep.Ready.Message)
			}
			fmt.Printf("Confidence: %d%% from %d tests\n", rep.Ready.Confidence, rep.Ready.TestCount)
			fmt.Printf("Advice: %s\n", rep.Ready.Advice)
			for _, cat := range []struct {
				name  string
				score *int
				title string
			}{
				{"Physical", rep.Physical.Score, rep.Physical.Title},
				{"Mental", rep.Mental.Score, rep.Mental.Title},
			} {
				if cat.score == nil {
					fmt.Printf("%s: stale\n", cat.name)
					continue
				}
				fmt.Printf("%s: %d (%s)\n", cat.name, *cat.score, cat.title)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newBioAgeCmd() *cobra.Command {
	var f sessionFlags
	cmd := &cobra.Command{
		Use:   "bioage",
		Short: "Estimate biological age from a history",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openSession(cmd.Context(), &f)
			if err != nil {
				return err
			}
			res, err := c.ScoreService.BioAge(cmd.Context(), offlineUser)
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(res)
			}

			fmt.Printf("\n=== BIOAGE ===\n")
			if res.Locked {
				fmt.Printf("Locked: %s\n", res.Message)
				fmt.Printf("Tests needed: %d, weeks needed: %.1f\n", res.TestsNeeded, res.WeeksNeeded)
				return nil
			}
			fmt.Printf("Biological age: %d (chronological %d, delta %+d)\n", res.BioAge, res.ChronologicalAge, res.Delta)
			if res.Confidence != nil {
				fmt.Printf("Confidence: %s\n", res.Confidence.Level)
			}
			if res.Percentile != nil {
				fmt.Printf("Percentile: %s\n", res.Percentile.Message)
			}
			fmt.Printf("Based on %d tests over %.1f weeks\n", res.TestCount, res.WeeksCovered)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newImpactCmd() *cobra.Command {
	var f sessionFlags
	var hormones string
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Analyze how each logged intervention moved your hormones",
		Long: `Compare test values with and without each intervention using Welch's t-test.

Example: hormoiq-cli impact --file history.csv --hormones cortisol,testosterone`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []hormone.Hormone
			if strings.TrimSpace(hormones) != "" {
				for _, part := range strings.Split(hormones, ",") {
					h, err := hormone.ParseHormone(part)
					if err != nil {
						return err
					}
					selected = append(selected, h)
				}
			}

			c, err := openSession(cmd.Context(), &f)
			if err != nil {
				return err
			}
			rep, err := c.ScoreService.ImpactReport(cmd.Context(), offlineUser, selected)
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(rep)
			}

			fmt.Printf("\n=== INTERVENTION IMPACT ===\n")
			fmt.Printf("Analyzed: %d, not significant: %d\n", rep.TotalAnalyzed, rep.NotSignificant)
			for _, a := range rep.Keep {
				fmt.Printf("KEEP %s on %s: %+.1f%% (p=%.3f)\n", a.Intervention, a.Hormone, a.PercentChange, a.PValue)
			}
			for _, a := range rep.Stop {
				fmt.Printf("STOP %s on %s: %+.1f%% (p=%.3f)\n", a.Intervention, a.Hormone, a.PercentChange, a.PValue)
			}
			for _, a := range rep.Insufficient {
				fmt.Printf("NEED DATA %s on %s: %d more tests\n", a.Intervention, a.Hormone, a.Needed)
			}
			if rep.PotentialSavings > 0 {
				fmt.Printf("Potential savings: $%.0f/year\n", rep.PotentialSavings)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&hormones, "hormones", "", "Comma separated hormones to analyze (default all)")
	return cmd
}

func newStreakCmd() *cobra.Command {
	var f sessionFlags
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the current testing streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openSession(cmd.Context(), &f)
			if err != nil {
				return err
			}
			res, err := c.ScoreService.Streak(cmd.Context(), offlineUser)
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(res)
			}
			fmt.Printf("Streak: %d (%s)\n", res.Streak, res.Display.Message)
			fmt.Printf("Days since last test: %d\n", res.DaysSinceLastTest)
			fmt.Printf("Better than %d%% of users\n", res.Percentile)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newReportCmd() *cobra.Command {
	var f sessionFlags
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a markdown summary of every score",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openSession(cmd.Context(), &f)
			if err != nil {
				return err
			}
			sum, err := c.ScoreService.Summary(cmd.Context(), offlineUser)
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(sum)
			}
			md := report.Markdown(sum)
			if asHTML {
				md = report.HTML(md)
			}
			_, err = os.Stdout.Write(md)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of markdown")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var (
		out    string
		tests  int
		gender string
		seed   int64
		start  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic history workbook",
		Long: `Generate a reproducible synthetic history for demos and manual testing.

Example: hormoiq-cli generate --out history.xlsx --tests 30 --gender female --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := testkit.DefaultHistoryConfig()
			cfg.Tests = tests
			cfg.Seed = seed
			g, err := hormone.ParseGender(gender)
			if err != nil {
				return err
			}
			cfg.Gender = g
			if start != "" {
				parsed, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid --start format (use 2006-01-02): %w", err)
				}
				cfg.Start = parsed.Add(7 * time.Hour)
			}

			history := testkit.NewHistoryGenerator(cfg).Generate(offlineUser)
			file, err := os.Create(out)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := excel.WriteWorkbook(file, history); err != nil {
				return err
			}
			fmt.Printf("Wrote %d tests to %s\n", len(history), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "history.xlsx", "Output workbook")
	cmd.Flags().IntVar(&tests, "tests", 15, "Number of tests")
	cmd.Flags().StringVar(&gender, "gender", "male", "male or female")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic generation")
	cmd.Flags().StringVar(&start, "start", "", "Date of the first test (2006-01-02)")
	return cmd
}
