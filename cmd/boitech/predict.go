package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/prath-way/boitech/internal/cli"
	"github.com/prath-way/boitech/internal/common"
	"github.com/prath-way/boitech/internal/engine"
	"github.com/prath-way/boitech/internal/model"
	"github.com/prath-way/boitech/internal/pattern"
	"github.com/prath-way/boitech/internal/service"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Generate and inspect symptom predictions",
		Long: `Analyze your journal for recurring symptom patterns and turn them into
risk-scored predictions for the days ahead.`,
	}

	cmd.AddCommand(predictGenerateCmd())
	cmd.AddCommand(predictListCmd())
	cmd.AddCommand(predictTodayCmd())
	cmd.AddCommand(predictHighRiskCmd())

	return cmd
}

func predictGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Run a fresh prediction pass over the journal",
		Long: `Read the full journal, detect weekday and day-of-month patterns, enrich
them with the weather forecast when a location is configured, and replace the
stored prediction set with the result.`,
		RunE: runPredictGenerate,
	}
}

func runPredictGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load prediction settings: %w", err)
	}

	records, err := store.GetRecords(ctx, service.RecordFilter{})
	if err != nil {
		return fmt.Errorf("failed to load journal records: %w", err)
	}

	result, err := initEngine(store).Generate(ctx, records, settings)
	if err != nil {
		return fmt.Errorf("prediction generation failed: %w", err)
	}

	switch result.Reason {
	case engine.ReasonOK:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Generated %d prediction(s)", len(result.Predictions)))) //nolint:forbidigo // User-facing output
	case engine.ReasonNoPatterns:
		fmt.Println(cli.FormatInfo("No recurring patterns found in your journal.")) //nolint:forbidigo // User-facing output
		return nil
	case engine.ReasonInsufficientData:
		total, countErr := store.CountRecords(ctx)
		if countErr != nil {
			total = len(records)
		}
		return generateOutcome(result.Reason, total)
	default:
		return generateOutcome(result.Reason, len(records))
	}

	fmt.Println() //nolint:forbidigo // User-facing output
	printPredictions(result.Predictions)

	return nil
}

// generateOutcome maps a short-circuited generation reason onto a
// user-facing error.
func generateOutcome(reason string, journalSize int) error {
	switch reason {
	case engine.ReasonDisabled:
		return common.NewUserError("predictions are disabled; enable them with 'boitech settings set enabled true'", common.ErrPredictionDisabled)
	case engine.ReasonInsufficientData:
		return common.NewUserError(
			fmt.Sprintf("not enough journal entries yet (%d logged, %d needed)", journalSize, pattern.MinRecords),
			common.ErrInsufficientData)
	default:
		return fmt.Errorf("prediction generation did not complete: %s", reason)
	}
}

func predictListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active predictions",
		Long:  `Display all unexpired predictions, soonest and most confident first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredictQuery(cmd, "Active Predictions", func(s service.Storage) predictionQuery {
				return s.GetPredictions
			})
		},
	}
}

func predictTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show predictions landing today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredictQuery(cmd, "Today's Predictions", func(s service.Storage) predictionQuery {
				return s.GetPredictionsForToday
			})
		},
	}
}

func predictHighRiskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "high-risk",
		Short: "Show active high risk predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredictQuery(cmd, "High Risk Predictions", func(s service.Storage) predictionQuery {
				return s.GetHighRiskPredictions
			})
		},
	}
}

type predictionQuery func(ctx context.Context) ([]model.Prediction, error)

func runPredictQuery(cmd *cobra.Command, title string, pick func(service.Storage) predictionQuery) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	predictions, err := pick(store)(ctx)
	if err != nil {
		return fmt.Errorf("failed to load predictions: %w", err)
	}

	if len(predictions) == 0 {
		fmt.Println(cli.InfoStyle.Render("No predictions found. Use 'boitech predict generate' to create some.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle(cli.HealthIcon + "  " + title)) //nolint:forbidigo // User-facing output
	fmt.Println()                                               //nolint:forbidigo // User-facing output
	printPredictions(predictions)

	return nil
}

func printPredictions(predictions []model.Prediction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("Symptom"),
		headerStyle.Render("Date"),
		headerStyle.Render("In"),
		headerStyle.Render("Risk"),
		headerStyle.Render("Likelihood"),
		headerStyle.Render("Why"))
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 15),
		strings.Repeat("─", 10),
		strings.Repeat("─", 6),
		strings.Repeat("─", 6),
		strings.Repeat("─", 10),
		strings.Repeat("─", 30))

	for _, p := range predictions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\t%s\n",
			p.Symptom,
			p.PredictedDate.Format("2006-01-02"),
			formatDaysAhead(p.DaysAhead),
			cli.FormatRiskLevel(p.RiskLevel),
			p.Likelihood,
			formatTriggers(p.Triggers))
	}
}

func formatDaysAhead(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func formatTriggers(triggers []model.Trigger) string {
	if len(triggers) == 0 {
		return ""
	}
	factors := make([]string, 0, len(triggers))
	for _, t := range triggers {
		factors = append(factors, t.Factor)
	}
	return strings.Join(factors, ", ")
}

func closeStorage(store service.Storage) {
	if closeErr := store.Close(); closeErr != nil {
		slog.Error("failed to close storage", "error", closeErr)
	}
}
