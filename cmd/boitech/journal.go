package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/prath-way/boitech/internal/cli"
	"github.com/prath-way/boitech/internal/model"
	"github.com/prath-way/boitech/internal/service"
)

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Record and browse health journal entries",
	}

	cmd.AddCommand(journalAddCmd())
	cmd.AddCommand(journalImportCmd())
	cmd.AddCommand(journalListCmd())

	return cmd
}

func journalAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one journal entry",
		Long: `Record symptoms for a single day. Adding a second entry for the same
date replaces the first.`,
		RunE: runJournalAdd,
	}

	cmd.Flags().String("date", "", "entry date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringSlice("symptoms", nil, "comma-separated symptom labels")
	cmd.Flags().String("notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("symptoms")

	return cmd
}

func runJournalAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dateStr, _ := cmd.Flags().GetString("date")
	symptoms, _ := cmd.Flags().GetStringSlice("symptoms")
	notes, _ := cmd.Flags().GetString("notes")

	record := model.JournalRecord{
		ID:       uuid.NewString(),
		Date:     model.DateOnly(time.Now()),
		Notes:    notes,
		Symptoms: symptoms,
	}
	if dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		record.Date = model.DateOnly(parsed)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid journal entry: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if err := store.SaveRecords(ctx, []model.JournalRecord{record}); err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged %s for %s", strings.Join(symptoms, ", "), record.Date.Format("2006-01-02")))) //nolint:forbidigo // User-facing output

	return nil
}

// importedRecord is the JSON shape accepted by journal import.
type importedRecord struct {
	Date     string   `json:"date"`
	Notes    string   `json:"notes,omitempty"`
	Symptoms []string `json:"symptoms"`
}

func journalImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import journal entries from a JSON file",
		Long: `Import an array of journal entries exported from another tracker.

Each entry needs a "date" (YYYY-MM-DD) and a "symptoms" array; "notes" is
optional. Entries that collide on a date replace what is already stored.`,
		Args: cobra.ExactArgs(1),
		RunE: runJournalImport,
	}
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var imported []importedRecord
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}
	if len(imported) == 0 {
		fmt.Println(cli.FormatWarning("Import file contains no entries.")) //nolint:forbidigo // User-facing output
		return nil
	}

	records := make([]model.JournalRecord, 0, len(imported))
	bar := progressbar.NewOptions(len(imported),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing journal entries..."),
	)

	skipped := 0
	for _, entry := range imported {
		_ = bar.Add(1)

		date, err := parseDate(entry.Date)
		if err != nil {
			skipped++
			continue
		}
		record := model.JournalRecord{
			ID:       uuid.NewString(),
			Date:     model.DateOnly(date),
			Notes:    entry.Notes,
			Symptoms: entry.Symptoms,
		}
		if err := record.Validate(); err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	if skipped > 0 {
		slog.Warn("Skipped malformed journal entries", "skipped", skipped, "total", len(imported))
	}
	if len(records) == 0 {
		fmt.Println()                                                              //nolint:forbidigo // User-facing output
		fmt.Println(cli.FormatWarning("No valid entries found in the import file.")) //nolint:forbidigo // User-facing output
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if err := store.SaveRecords(ctx, records); err != nil {
		return fmt.Errorf("failed to save imported entries: %w", err)
	}

	fmt.Println()                                                                          //nolint:forbidigo // User-facing output
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d journal entries", len(records)))) //nolint:forbidigo // User-facing output

	return nil
}

func journalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE:  runJournalList,
	}

	cmd.Flags().String("symptom", "", "only show entries containing this symptom")
	cmd.Flags().String("since", "", "only show entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 30, "maximum entries to show (0 for all)")

	return cmd
}

func runJournalList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	symptom, _ := cmd.Flags().GetString("symptom")
	since, _ := cmd.Flags().GetString("since")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := service.RecordFilter{Symptom: symptom, Limit: limit}
	if since != "" {
		parsed, err := parseDate(since)
		if err != nil {
			return err
		}
		start := model.DateOnly(parsed)
		filter.StartDate = &start
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	records, err := store.GetRecords(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load journal entries: %w", err)
	}

	if len(records) == 0 {
		fmt.Println(cli.InfoStyle.Render("No journal entries found. Use 'boitech journal add' to log one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle(cli.HealthIcon + "  Journal")) //nolint:forbidigo // User-facing output
	fmt.Println()                                              //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("Date"),
		headerStyle.Render("Symptoms"),
		headerStyle.Render("Notes"))
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
		strings.Repeat("─", 10),
		strings.Repeat("─", 25),
		strings.Repeat("─", 30))

	for _, record := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
			record.Date.Format("2006-01-02"),
			strings.Join(record.Symptoms, ", "),
			record.Notes)
	}

	return nil
}
