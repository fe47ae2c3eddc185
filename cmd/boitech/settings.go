package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/prath-way/boitech/internal/cli"
	"github.com/prath-way/boitech/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change prediction settings",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current prediction settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			fmt.Println(cli.FormatTitle(cli.HealthIcon + "  Prediction Settings")) //nolint:forbidigo // User-facing output
			fmt.Printf("  enabled          %v\n", settings.Enabled)               //nolint:forbidigo // User-facing output
			fmt.Printf("  notifications    %v\n", settings.NotificationsEnabled)  //nolint:forbidigo // User-facing output
			fmt.Printf("  weather          %v\n", settings.WeatherIntegration)    //nolint:forbidigo // User-facing output
			fmt.Printf("  min-confidence   %.2f\n", settings.MinConfidence)       //nolint:forbidigo // User-facing output
			fmt.Printf("  days-to-predict  %d\n", settings.DaysToPredict)         //nolint:forbidigo // User-facing output
			if settings.Location != nil {
				fmt.Printf("  location         %s (%.4f, %.4f)\n", settings.Location.Label, settings.Location.Lat, settings.Location.Lon) //nolint:forbidigo // User-facing output
			} else {
				fmt.Println("  location         (not set)") //nolint:forbidigo // User-facing output
			}

			return nil
		},
	}
}

func settingsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one prediction setting",
		Long: `Change one prediction setting and persist it.

Supported keys:
  enabled          true|false
  notifications    true|false
  weather          true|false
  min-confidence   0.0 through 1.0
  days-to-predict  1 through 7
  location         "<label>,<lat>,<lon>" (set via --lat/--lon/--label flags)`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSettingsSet,
	}

	cmd.Flags().Float64("lat", 0, "location latitude (with key 'location')")
	cmd.Flags().Float64("lon", 0, "location longitude (with key 'location')")
	cmd.Flags().String("label", "", "location label (with key 'location')")

	return cmd
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	key := args[0]
	value := ""
	if len(args) > 1 {
		value = args[1]
	}

	if err := applySetting(cmd, &settings, key, value); err != nil {
		return err
	}

	settings.Normalize()
	if err := store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %s", key))) //nolint:forbidigo // User-facing output

	return nil
}

func applySetting(cmd *cobra.Command, settings *model.PredictionSettings, key, value string) error {
	switch key {
	case "enabled":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for enabled", value)
		}
		settings.Enabled = parsed
	case "notifications":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for notifications", value)
		}
		settings.NotificationsEnabled = parsed
	case "weather":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for weather", value)
		}
		settings.WeatherIntegration = parsed
	case "min-confidence":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q for min-confidence", value)
		}
		settings.MinConfidence = parsed
	case "days-to-predict":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q for days-to-predict", value)
		}
		settings.DaysToPredict = parsed
	case "location":
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		label, _ := cmd.Flags().GetString("label")
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
			return fmt.Errorf("setting location requires --lat and --lon")
		}
		settings.Location = &model.Location{Label: label, Lat: lat, Lon: lon}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return nil
}
