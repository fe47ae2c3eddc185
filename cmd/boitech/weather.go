package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prath-way/boitech/internal/cli"
	"github.com/prath-way/boitech/internal/common"
	"github.com/prath-way/boitech/internal/weather"
)

func weatherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show current conditions and the week's forecast",
		Long: `Fetch current conditions and a 7-day forecast for the configured location,
along with the day-over-day changes the prediction engine watches for.`,
		RunE: runWeather,
	}

	cmd.Flags().Float64("lat", 0, "latitude (overrides configured location)")
	cmd.Flags().Float64("lon", 0, "longitude (overrides configured location)")

	return cmd
}

func runWeather(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	label := "requested location"

	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
		location := configuredLocation()
		if location == nil {
			return common.NewUserError(
				"no location configured; pass --lat and --lon or set location.lat/location.lon in config",
				common.ErrMissingConfig)
		}
		lat, lon = location.Lat, location.Lon
		if location.Label != "" {
			label = location.Label
		}
	}

	provider := newWeatherProvider()

	current, err := provider.FetchCurrent(ctx, lat, lon)
	if err != nil {
		return fmt.Errorf("failed to fetch current conditions: %w", err)
	}
	forecast, err := provider.FetchForecast(ctx, lat, lon)
	if err != nil {
		return fmt.Errorf("failed to fetch forecast: %w", err)
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s  Weather for %s", cli.WeatherIcon, label))) //nolint:forbidigo // User-facing output
	fmt.Printf("  now: %.1f°C, %.0f%% humidity, %.1f hPa, %.1f mm precip, wind %.1f km/h\n\n",
		current.TemperatureC, current.HumidityPct, current.PressureHPa, current.PrecipitationMm, current.WindKmh) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Day\tDate\tTemp\tHumidity\tPressure\tPrecip\tWind")
	for _, point := range forecast {
		_, _ = fmt.Fprintf(w, "+%d\t%s\t%.1f°C\t%.0f%%\t%.1f hPa\t%.1f mm\t%.1f km/h\n",
			point.DaysAhead,
			point.Date.Format("2006-01-02"),
			point.TemperatureC,
			point.HumidityPct,
			point.PressureHPa,
			point.PrecipitationMm,
			point.WindKmh)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return fmt.Errorf("failed to render forecast: %w", flushErr)
	}

	deltas := weather.ComputeDeltas(current, forecast)
	fmt.Println() //nolint:forbidigo // User-facing output
	reportDelta(deltas.PressureDrop, weather.PressureDropThresholdHPa, "Pressure drop by tomorrow: %.1f hPa")
	reportDelta(math.Abs(deltas.TemperatureChange), weather.TemperatureSwingThresholdC, "Temperature swing by tomorrow: %.1f°C")
	reportDelta(math.Abs(deltas.HumidityChange), weather.HumiditySwingThresholdPct, "Humidity swing by tomorrow: %.0f%%")

	return nil
}

func reportDelta(value, threshold float64, format string) {
	message := fmt.Sprintf(format, value)
	if value > threshold {
		fmt.Println(cli.FormatWarning(message)) //nolint:forbidigo // User-facing output
		return
	}
	fmt.Println(cli.FormatInfo(message)) //nolint:forbidigo // User-facing output
}
