package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prath-way/boitech/internal/common"
	"github.com/prath-way/boitech/internal/model"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint. No API key is
// required.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// DefaultTimeout bounds a single weather request. Weather enrichment is
// best-effort, so a slow provider must not stall a generation run.
const DefaultTimeout = 8 * time.Second

// forecastDays is the window the provider is asked for; day 0 is today.
const forecastDays = 7

// OpenMeteoClient implements the WeatherProvider interface against the
// Open-Meteo API.
type OpenMeteoClient struct {
	httpClient *http.Client
	baseURL    string
}

// Open-Meteo API response types.
type openMeteoResponse struct {
	Current *currentBlock `json:"current"`
	Daily   *dailyBlock   `json:"daily"`
}

type currentBlock struct {
	Time            string  `json:"time"`
	Temperature     float64 `json:"temperature_2m"`
	Humidity        float64 `json:"relative_humidity_2m"`
	SurfacePressure float64 `json:"surface_pressure"`
	Precipitation   float64 `json:"precipitation"`
	WindSpeed       float64 `json:"wind_speed_10m"`
}

type dailyBlock struct {
	Time            []string  `json:"time"`
	Temperature     []float64 `json:"temperature_2m_mean"`
	Humidity        []float64 `json:"relative_humidity_2m_mean"`
	SurfacePressure []float64 `json:"surface_pressure_mean"`
	Precipitation   []float64 `json:"precipitation_sum"`
	WindSpeed       []float64 `json:"wind_speed_10m_max"`
}

// NewOpenMeteoClient creates a client against the public Open-Meteo endpoint.
func NewOpenMeteoClient() *OpenMeteoClient {
	return NewOpenMeteoClientWithOptions(DefaultBaseURL, DefaultTimeout)
}

// NewOpenMeteoClientWithOptions creates a client with a custom endpoint and
// timeout, used by tests and by deployments behind a proxy.
func NewOpenMeteoClientWithOptions(baseURL string, timeout time.Duration) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenMeteoClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchCurrent returns today's observed conditions for a location.
func (c *OpenMeteoClient) FetchCurrent(ctx context.Context, lat, lon float64) (model.WeatherSnapshot, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return model.WeatherSnapshot{}, err
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("current", "temperature_2m,relative_humidity_2m,surface_pressure,precipitation,wind_speed_10m")
	query.Set("timezone", "auto")

	var resp openMeteoResponse
	if err := c.get(ctx, query, &resp); err != nil {
		return model.WeatherSnapshot{}, err
	}

	if resp.Current == nil {
		return model.WeatherSnapshot{}, fmt.Errorf("%w: response missing current conditions", common.ErrWeatherUnavailable)
	}

	snapshot := model.WeatherSnapshot{
		TemperatureC:    resp.Current.Temperature,
		HumidityPct:     resp.Current.Humidity,
		PressureHPa:     resp.Current.SurfacePressure,
		PrecipitationMm: resp.Current.Precipitation,
		WindKmh:         resp.Current.WindSpeed,
	}
	if t, err := time.Parse("2006-01-02T15:04", resp.Current.Time); err == nil {
		snapshot.Date = t
	}

	return snapshot, nil
}

// FetchForecast returns a seven-day daily forecast, daysAhead 0 through 6.
func (c *OpenMeteoClient) FetchForecast(ctx context.Context, lat, lon float64) ([]model.WeatherForecastPoint, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("daily", "temperature_2m_mean,relative_humidity_2m_mean,surface_pressure_mean,precipitation_sum,wind_speed_10m_max")
	query.Set("forecast_days", fmt.Sprintf("%d", forecastDays))
	query.Set("timezone", "auto")

	var resp openMeteoResponse
	if err := c.get(ctx, query, &resp); err != nil {
		return nil, err
	}

	if resp.Daily == nil || len(resp.Daily.Time) == 0 {
		return nil, fmt.Errorf("%w: response missing daily forecast", common.ErrWeatherUnavailable)
	}

	points := make([]model.WeatherForecastPoint, 0, len(resp.Daily.Time))
	for i, day := range resp.Daily.Time {
		point := model.WeatherForecastPoint{DaysAhead: i}
		if t, err := time.Parse("2006-01-02", day); err == nil {
			point.Date = t
		}
		point.TemperatureC = floatAt(resp.Daily.Temperature, i)
		point.HumidityPct = floatAt(resp.Daily.Humidity, i)
		point.PressureHPa = floatAt(resp.Daily.SurfacePressure, i)
		point.PrecipitationMm = floatAt(resp.Daily.Precipitation, i)
		point.WindKmh = floatAt(resp.Daily.WindSpeed, i)
		points = append(points, point)
	}

	return points, nil
}

// get performs one API request and decodes the response into out.
func (c *OpenMeteoClient) get(ctx context.Context, query url.Values, out *openMeteoResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrWeatherUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode == http.StatusBadRequest {
			return fmt.Errorf("%w: %s", common.ErrInvalidLocation, string(body))
		}
		return fmt.Errorf("%w: status %d - %s", common.ErrWeatherUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", common.ErrWeatherUnavailable, err)
	}

	return nil
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: lat %.4f lon %.4f", common.ErrInvalidLocation, lat, lon)
	}
	return nil
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
