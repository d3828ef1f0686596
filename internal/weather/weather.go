package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lrtdigest/internal/logger"
)

// Vilnius coordinates, fixed on purpose: the weather pill is decorative.
const (
	vilniusLat = 54.6872
	vilniusLon = 25.2797

	defaultBaseURL = "https://api.open-meteo.com/v1/forecast"
)

// Client fetches a one-line Vilnius weather summary from open-meteo.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
	}
}

type forecast struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// VilniusSummary returns a short Lithuanian line like
// "Vilnius: dabar 2°C, vėjas 4 m/s, šiandien 0…4°C." or an empty string.
// Any failure is absorbed: weather never blocks the digest.
func (c *Client) VilniusSummary(ctx context.Context) string {
	url := fmt.Sprintf(
		"%s?latitude=%v&longitude=%v&current=temperature_2m,wind_speed_10m&daily=temperature_2m_max,temperature_2m_min&timezone=Europe%%2FVilnius",
		c.baseURL, vilniusLat, vilniusLon,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("weather fetch failed", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("weather fetch failed", "status", resp.StatusCode)
		return ""
	}

	var data forecast
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		logger.Warn("weather decode failed", "error", err)
		return ""
	}

	var parts []string
	if t := data.Current.Temperature; t != nil {
		parts = append(parts, "dabar "+formatDegrees(*t)+"°C")
	}
	if w := data.Current.WindSpeed; w != nil {
		parts = append(parts, "vėjas "+formatDegrees(*w)+" m/s")
	}
	if len(data.Daily.TemperatureMin) > 0 && len(data.Daily.TemperatureMax) > 0 {
		parts = append(parts, fmt.Sprintf("šiandien %s…%s°C",
			formatDegrees(data.Daily.TemperatureMin[0]),
			formatDegrees(data.Daily.TemperatureMax[0])))
	}

	if len(parts) == 0 {
		return ""
	}
	return "Vilnius: " + strings.Join(parts, ", ") + "."
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
