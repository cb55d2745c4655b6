package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable wraps every failure to obtain today's weather.
var ErrUnavailable = errors.New("weather unavailable")

const dateLayout = "01-02" // MM-dd, as served by the feed

// Forecast is one entry of the weather feed.
type Forecast struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
}

// Client fetches the daily weather feed over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
	now        func() time.Time
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		now:        time.Now,
	}
}

// WithClock returns a copy of the client that resolves "today" with now.
func (c *Client) WithClock(now func() time.Time) *Client {
	cp := *c
	cp.now = now
	return &cp
}

// TodayWeather returns the feed entry for the current date.
func (c *Client) TodayWeather(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var forecasts []Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecasts); err != nil {
		return "", fmt.Errorf("%w: decode feed: %v", ErrUnavailable, err)
	}

	today := c.now().Format(dateLayout)
	for _, f := range forecasts {
		if f.Date == today {
			return f.Weather, nil
		}
	}
	return "", fmt.Errorf("%w: no entry for %s", ErrUnavailable, today)
}
