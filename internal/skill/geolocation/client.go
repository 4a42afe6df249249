package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	skillerrors "timeskill/internal/common/errors"
	"timeskill/internal/common/httpx"
	"timeskill/internal/common/logger"
	"timeskill/internal/common/metrics"
)

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// Client resolves place names against the geocoding HTTP API.
type Client struct {
	config *Config
	client *httpx.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: httpx.NewClient(config.Timeout),
		logger: log.WithFields(map[string]interface{}{"component": "geolocation"}),
	}
}

type lookupResponse struct {
	Results []struct {
		City      string  `json:"city"`
		Region    string  `json:"region"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// Resolve looks up a place name. Empty results, non-200 responses, decode
// failures and transport failures all surface as ErrLocationNotFound; the
// user-facing dialog is the same for every cause. The underlying cause is
// logged, not returned.
func (c *Client) Resolve(ctx context.Context, name string) (*Geolocation, error) {
	result, err := c.lookup(ctx, name)
	if err != nil {
		c.logger.WithError(err).Warn("geolocation lookup failed", map[string]interface{}{
			"location": name,
		})
		metrics.GeolocationLookups.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%w: %q", skillerrors.ErrLocationNotFound, name)
	}

	metrics.GeolocationLookups.WithLabelValues("resolved").Inc()
	return result, nil
}

func (c *Client) lookup(ctx context.Context, name string) (*Geolocation, error) {
	endpoint := fmt.Sprintf("%s/v1/geocode?name=%s&limit=1", c.config.BaseURL, url.QueryEscape(name))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, lastErr = c.client.DoWithContext(ctx, req)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if lastErr != nil {
			continue
		}
		if resp.StatusCode == http.StatusOK {
			break
		}

		status := resp.StatusCode
		resp.Body.Close()
		resp = nil
		lastErr = fmt.Errorf("status %d", status)
		// Client errors will not improve on retry.
		if status >= 400 && status < 500 {
			break
		}
	}

	if lastErr != nil || resp == nil {
		return nil, skillerrors.NewGeolocationFailedError(lastErr)
	}
	defer resp.Body.Close()

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, skillerrors.NewGeolocationFailedError(err)
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("no match for %q", name)
	}

	r := payload.Results[0]
	return &Geolocation{
		City:      r.City,
		Region:    r.Region,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}, nil
}
