package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIClient makes REST calls to the SuperSID backend.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a client targeting the given base URL (e.g. "http://127.0.0.1:8000").
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// StartMonitoring sends POST /api/start.
func (c *APIClient) StartMonitoring() (*CommandAck, error) {
	return c.command("/api/start")
}

// StopMonitoring sends POST /api/stop.
func (c *APIClient) StopMonitoring() (*CommandAck, error) {
	return c.command("/api/stop")
}

// SpaceWeather fetches /api/space-weather/summary.
func (c *APIClient) SpaceWeather() (*SpaceWeatherSnapshot, error) {
	var s SpaceWeatherSnapshot
	if err := c.get("/api/space-weather/summary", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Stations fetches /stations/ with optional type and name filters.
func (c *APIClient) Stations(stationType, name string) ([]Station, error) {
	q := url.Values{}
	if stationType != "" {
		q.Set("type", stationType)
	}
	if name != "" {
		q.Set("name", name)
	}
	path := "/stations/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []Station
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recent fetches /api/data/recent/{band} for the given window in minutes.
func (c *APIClient) Recent(band string, minutes int) (*RecentData, error) {
	path := "/api/data/recent/" + url.PathEscape(band) + "?minutes=" + strconv.Itoa(minutes)
	var out RecentData
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// command sends a bare POST and decodes the acknowledgement. On a non-2xx
// response the backend's detail field becomes the error message when present.
func (c *APIClient) command(path string) (*CommandAck, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
			return nil, errors.New(apiErr.Detail)
		}
		return nil, fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(body))
	}
	var ack CommandAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
