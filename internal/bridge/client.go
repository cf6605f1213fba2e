// Package bridge talks to a Hue bridge over its v1 REST API.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is a v1 API client for a single bridge.
type Client struct {
	address    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the bridge at address, authenticating with
// the given API token.
func NewClient(address, token string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		address: address,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("http://%s/api/%s/%s", c.address, c.token, path)
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

// apiResult is one element of the success/error array the v1 API returns
// for writes. The bridge answers 200 even for application errors, so the
// body has to be inspected.
type apiResult struct {
	Error *struct {
		Type        int    `json:"type"`
		Address     string `json:"address"`
		Description string `json:"description"`
	} `json:"error"`
}

func checkAPIResponse(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var results []apiResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return fmt.Errorf("failed to decode bridge response: %w", err)
	}

	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("bridge error %d at %s: %s",
				r.Error.Type, r.Error.Address, r.Error.Description)
		}
	}

	return nil
}

// GetLights fetches all lights, keyed by their v1 index.
func (c *Client) GetLights(ctx context.Context) (map[string]Light, error) {
	resp, err := c.request(ctx, "GET", "lights", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var lights map[string]Light
	if err := json.NewDecoder(resp.Body).Decode(&lights); err != nil {
		return nil, fmt.Errorf("failed to decode lights: %w", err)
	}

	log.Debug().Int("lights", len(lights)).Msg("Fetched lights from bridge")
	return lights, nil
}

// SetState writes a partial state update to a single light.
func (c *Client) SetState(ctx context.Context, id string, update StateUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	resp, err := c.request(ctx, "PUT", fmt.Sprintf("lights/%s/state", id), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to set state of light %s: %w", id, err)
	}

	if err := checkAPIResponse(resp); err != nil {
		return fmt.Errorf("failed to set state of light %s: %w", id, err)
	}

	log.Debug().Str("light", id).RawJSON("state", body).Msg("Applied state to light")
	return nil
}

// SetPower switches a single light on or off.
func (c *Client) SetPower(ctx context.Context, id string, on bool) error {
	return c.SetState(ctx, id, StateUpdate{On: &on})
}

// Rename changes the user-visible name of a light.
func (c *Client) Rename(ctx context.Context, id, name string) error {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return fmt.Errorf("failed to marshal name: %w", err)
	}

	resp, err := c.request(ctx, "PUT", fmt.Sprintf("lights/%s", id), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to rename light %s: %w", id, err)
	}

	if err := checkAPIResponse(resp); err != nil {
		return fmt.Errorf("failed to rename light %s: %w", id, err)
	}

	log.Info().Str("light", id).Str("name", name).Msg("Renamed light")
	return nil
}
