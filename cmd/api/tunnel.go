package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	tunnelAttempts = 10
	tunnelBackoff  = 3 * time.Second
)

type tunnelsResp struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// detectTunnelURL asks a local ngrok API for its public URL, preferring
// https. ngrok may still be starting, so it retries.
func detectTunnelURL(ctx context.Context, apiBase string) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= tunnelAttempts; attempt++ {
		url, err := fetchTunnelURL(ctx, client, apiBase+"/api/tunnels")
		if err == nil && url != "" {
			return url, nil
		}
		lastErr = err
		if lastErr == nil {
			lastErr = fmt.Errorf("no active tunnels")
		}

		if attempt == tunnelAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(tunnelBackoff):
		}
	}
	return "", fmt.Errorf("tunnel API gave no URL after %d attempts: %w", tunnelAttempts, lastErr)
}

func fetchTunnelURL(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tunnel API returned %s", resp.Status)
	}

	var body tunnelsResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode tunnel API response: %w", err)
	}
	for _, t := range body.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(body.Tunnels) > 0 {
		return body.Tunnels[0].PublicURL, nil
	}
	return "", nil
}
