package scores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const remoteTimeout = 4 * time.Second

// Remote talks to an HTTP score service.
type Remote struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRemote returns nil when baseURL is blank.
func NewRemote(baseURL, apiKey string) *Remote {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Remote{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: remoteTimeout,
		},
	}
}

func (r *Remote) Enabled() bool {
	return r != nil
}

// Fetch returns the service's top list.
func (r *Remote) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/scores?limit=%d", r.baseURL, Capacity), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var list []Entry
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return rank(list), nil
}

func (r *Remote) Upload(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/scores", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (r *Remote) do(req *http.Request) (*http.Response, error) {
	if r.apiKey != "" {
		req.Header.Set("X-Api-Key", r.apiKey)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, StatusError(resp.StatusCode)
	}
	return resp, nil
}

// StatusError is a non-2xx response from the score service.
type StatusError int

func (s StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", int(s), http.StatusText(int(s)))
}
