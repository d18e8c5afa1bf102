// Package remote talks to the detailing API over HTTP on behalf of the
// terminal client.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx reply. Message is the server's error text and is
// what callers show the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type envelope struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// TokenSource yields the bearer token of the current session, or "".
type TokenSource interface {
	Token() string
}

type transport struct {
	baseURL    string
	httpClient *http.Client
}

func newTransport(baseURL string, httpClient *http.Client) transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (t transport) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, rd)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// doJSON sends body as JSON and decodes a 2xx reply into out.
func (t transport) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	req, err := t.newRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return &APIError{Status: resp.StatusCode, Message: env.Error}
}
