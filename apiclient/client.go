// Package apiclient talks to the dice game server over HTTP/JSON.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tiggercwh/go-dice/gameModel"
)

const DefaultTimeout = 8 * time.Second

// RequestIDHeader carries a per-request id the server echoes in its logs.
const RequestIDHeader = "X-Request-ID"

// ErrStatus is returned when the server answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) makeRequest(ctx context.Context, method, path string, body interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	return data, resp.StatusCode, err
}

func checkStatus(path string, status int) error {
	if status < 200 || status > 299 {
		return fmt.Errorf("%s: %w %d", path, ErrStatus, status)
	}
	return nil
}

// Roll posts a roll request. The server answers 200 even once the game is
// over; that signal travels in the payload.
func (c *Client) Roll(ctx context.Context, req gameModel.RollRequest) (gameModel.RollResponse, error) {
	respBody, status, err := c.makeRequest(ctx, http.MethodPost, "/roll", req)
	if err != nil {
		return gameModel.RollResponse{}, err
	}
	if err := checkStatus("roll", status); err != nil {
		return gameModel.RollResponse{}, err
	}

	var response gameModel.RollResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return gameModel.RollResponse{}, fmt.Errorf("decode roll response: %w", err)
	}
	return response, nil
}

func (c *Client) State(ctx context.Context) (*gameModel.Stats, error) {
	respBody, status, err := c.makeRequest(ctx, http.MethodGet, "/state", nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus("state", status); err != nil {
		return nil, err
	}

	var stats gameModel.Stats
	if err := json.Unmarshal(respBody, &stats); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &stats, nil
}

// Reset only fails when the request itself cannot be completed; any status
// the server answers with counts as success.
func (c *Client) Reset(ctx context.Context) error {
	_, _, err := c.makeRequest(ctx, http.MethodPost, "/reset", nil)
	return err
}
