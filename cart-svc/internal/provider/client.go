package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"overcooked-cart/cart-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const maxBodyBytes = 1 << 20

// doJSON sends req and decodes a 2xx body into out. Transport errors and
// unexpected statuses come back wrapped in domain.ErrFetchFailure; the
// status code is returned so callers can tell rejections apart.
func doJSON(ctx context.Context, client HTTPClient, req *http.Request, out interface{}) (int, error) {
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %w", domain.ErrFetchFailure, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read body: %w", domain.ErrFetchFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode body: %w", domain.ErrFetchFailure, err)
	}
	return resp.StatusCode, nil
}

type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider responded %d", e.Code)
	}
	return fmt.Sprintf("provider responded %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return domain.ErrFetchFailure }

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		return payload.Message
	}
	return ""
}
