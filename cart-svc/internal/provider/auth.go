package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"overcooked-cart/cart-svc/internal/domain"
)

// ErrSignInRejected means the provider answered and refused the
// credentials, as opposed to being unreachable.
var ErrSignInRejected = fmt.Errorf("%w: sign-in rejected", domain.ErrValidation)

type AuthClient struct {
	URL    string
	Client HTTPClient
}

func NewAuthClient(url string, client HTTPClient) *AuthClient {
	return &AuthClient{URL: url, Client: client}
}

func (c *AuthClient) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest(http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Token string `json:"token"`
	}
	code, err := doJSON(ctx, c.Client, req, &payload)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && code >= 400 && code < 500 {
			return "", fmt.Errorf("%w: %s", ErrSignInRejected, statusErr.Message)
		}
		return "", err
	}
	if payload.Token == "" {
		return "", fmt.Errorf("%w: no credential in sign-in response", domain.ErrFetchFailure)
	}
	return payload.Token, nil
}
