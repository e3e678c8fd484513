package provider_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/mocks"
	"overcooked-cart/cart-svc/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthClient_SignIn(t *testing.T) {
	type testCase struct {
		name      string
		status    int
		body      string
		wantToken string
		wantErr   error
	}

	tests := []testCase{
		{name: "accepted", status: http.StatusOK, body: `{"token":"tok-abc"}`, wantToken: "tok-abc"},
		{name: "rejected", status: http.StatusUnauthorized, body: `{"message":"bad password"}`, wantErr: provider.ErrSignInRejected},
		{name: "no token", status: http.StatusOK, body: `{}`, wantErr: domain.ErrFetchFailure},
		{name: "provider down", status: http.StatusBadGateway, body: ``, wantErr: domain.ErrFetchFailure},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]string
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "sara@example.com", body["email"])
				assert.Equal(t, "hunter2", body["password"])

				w.WriteHeader(testCase.status)
				fmt.Fprint(w, testCase.body)
			}))
			defer srv.Close()

			token, err := provider.NewAuthClient(srv.URL, srv.Client()).SignIn(context.Background(), " sara@example.com ", "hunter2")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantToken, token)
		})
	}
}

func TestAuthClient_RejectionIsNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := provider.NewAuthClient(srv.URL, srv.Client()).SignIn(context.Background(), "sara@example.com", "nope")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, domain.Retryable(err))
}

func TestAuthClient_RequiresCredentials(t *testing.T) {
	client := provider.NewAuthClient("http://auth.invalid", mocks.NewHTTPClient(t))

	_, err := client.SignIn(context.Background(), "", "secret")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = client.SignIn(context.Background(), "sara@example.com", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
