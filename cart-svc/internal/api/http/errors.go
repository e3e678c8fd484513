package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/provider"
)

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
	Redirect  string `json:"redirect,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
}

// statusFor maps error kinds to a status and, where the UI should move
// on, the page to send the user to.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "/login"
	case errors.Is(err, provider.ErrSignInRejected):
		return http.StatusUnauthorized, ""
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusConflict, "/menu"
	case errors.Is(err, domain.ErrDishNotFound), errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ""
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ""
	case errors.Is(err, domain.ErrFetchFailure):
		return http.StatusBadGateway, ""
	case errors.Is(err, domain.ErrStorageFailure):
		return http.StatusServiceUnavailable, ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ""
	default:
		return http.StatusInternalServerError, ""
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, redirect := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Retryable: domain.Retryable(err),
		Redirect:  redirect,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
