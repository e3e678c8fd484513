package httpapi

import (
	"context"
	"net/http"
	"time"

	"overcooked-cart/cart-svc/internal/storage"

	"github.com/sirupsen/logrus"
)

const ClientIDHeader = "X-Client-ID"

type scopeKey struct{}

// withClientScope rejects requests that do not say which client they
// belong to and hands the rest a store confined to that client's keys.
func (h *Handler) withClientScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scoped, err := storage.Scoped(h.Store, r.Header.Get(ClientIDHeader))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		ctx := context.WithValue(r.Context(), scopeKey{}, scoped)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func scopeFrom(ctx context.Context) *storage.ScopedStore {
	scoped, _ := ctx.Value(scopeKey{}).(*storage.ScopedStore)
	return scoped
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.WithFields(logrus.Fields{
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    rec.status,
				"client_id": r.Header.Get(ClientIDHeader),
				"duration":  time.Since(start).String(),
			}).Info("request")
		})
	}
}
