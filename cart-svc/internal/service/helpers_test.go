package service_test

import (
	"context"
	"testing"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/service"
	"overcooked-cart/cart-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var (
	teriyaki  = domain.DishRecord{ID: "52772", Name: "Teriyaki Chicken", UnitPrice: 30, ImageURL: "https://img/52772.jpg", Category: "Chicken", Area: "Japanese"}
	shakshuka = domain.DishRecord{ID: "52963", Name: "Shakshuka", UnitPrice: 45, ImageURL: "https://img/52963.jpg", Category: "Vegetarian", Area: "Egyptian"}
	kofta     = domain.DishRecord{ID: "53005", Name: "Kofta Burgers", UnitPrice: 38, ImageURL: "https://img/53005.jpg", Category: "Lamb", Area: "Tunisian"}
)

func newStore(t *testing.T) (*storage.ScopedStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	scoped, err := storage.Scoped(storage.NewRedisStore(client), "test-client")
	require.NoError(t, err)
	return scoped, mr
}

func newLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func signIn(t *testing.T, store service.DurableStore) {
	t.Helper()
	logger, _ := newLogger()
	gate := service.NewAuthGate(store, logger)
	require.NoError(t, gate.StartSession(context.Background(), "tok-123", domain.UserSession{
		Name:    "Sara",
		Email:   "sara@example.com",
		Phone:   "+966500000000",
		Address: "King Fahd Rd, Riyadh",
	}))
}

// newPage wires the components the way a single request does.
func newPage(store service.DurableStore) (*service.AuthGate, *service.CartRepository, *service.OrderHistoryRepository) {
	logger, _ := newLogger()
	gate := service.NewAuthGate(store, logger)
	return gate, service.NewCartRepository(store, gate, logger), service.NewOrderHistoryRepository(store, logger)
}
