package service

import (
	"context"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/storage"
)

// DurableStore is synchronous from the caller's point of view and total:
// a missing key is reported through the bool, never as an error.
type DurableStore interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type SessionGate interface {
	RequireSession(ctx context.Context) (domain.UserSession, error)
}

type CartStore interface {
	Load(ctx context.Context) (domain.Cart, error)
	Clear(ctx context.Context) error
}

type OrderStore interface {
	Append(ctx context.Context, order domain.DraftOrder) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type Catalog interface {
	Random(ctx context.Context, count int) ([]domain.DishRecord, error)
	Lookup(ctx context.Context, id string) (domain.DishRecord, error)
}

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

var (
	_ DurableStore   = (*storage.RedisStore)(nil)
	_ DurableStore   = (*storage.PostgresStore)(nil)
	_ DurableStore   = (*storage.ScopedStore)(nil)
	_ OrderPublisher = (*storage.KafkaPublisher)(nil)

	_ SessionGate = (*AuthGate)(nil)
	_ CartStore   = (*CartRepository)(nil)
	_ OrderStore  = (*OrderHistoryRepository)(nil)
)
