package service

import (
	"context"
	"errors"
	"fmt"

	"overcooked-cart/cart-svc/internal/codec"
	"overcooked-cart/cart-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const OrdersKey = "orders"

// OrderHistoryRepository only ever appends; stored orders are never
// rewritten.
type OrderHistoryRepository struct {
	store  DurableStore
	logger logrus.FieldLogger
}

func NewOrderHistoryRepository(store DurableStore, logger logrus.FieldLogger) *OrderHistoryRepository {
	return &OrderHistoryRepository{store: store, logger: logger}
}

func (r *OrderHistoryRepository) Load(ctx context.Context) (domain.OrderHistory, error) {
	raw, ok, err := r.store.Read(ctx, OrdersKey)
	if err != nil {
		return domain.OrderHistory{}, err
	}
	if !ok {
		return domain.OrderHistory{Orders: []domain.DraftOrder{}}, nil
	}

	history, err := codec.DecodeOrders(raw)
	if err != nil {
		r.logger.WithError(err).Warn("stored order history is unreadable, starting from an empty history")
		return domain.OrderHistory{Orders: []domain.DraftOrder{}}, nil
	}
	return history, nil
}

func (r *OrderHistoryRepository) Get(ctx context.Context, id string) (domain.DraftOrder, error) {
	history, err := r.Load(ctx)
	if err != nil {
		return domain.DraftOrder{}, err
	}
	order, ok := history.Find(id)
	if !ok {
		return domain.DraftOrder{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *OrderHistoryRepository) Append(ctx context.Context, order domain.DraftOrder) error {
	history, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if _, exists := history.Find(order.ID); exists {
		return fmt.Errorf("%w: order %s already recorded", domain.ErrValidation, order.ID)
	}
	history.Orders = append(history.Orders, order)

	payload, err := codec.EncodeOrders(history)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := r.store.Write(ctx, OrdersKey, payload); err != nil {
		if !errors.Is(err, domain.ErrStorageFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
		}
		return err
	}
	return nil
}
