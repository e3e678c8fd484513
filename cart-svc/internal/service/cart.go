package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"overcooked-cart/cart-svc/internal/codec"
	"overcooked-cart/cart-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const CartKey = "cart"

// CartRepository owns the stored cart. It keeps nothing in memory: every
// mutation loads the current value, applies the change and writes the
// whole cart back. Concurrent writers are last-writer-wins.
type CartRepository struct {
	store  DurableStore
	gate   SessionGate
	logger logrus.FieldLogger
}

func NewCartRepository(store DurableStore, gate SessionGate, logger logrus.FieldLogger) *CartRepository {
	return &CartRepository{store: store, gate: gate, logger: logger}
}

// Load returns an empty cart when nothing is stored or the stored value is
// corrupt. Only a failing store is an error.
func (r *CartRepository) Load(ctx context.Context) (domain.Cart, error) {
	raw, ok, err := r.store.Read(ctx, CartKey)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{Lines: []domain.CartLine{}}, nil
	}

	cart, err := codec.DecodeCart(raw)
	if err != nil {
		r.logger.WithError(err).Warn("stored cart is unreadable, starting from an empty cart")
		return domain.Cart{Lines: []domain.CartLine{}}, nil
	}
	return cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart domain.Cart) error {
	if _, err := r.gate.RequireSession(ctx); err != nil {
		return err
	}
	for _, line := range cart.Lines {
		if line.Quantity > domain.MaxQuantity {
			return domain.ErrQuantityLimit
		}
	}
	return r.write(ctx, cart)
}

func (r *CartRepository) AddOrIncrement(ctx context.Context, dish domain.DishRecord) (domain.Cart, error) {
	if _, err := r.gate.RequireSession(ctx); err != nil {
		return domain.Cart{}, err
	}
	if strings.TrimSpace(dish.ID) == "" {
		return domain.Cart{}, fmt.Errorf("%w: dish without id", domain.ErrValidation)
	}
	if dish.UnitPrice <= 0 {
		return domain.Cart{}, fmt.Errorf("%w: dish %s has no price", domain.ErrValidation, dish.ID)
	}
	// The caller may have walked away while the dish was being fetched.
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	cart, err := r.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}

	if i, ok := cart.Find(dish.ID); ok {
		if cart.Lines[i].Quantity >= domain.MaxQuantity {
			return domain.Cart{}, domain.ErrQuantityLimit
		}
		cart.Lines[i].Quantity++
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ID:        dish.ID,
			Name:      dish.Name,
			UnitPrice: dish.UnitPrice,
			Quantity:  1,
			ImageURL:  dish.ImageURL,
			Category:  dish.Category,
			Area:      dish.Area,
		})
	}

	if err := r.write(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	r.logger.WithField("dish_id", dish.ID).Debug("dish added to cart")
	return cart, nil
}

// SetQuantity leaves the cart untouched for quantities below one; removal
// goes through Remove. Quantities above domain.MaxQuantity are rejected.
func (r *CartRepository) SetQuantity(ctx context.Context, id string, quantity int) (domain.Cart, error) {
	if _, err := r.gate.RequireSession(ctx); err != nil {
		return domain.Cart{}, err
	}
	if quantity > domain.MaxQuantity {
		return domain.Cart{}, domain.ErrQuantityLimit
	}

	cart, err := r.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	if quantity < 1 {
		return cart, nil
	}

	i, ok := cart.Find(id)
	if !ok || cart.Lines[i].Quantity == quantity {
		return cart, nil
	}
	cart.Lines[i].Quantity = quantity

	if err := r.write(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (r *CartRepository) Remove(ctx context.Context, id string) (domain.Cart, error) {
	if _, err := r.gate.RequireSession(ctx); err != nil {
		return domain.Cart{}, err
	}

	cart, err := r.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}

	i, ok := cart.Find(id)
	if !ok {
		return cart, nil
	}
	lines := make([]domain.CartLine, 0, len(cart.Lines)-1)
	lines = append(lines, cart.Lines[:i]...)
	lines = append(lines, cart.Lines[i+1:]...)
	cart.Lines = lines

	if err := r.write(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Clear deletes the stored cart. Only checkout calls it, after the order
// has been recorded.
func (r *CartRepository) Clear(ctx context.Context) error {
	if _, err := r.gate.RequireSession(ctx); err != nil {
		return err
	}
	return r.store.Delete(ctx, CartKey)
}

func (r *CartRepository) write(ctx context.Context, cart domain.Cart) error {
	payload, err := codec.EncodeCart(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.store.Write(ctx, CartKey, payload); err != nil {
		if !errors.Is(err, domain.ErrStorageFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
		}
		return err
	}
	return nil
}
