// Package codec is the serialization boundary for everything the cart
// service keeps in the durable store. Values are tagged envelopes
// carrying a schema name and version; bare JSON arrays written by older
// clients are still accepted on read.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"overcooked-cart/cart-svc/internal/domain"
)

const (
	SchemaCart   = "cart"
	SchemaOrders = "orders"
	Version      = 1
)

type cartEnvelope struct {
	Schema  string            `json:"schema"`
	Version int               `json:"version"`
	Lines   []domain.CartLine `json:"lines"`
}

type ordersEnvelope struct {
	Schema  string              `json:"schema"`
	Version int                 `json:"version"`
	Orders  []domain.DraftOrder `json:"orders"`
}

func EncodeCart(cart domain.Cart) ([]byte, error) {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return json.Marshal(cartEnvelope{Schema: SchemaCart, Version: Version, Lines: lines})
}

// DecodeCart fails with domain.ErrCorruptState for anything that is not a
// well-formed cart.
func DecodeCart(raw []byte) (domain.Cart, error) {
	var lines []domain.CartLine

	trimmed := bytes.TrimSpace(raw)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &lines); err != nil {
			return domain.Cart{}, corrupt(SchemaCart, err)
		}
	} else {
		var env cartEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return domain.Cart{}, corrupt(SchemaCart, err)
		}
		if err := checkHeader(SchemaCart, env.Schema, env.Version); err != nil {
			return domain.Cart{}, err
		}
		lines = env.Lines
	}

	if err := validateLines(lines); err != nil {
		return domain.Cart{}, corrupt(SchemaCart, err)
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return domain.Cart{Lines: lines}, nil
}

func EncodeOrders(history domain.OrderHistory) ([]byte, error) {
	orders := history.Orders
	if orders == nil {
		orders = []domain.DraftOrder{}
	}
	return json.Marshal(ordersEnvelope{Schema: SchemaOrders, Version: Version, Orders: orders})
}

func DecodeOrders(raw []byte) (domain.OrderHistory, error) {
	var orders []domain.DraftOrder

	trimmed := bytes.TrimSpace(raw)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return domain.OrderHistory{}, corrupt(SchemaOrders, err)
		}
	} else {
		var env ordersEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return domain.OrderHistory{}, corrupt(SchemaOrders, err)
		}
		if err := checkHeader(SchemaOrders, env.Schema, env.Version); err != nil {
			return domain.OrderHistory{}, err
		}
		orders = env.Orders
	}

	seen := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		if order.ID == "" {
			return domain.OrderHistory{}, corrupt(SchemaOrders, fmt.Errorf("order without id"))
		}
		if _, dup := seen[order.ID]; dup {
			return domain.OrderHistory{}, corrupt(SchemaOrders, fmt.Errorf("duplicate order %q", order.ID))
		}
		if err := validateLines(order.Lines); err != nil {
			return domain.OrderHistory{}, corrupt(SchemaOrders, fmt.Errorf("order %q: %w", order.ID, err))
		}
		seen[order.ID] = struct{}{}
	}
	if orders == nil {
		orders = []domain.DraftOrder{}
	}
	return domain.OrderHistory{Orders: orders}, nil
}

func checkHeader(want, schema string, version int) error {
	if schema != want {
		return corrupt(want, fmt.Errorf("unexpected schema %q", schema))
	}
	if version != Version {
		return corrupt(want, fmt.Errorf("unsupported version %d", version))
	}
	return nil
}

func validateLines(lines []domain.CartLine) error {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		switch {
		case line.ID == "":
			return fmt.Errorf("line without id")
		case line.Quantity < 1:
			return fmt.Errorf("line %q has quantity %d", line.ID, line.Quantity)
		case line.UnitPrice < 0:
			return fmt.Errorf("line %q has negative price", line.ID)
		}
		if _, dup := seen[line.ID]; dup {
			return fmt.Errorf("duplicate line %q", line.ID)
		}
		seen[line.ID] = struct{}{}
	}
	return nil
}

func corrupt(schema string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrCorruptState, schema, err)
}
