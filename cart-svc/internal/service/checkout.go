package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"overcooked-cart/cart-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CheckoutState string

const (
	StateShopping   CheckoutState = "shopping"
	StateReviewing  CheckoutState = "reviewing"
	StateSubmitting CheckoutState = "submitting"
	StateConfirmed  CheckoutState = "confirmed"
)

const maxNotesLength = 500

var (
	ErrCheckoutDone = fmt.Errorf("%w: checkout already confirmed", domain.ErrValidation)

	// ErrCartNotCleared is returned together with the recorded order when
	// the order was appended to the history but the cart delete failed.
	ErrCartNotCleared = errors.New("order recorded but cart was not cleared")
)

// Checkout drives one checkout attempt. It is built per request and is
// not safe for concurrent use.
type Checkout struct {
	carts     CartStore
	orders    OrderStore
	gate      SessionGate
	pricing   Pricing
	publisher OrderPublisher
	logger    logrus.FieldLogger

	NewID func() (string, error)
	Now   func() time.Time

	state CheckoutState
}

func NewCheckout(carts CartStore, orders OrderStore, gate SessionGate, pricing Pricing, publisher OrderPublisher, logger logrus.FieldLogger) *Checkout {
	return &Checkout{
		carts:     carts,
		orders:    orders,
		gate:      gate,
		pricing:   pricing,
		publisher: publisher,
		logger:    logger,
		NewID:     newOrderID,
		Now:       time.Now,
		state:     StateShopping,
	}
}

func (c *Checkout) State() CheckoutState {
	return c.state
}

// Review moves Shopping to Reviewing. It fails with ErrUnauthenticated or
// ErrEmptyCart without entering any state.
func (c *Checkout) Review(ctx context.Context, option domain.DeliveryOption) (domain.Quote, error) {
	if err := c.checkActive(); err != nil {
		return domain.Quote{}, err
	}
	_, cart, err := c.preconditions(ctx, option)
	if err != nil {
		return domain.Quote{}, err
	}
	c.state = StateReviewing
	return c.pricing.Quote(cart, option), nil
}

// Submit records the order and then clears the cart. The history append
// comes first: a failure after it leaves the cart intact and the order
// recorded, reported as ErrCartNotCleared alongside the order.
func (c *Checkout) Submit(ctx context.Context, option domain.DeliveryOption, notes string) (domain.DraftOrder, error) {
	if err := c.checkActive(); err != nil {
		return domain.DraftOrder{}, err
	}
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return domain.DraftOrder{}, fmt.Errorf("%w: notes exceed %d characters", domain.ErrValidation, maxNotesLength)
	}

	session, cart, err := c.preconditions(ctx, option)
	if err != nil {
		return domain.DraftOrder{}, err
	}

	previous := c.state
	c.state = StateSubmitting

	id, err := c.NewID()
	if err != nil {
		c.state = previous
		return domain.DraftOrder{}, fmt.Errorf("generate order id: %w", err)
	}

	snapshot := cart.Clone()
	order := domain.DraftOrder{
		ID:             id,
		Lines:          snapshot.Lines,
		DeliveryOption: option,
		Subtotal:       c.pricing.Subtotal(snapshot),
		DeliveryFee:    c.pricing.DeliveryFee(option),
		GrandTotal:     c.pricing.GrandTotal(snapshot, option),
		Customer:       customerSnapshot(session),
		Notes:          notes,
		PlacedAt:       c.Now().UTC(),
	}

	log := c.logger.WithField("order_id", order.ID)

	if err := c.orders.Append(ctx, order); err != nil {
		c.state = previous
		log.WithError(err).Error("failed to record order")
		return domain.DraftOrder{}, err
	}

	if err := c.carts.Clear(ctx); err != nil {
		c.state = previous
		log.WithError(err).Error("order recorded but cart could not be cleared")
		return order, fmt.Errorf("%w: %w", ErrCartNotCleared, err)
	}

	c.state = StateConfirmed
	log.WithFields(logrus.Fields{
		"total": order.GrandTotal,
		"items": len(order.Lines),
	}).Info("order confirmed")

	c.publish(ctx, order)
	return order, nil
}

func (c *Checkout) preconditions(ctx context.Context, option domain.DeliveryOption) (domain.UserSession, domain.Cart, error) {
	session, err := c.gate.RequireSession(ctx)
	if err != nil {
		return domain.UserSession{}, domain.Cart{}, err
	}
	if !option.Valid() {
		return domain.UserSession{}, domain.Cart{}, domain.ErrInvalidDeliveryOption
	}
	cart, err := c.carts.Load(ctx)
	if err != nil {
		return domain.UserSession{}, domain.Cart{}, err
	}
	if cart.IsEmpty() {
		return domain.UserSession{}, domain.Cart{}, domain.ErrEmptyCart
	}
	return session, cart, nil
}

// checkActive refuses to start over once an instance has confirmed.
// Submitting is only visible to the stores while Submit runs.
func (c *Checkout) checkActive() error {
	if c.state == StateConfirmed {
		return ErrCheckoutDone
	}
	return nil
}

func (c *Checkout) publish(ctx context.Context, order domain.DraftOrder) {
	if c.publisher == nil {
		return
	}
	items := 0
	for _, line := range order.Lines {
		items += line.Quantity
	}
	event := domain.OrderEvent{
		Type:           "order_placed",
		OrderID:        order.ID,
		CustomerEmail:  order.Customer.Email,
		DeliveryOption: order.DeliveryOption,
		ItemCount:      items,
		Total:          order.GrandTotal,
		Timestamp:      order.PlacedAt,
	}
	if err := c.publisher.PublishOrder(ctx, event); err != nil {
		c.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
	}
}

func customerSnapshot(session domain.UserSession) domain.UserSession {
	session.Credential = ""
	return session
}

func newOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
