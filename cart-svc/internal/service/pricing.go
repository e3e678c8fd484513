package service

import "overcooked-cart/cart-svc/internal/domain"

const DefaultDeliveryFee = 15

// Pricing derives totals from a cart snapshot. All amounts are whole
// currency units.
type Pricing struct {
	DeliveryFeeAmount int
}

func NewPricing() Pricing {
	return Pricing{DeliveryFeeAmount: DefaultDeliveryFee}
}

func (p Pricing) LineTotal(line domain.CartLine) int {
	return line.UnitPrice * line.Quantity
}

func (p Pricing) Subtotal(cart domain.Cart) int {
	total := 0
	for _, line := range cart.Lines {
		total += p.LineTotal(line)
	}
	return total
}

func (p Pricing) DeliveryFee(option domain.DeliveryOption) int {
	if option == domain.DeliveryOptionDelivery {
		return p.DeliveryFeeAmount
	}
	return 0
}

func (p Pricing) GrandTotal(cart domain.Cart, option domain.DeliveryOption) int {
	return p.Subtotal(cart) + p.DeliveryFee(option)
}

func (p Pricing) Quote(cart domain.Cart, option domain.DeliveryOption) domain.Quote {
	lines := make([]domain.QuoteLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, domain.QuoteLine{CartLine: line, LineTotal: p.LineTotal(line)})
	}
	return domain.Quote{
		Lines:          lines,
		DeliveryOption: option,
		Subtotal:       p.Subtotal(cart),
		DeliveryFee:    p.DeliveryFee(option),
		GrandTotal:     p.GrandTotal(cart, option),
	}
}
