package domain

import "time"

// DishRecord is a dish as returned by the catalog. Immutable once fetched.
type DishRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UnitPrice   int    `json:"price"`
	ImageURL    string `json:"image"`
	Category    string `json:"category"`
	Area        string `json:"area"`
	Description string `json:"description,omitempty"`
}

type CartLine struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int    `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image"`
	Category  string `json:"category"`
	Area      string `json:"area"`
}

// MaxQuantity caps a single cart line.
const MaxQuantity = 99

// Cart keeps lines in insertion order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Find(id string) (int, bool) {
	for i, line := range c.Lines {
		if line.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a cart that shares no backing array with c.
func (c Cart) Clone() Cart {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

type UserSession struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Credential string `json:"-"`
}

type DeliveryOption string

const (
	DeliveryOptionDelivery DeliveryOption = "delivery"
	DeliveryOptionPickup   DeliveryOption = "pickup"
)

func (o DeliveryOption) Valid() bool {
	return o == DeliveryOptionDelivery || o == DeliveryOptionPickup
}

// DraftOrder is the snapshot taken at checkout. Once created it is never
// modified.
type DraftOrder struct {
	ID             string         `json:"id"`
	Lines          []CartLine     `json:"items"`
	DeliveryOption DeliveryOption `json:"delivery_option"`
	Subtotal       int            `json:"subtotal"`
	DeliveryFee    int            `json:"delivery_fee"`
	GrandTotal     int            `json:"total"`
	Customer       UserSession    `json:"customer"`
	Notes          string         `json:"notes,omitempty"`
	PlacedAt       time.Time      `json:"placed_at"`
}

// OrderHistory is append-only.
type OrderHistory struct {
	Orders []DraftOrder `json:"orders"`
}

func (h OrderHistory) Find(id string) (DraftOrder, bool) {
	for _, order := range h.Orders {
		if order.ID == id {
			return order, true
		}
	}
	return DraftOrder{}, false
}

type Quote struct {
	Lines          []QuoteLine    `json:"items"`
	DeliveryOption DeliveryOption `json:"delivery_option,omitempty"`
	Subtotal       int            `json:"subtotal"`
	DeliveryFee    int            `json:"delivery_fee"`
	GrandTotal     int            `json:"total"`
}

type QuoteLine struct {
	CartLine
	LineTotal int `json:"line_total"`
}

type OrderEvent struct {
	Type           string         `json:"type"`
	OrderID        string         `json:"order_id"`
	CustomerEmail  string         `json:"customer_email"`
	DeliveryOption DeliveryOption `json:"delivery_option"`
	ItemCount      int            `json:"item_count"`
	Total          int            `json:"total"`
	Timestamp      time.Time      `json:"timestamp"`
}
