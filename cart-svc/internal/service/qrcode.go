package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	qrData := strings.TrimRight(g.BaseURL, "/") + "/order-confirmation?order_id=" + url.QueryEscape(orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

type ReceiptService struct {
	orders *OrderHistoryRepository
	qr     QRGenerator
}

func NewReceiptService(orders *OrderHistoryRepository, qr QRGenerator) *ReceiptService {
	return &ReceiptService{orders: orders, qr: qr}
}

// QRCode only renders codes for orders present in the client's history.
func (s *ReceiptService) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(order.ID)
}
