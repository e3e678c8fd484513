package service_test

import (
	"bytes"
	"context"
	"testing"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/mocks"
	"overcooked-cart/cart-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{BaseURL: "http://localhost:8080/"}

	qr, err := gen.Generate("0192f3a4-7b4c-7000-8000-00000000abcd")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(qr, []byte("\x89PNG")), "QR code is a PNG image")
}

func TestReceiptService_QRCode(t *testing.T) {
	store, _ := newStore(t)
	_, _, orders := newPage(store)
	ctx := context.Background()
	require.NoError(t, orders.Append(ctx, domain.DraftOrder{ID: "order-1"}))

	qr := mocks.NewQRGenerator(t)
	qr.On("Generate", "order-1").Return([]byte("png"), nil).Once()
	receipts := service.NewReceiptService(orders, qr)

	image, err := receipts.QRCode(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), image)

	_, err = receipts.QRCode(ctx, "someone-elses-order")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
