package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("no active session")
	ErrValidation      = errors.New("validation failed")
	ErrFetchFailure    = errors.New("provider request failed")
	ErrStorageFailure  = errors.New("durable store failure")
	ErrCorruptState    = errors.New("stored state is corrupt")
	ErrOrderNotFound   = errors.New("order not found")
	ErrDishNotFound    = errors.New("dish not found")

	ErrEmptyCart             = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrInvalidDeliveryOption = fmt.Errorf("%w: delivery option must be delivery or pickup", ErrValidation)
	ErrQuantityLimit         = fmt.Errorf("%w: at most %d of a dish per order", ErrValidation, MaxQuantity)
)

// Retryable reports whether the user may simply re-trigger the action.
func Retryable(err error) bool {
	return errors.Is(err, ErrFetchFailure) || errors.Is(err, ErrStorageFailure)
}
