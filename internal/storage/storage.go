package storage

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned when a slot has never been written.
var ErrSlotNotFound = errors.New("slot not found")

// Well-known slot keys. The cart key carries a version suffix so a future
// shape change can start from a clean slot.
const (
	SlotCart      = "shopit_cart_v1"
	SlotLastOrder = "lastOrder"
	SlotToken     = "token"
	SlotUser      = "user"
)

// SlotStore is a persisted key-value slot, the equivalent of the browser's
// local storage. Values are opaque JSON blobs owned by the caller.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
