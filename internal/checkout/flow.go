package checkout

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/backend"
	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/internal/storage"
	"github.com/shopit/shopclient/pkg/errors"
)

// CartStore is the slice of the cart store the flow needs: an immutable
// snapshot to compose from, and a clear after a confirmed submission.
type CartStore interface {
	Lines() []domain.CartLine
	Clear(ctx context.Context) error
}

// Submitter sends a composed order to the order-creation endpoint.
type Submitter interface {
	CreateOrder(ctx context.Context, payload *domain.OrderPayload) (*backend.CreateOrderResponse, error)
}

// Flow drives one checkout attempt through its states. A method is chosen,
// confirmation runs the method-specific path, and the order is submitted.
// The cart is cleared only after a confirmed successful submission; a failed
// attempt preserves cart and form state so the user can retry.
type Flow struct {
	composer *Composer
	cart     CartStore
	api      Submitter
	slots    storage.SlotStore
	logger   *zap.Logger

	processingDelay time.Duration
	sleep           func(time.Duration)

	mu      sync.Mutex
	state   domain.CheckoutState
	method  domain.PaymentMethod
	pending *domain.OrderPayload // composed payload awaiting QR confirmation
}

// NewFlow creates a checkout flow in the IDLE state.
func NewFlow(composer *Composer, cart CartStore, api Submitter, slots storage.SlotStore, processingDelay time.Duration, logger *zap.Logger) *Flow {
	return &Flow{
		composer:        composer,
		cart:            cart,
		api:             api,
		slots:           slots,
		logger:          logger,
		processingDelay: processingDelay,
		sleep:           time.Sleep,
		state:           domain.CheckoutStateIdle,
	}
}

// State returns the current checkout state.
func (f *Flow) State() domain.CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Method returns the currently chosen payment method.
func (f *Flow) Method() domain.PaymentMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.method
}

// SelectMethod chooses (or changes) the payment method. Allowed from IDLE,
// METHOD_CHOSEN, the QR wait (abandoning the parked payload) and the terminal
// states, which start a new attempt; rejected while processing or submitting.
func (f *Flow) SelectMethod(method domain.PaymentMethod) error {
	if !method.IsValid() {
		return &errors.ValidationError{Field: "paymentMethod", Message: "unknown payment method"}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.state.CanTransitionTo(domain.CheckoutStateMethodChosen) && f.state != domain.CheckoutStateMethodChosen {
		return &errors.ErrInvalidStateTransition{From: f.state, To: domain.CheckoutStateMethodChosen}
	}

	f.state = domain.CheckoutStateMethodChosen
	f.method = method
	f.pending = nil
	return nil
}

// Confirm runs the chosen method's confirmation path. Cash on delivery
// submits directly. UPI by id validates the identifier, simulates payment
// processing and then submits. UPI by QR composes the payload and waits for
// ConfirmQRPaid. Validation failures leave the flow in METHOD_CHOSEN.
func (f *Flow) Confirm(ctx context.Context, billing domain.Billing, upiID string) error {
	f.mu.Lock()

	// A failed attempt keeps its method; confirming again retries it.
	if f.state == domain.CheckoutStateFailed && f.method.IsValid() {
		f.state = domain.CheckoutStateMethodChosen
	}
	if f.state != domain.CheckoutStateMethodChosen {
		from := f.state
		f.mu.Unlock()
		return &errors.ErrInvalidStateTransition{From: from, To: domain.CheckoutStateSubmitting}
	}

	method := f.method
	payload, err := f.composer.Compose(f.cart.Lines(), billing, method, upiID)
	if err != nil {
		f.mu.Unlock()
		return err
	}

	switch method {
	case domain.PaymentMethodCOD:
		f.state = domain.CheckoutStateSubmitting
		f.mu.Unlock()
		return f.submit(ctx, payload)

	case domain.PaymentMethodUPIID:
		f.state = domain.CheckoutStateProcessing
		f.mu.Unlock()

		// Simulated payment confirmation delay.
		f.sleep(f.processingDelay)

		f.mu.Lock()
		f.state = domain.CheckoutStateSubmitting
		f.mu.Unlock()
		return f.submit(ctx, payload)

	case domain.PaymentMethodUPIQR:
		f.state = domain.CheckoutStateAwaitingQR
		f.pending = payload
		f.mu.Unlock()
		return nil

	default:
		f.mu.Unlock()
		return &errors.ValidationError{Field: "paymentMethod", Message: "choose a payment method"}
	}
}

// ConfirmQRPaid is the user-asserted "I have paid" from the QR view.
func (f *Flow) ConfirmQRPaid(ctx context.Context) error {
	f.mu.Lock()
	if f.state != domain.CheckoutStateAwaitingQR || f.pending == nil {
		from := f.state
		f.mu.Unlock()
		return &errors.ErrInvalidStateTransition{From: from, To: domain.CheckoutStateSubmitting}
	}
	payload := f.pending
	f.pending = nil
	f.state = domain.CheckoutStateSubmitting
	f.mu.Unlock()

	return f.submit(ctx, payload)
}

// CancelQR dismisses the QR view and returns to method selection.
func (f *Flow) CancelQR() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != domain.CheckoutStateAwaitingQR {
		return &errors.ErrInvalidStateTransition{From: f.state, To: domain.CheckoutStateMethodChosen}
	}
	f.state = domain.CheckoutStateMethodChosen
	f.pending = nil
	return nil
}

// Reset abandons the current attempt and returns to IDLE. The cart is left
// untouched.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = domain.CheckoutStateIdle
	f.method = ""
	f.pending = nil
}

// submit sends the payload; on success it caches the payload for the receipt
// view and clears the cart, on failure it preserves everything for a retry.
func (f *Flow) submit(ctx context.Context, payload *domain.OrderPayload) error {
	resp, err := f.api.CreateOrder(ctx, payload)
	if err != nil {
		f.logger.Warn("Order submission failed", zap.String("order_id", payload.OrderID), zap.Error(err))
		f.mu.Lock()
		f.state = domain.CheckoutStateFailed
		f.mu.Unlock()
		return err
	}

	if data, err := json.Marshal(payload); err == nil {
		if err := f.slots.Set(ctx, storage.SlotLastOrder, data); err != nil {
			f.logger.Warn("Failed to cache order for receipt view", zap.Error(err))
		}
	}

	if err := f.cart.Clear(ctx); err != nil {
		f.logger.Warn("Failed to clear cart after order", zap.Error(err))
	}

	f.mu.Lock()
	f.state = domain.CheckoutStateCompleted
	f.mu.Unlock()

	f.logger.Info("Order placed",
		zap.String("order_id", payload.OrderID),
		zap.Float64("total", payload.Total),
		zap.String("backend_message", resp.Message),
	)
	return nil
}

// LastOrder reads the cached receipt payload. A missing or corrupt slot
// reports not found rather than failing.
func (f *Flow) LastOrder(ctx context.Context) (*domain.OrderPayload, error) {
	data, err := f.slots.Get(ctx, storage.SlotLastOrder)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "last order"}
	}

	var payload domain.OrderPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		f.logger.Warn("Cached order is corrupt", zap.Error(err))
		return nil, &errors.ErrNotFound{Resource: "last order"}
	}
	return &payload, nil
}
