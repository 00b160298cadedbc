package domain

// PaymentMethod is the payment option chosen at checkout
type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "cod"
	PaymentMethodUPIID PaymentMethod = "upi-id"
	PaymentMethodUPIQR PaymentMethod = "upi-qr"
)

// IsValid checks if the payment method is one of the supported options
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodUPIID, PaymentMethodUPIQR:
		return true
	default:
		return false
	}
}

// Brand returns the display brand for the method
func (m PaymentMethod) Brand() string {
	switch m {
	case PaymentMethodCOD:
		return "COD"
	case PaymentMethodUPIID:
		return "UPI"
	case PaymentMethodUPIQR:
		return "UPI-QR"
	default:
		return ""
	}
}

// CheckoutState represents the state of a checkout attempt
type CheckoutState string

const (
	CheckoutStateIdle         CheckoutState = "IDLE"
	CheckoutStateMethodChosen CheckoutState = "METHOD_CHOSEN"
	CheckoutStateProcessing   CheckoutState = "PROCESSING"
	CheckoutStateAwaitingQR   CheckoutState = "AWAITING_CONFIRMATION"
	CheckoutStateSubmitting   CheckoutState = "SUBMITTING"
	CheckoutStateCompleted    CheckoutState = "COMPLETED"
	CheckoutStateFailed       CheckoutState = "FAILED"
)

func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal reports whether the state ends the current checkout attempt.
// A new attempt restarts from IDLE or METHOD_CHOSEN.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateCompleted || s == CheckoutStateFailed
}

// CanTransitionTo checks if a state transition is valid
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutStateIdle:
		return next == CheckoutStateMethodChosen
	case CheckoutStateMethodChosen:
		return next == CheckoutStateMethodChosen ||
			next == CheckoutStateProcessing ||
			next == CheckoutStateAwaitingQR ||
			next == CheckoutStateSubmitting
	case CheckoutStateProcessing:
		return next == CheckoutStateSubmitting
	case CheckoutStateAwaitingQR:
		return next == CheckoutStateSubmitting ||
			next == CheckoutStateMethodChosen
	case CheckoutStateSubmitting:
		return next == CheckoutStateCompleted ||
			next == CheckoutStateFailed
	case CheckoutStateCompleted, CheckoutStateFailed:
		return next == CheckoutStateIdle ||
			next == CheckoutStateMethodChosen
	default:
		return false
	}
}
