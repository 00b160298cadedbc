package domain

// CartLine represents one distinct product in the cart
type CartLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Qty       int     `json:"qty"`
}

// OrderItem is a cart line copied into an order at composition time
type OrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Image     string  `json:"image,omitempty"`
}

// Billing holds the shipping/contact form fields entered by the user
type Billing struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// Payment holds the chosen method plus derived display fields. No real
// payment data is transmitted or stored.
type Payment struct {
	Brand  string        `json:"brand"`
	Last4  string        `json:"last4"`
	Method PaymentMethod `json:"method"`
}

// OrderPayload is the immutable priced order record built once at checkout.
// It is sent to the backend and cached locally for the receipt view; it is
// never mutated after creation.
type OrderPayload struct {
	OrderID          string      `json:"orderId"`
	Items            []OrderItem `json:"items"`
	OriginalSubtotal float64     `json:"originalSubtotal"`
	Subtotal         float64     `json:"subtotal"`
	Discount         float64     `json:"discount"`
	Shipping         float64     `json:"shipping"`
	Total            float64     `json:"total"`
	Billing          Billing     `json:"billing"`
	Payment          Payment     `json:"payment"`
	CreatedAt        string      `json:"createdAt"`
}

// Product is the backend catalog record shape
type Product struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Order is the backend's order record as read back for tracking views.
// Status changes after submission are the backend's concern, not the
// payload's.
type Order struct {
	ID      string `json:"_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	OrderPayload
}

// UserProfile holds display-only identity fields persisted after login
type UserProfile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
