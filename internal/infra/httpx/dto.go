package httpx

// Request DTOs. The order and payment payloads intentionally carry no
// price or amount fields; unknown JSON keys are discarded during decoding,
// so a client-supplied price never reaches the core.

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"role_id,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateRoleRequest struct {
	Name string `json:"name"`
}

type CustomerRequest struct {
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductRequest struct {
	Name        string `json:"name"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
	Price       string `json:"price"`
	IsAvailable bool   `json:"is_available"`
}

type CreateOrderRequest struct {
	CustomerID      string                   `json:"customer_id"`
	ShippingAddress string                   `json:"shipping_address"`
	CustomerNotes   string                   `json:"customer_notes"`
	Items           []CreateOrderItemRequest `json:"items"`
}

type CreateOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreatePaymentRequest struct {
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
