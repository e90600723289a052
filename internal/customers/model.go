package customers

import "time"

// Customer is a saved billing party, used to prefill the invoice form.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCustomerRequest carries the fields accepted on create.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Mobile  string `json:"mobile" validate:"required,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=500"`
	GSTIN   string `json:"gstin" validate:"omitempty,len=15"`
}

// ListCustomersRequest narrows customer listings.
type ListCustomersRequest struct {
	Search string
	Limit  int
	Offset int
}
