package domain

import "time"

// Order statuses.
const (
	OrderStatusCreated  = "created"
	OrderStatusComplete = "complete"
)

// Contact type discriminator values.
const (
	ContactTypeIndividual  = "individual"
	ContactTypeLegalEntity = "legal_entity"
)

// Order is immutable once created. TotalPrice is computed once at
// creation from the cart snapshot and never recomputed.
type Order struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
}

// Address holds the delivery address attached to an order.
type Address struct {
	ID                int64  `json:"id"`
	OrderID           int64  `json:"-"`
	City              string `json:"city"`
	Street            string `json:"street"`
	HouseNumber       string `json:"house_number"`
	ApartmentOrOffice string `json:"apartment_or_office"`
	Entrance          string `json:"entrance"`
	Floor             string `json:"floor"`
	Intercom          string `json:"intercom"`
	DeliveryComments  string `json:"delivery_comments"`
}

// Contact is the tagged union of the two contact variants. Exactly one
// variant is attached per order; Type selects which, and the legal
// entity fields are only meaningful when Type is legal_entity.
type Contact struct {
	Type               string `json:"type"`
	Surname            string `json:"surname"`
	Name               string `json:"name"`
	Patronymic         string `json:"patronymic"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	LegalAddress       string `json:"legal_address,omitempty"`
	OrganizationName   string `json:"organization_name,omitempty"`
}

// DisplayName renders the contact the way the operator channel shows
// it: "Surname Name Patronymic".
func (c Contact) DisplayName() string {
	return c.Surname + " " + c.Name + " " + c.Patronymic
}

// OrderItem is an immutable snapshot of one cart line at checkout.
// Quantity is copied from the cart; the price is not snapshotted per
// line, only the order-level total is.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"-"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
