package domain

import "time"

type Restaurant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Dish is read-only reference data: created and managed by the menu
// service, never written from here.
type Dish struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Price      int64       `json:"price"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

// User is owned by the external identity service; this service only reads it
// to attribute or look up orders.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Order is a persisted record of a completed (charged) purchase. Amount is
// always in integer minor currency units and always equals the amount
// actually charged. Orders are create-only.
type Order struct {
	ID            int64     `json:"id"`
	ChargeID      string    `json:"charge_id"`
	Token         string    `json:"-"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Dishes        []Dish    `json:"dishes,omitempty"`
	User          *User     `json:"user,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderSummary is the projection served by the order-history endpoint:
// a fixed field subset plus dishes with their restaurant names.
type OrderSummary struct {
	ChargeID      string    `json:"charge_id"`
	Amount        int64     `json:"amount"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	Dishes        []Dish    `json:"dishes"`
}
