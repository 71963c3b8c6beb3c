package domain

import (
	"context"
)

// OrderRepository exposes only the query shapes the handlers need instead of
// a general filter/populate DSL.
type OrderRepository interface {
	// DishesByIDs returns the dishes whose ids are in the given set.
	// Missing ids are simply absent from the result, never an error.
	DishesByIDs(ctx context.Context, ids []int64) ([]Dish, error)

	// CreateOrder persists a new order and fills in its id, creation time
	// and (when the order carries a user id) the owning user relation.
	CreateOrder(ctx context.Context, order *Order) error

	// Orders returns all orders with relations expanded one level deep.
	Orders(ctx context.Context) ([]Order, error)

	// OrderByID returns one order with the owning user projected to
	// username/email, or ErrOrderNotFound.
	OrderByID(ctx context.Context, id int64) (*Order, error)

	// OrdersByUser returns the orders owned by the given user with the user
	// relation expanded.
	OrdersByUser(ctx context.Context, userID int64) ([]Order, error)

	// OrderHistory returns the projected order summaries for the given user,
	// dishes expanded together with their restaurant names.
	OrderHistory(ctx context.Context, userID int64) ([]OrderSummary, error)

	// UserByUsername resolves a user by exact username, or ErrUserNotFound.
	UserByUsername(ctx context.Context, username string) (*User, error)

	// UserByID resolves a user by id, or ErrUserNotFound.
	UserByID(ctx context.Context, id int64) (*User, error)
}

type DishCache interface {
	Get(id int64) (Dish, bool)
	Set(dish Dish)
}
