package database

import (
	"context"
	"errors"

	"github.com/fsobarzo/resto-orders/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func Connect(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		panic(err)
	}
	if err := pool.Ping(ctx); err != nil {
		panic(err)
	}
	return pool
}

func (r *Repo) DishesByIDs(ctx context.Context, ids []int64) ([]domain.Dish, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.name, d.price, rt.id, rt.name
		FROM dishes d
		LEFT JOIN restaurants rt ON rt.id = d.restaurant_id
		WHERE d.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var d domain.Dish
		var rtID *int64
		var rtName *string
		if err := rows.Scan(&d.ID, &d.Name, &d.Price, &rtID, &rtName); err != nil {
			return nil, err
		}
		if rtID != nil {
			d.Restaurant = &domain.Restaurant{ID: *rtID}
			if rtName != nil {
				d.Restaurant.Name = *rtName
			}
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

// RecentDishes returns the newest dishes, used to warm the dish cache.
func (r *Repo) RecentDishes(ctx context.Context, limit int) ([]domain.Dish, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.name, d.price, rt.id, rt.name
		FROM dishes d
		LEFT JOIN restaurants rt ON rt.id = d.restaurant_id
		ORDER BY d.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var d domain.Dish
		var rtID *int64
		var rtName *string
		if err := rows.Scan(&d.ID, &d.Name, &d.Price, &rtID, &rtName); err != nil {
			return nil, err
		}
		if rtID != nil {
			d.Restaurant = &domain.Restaurant{ID: *rtID}
			if rtName != nil {
				d.Restaurant.Name = *rtName
			}
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

func (r *Repo) CreateOrder(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID *int64
	if o.User != nil {
		userID = &o.User.ID
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (charge_id, token, address, city, state, amount, payment_method, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`, o.ChargeID, o.Token, o.Address, o.City, o.State, o.Amount, o.PaymentMethod, userID,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, d := range o.Dishes {
		batch.Queue(`INSERT INTO order_dishes (order_id, dish_id) VALUES ($1,$2)`, o.ID, d.ID)
	}
	if br := tx.SendBatch(ctx, batch); br != nil {
		if err := br.Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) Orders(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.queryOrders(ctx, `
		SELECT o.id, o.charge_id, o.address, o.city, o.state, o.amount, o.payment_method, o.created_at,
		       u.id, u.username, u.email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.id
	`)
	if err != nil {
		return nil, err
	}
	if err := r.attachDishes(ctx, orders, false); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repo) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	var uID *int64
	var uName, uEmail *string
	err := r.pool.QueryRow(ctx, `
		SELECT o.id, o.charge_id, o.address, o.city, o.state, o.amount, o.payment_method, o.created_at,
		       u.id, u.username, u.email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, id).Scan(&o.ID, &o.ChargeID, &o.Address, &o.City, &o.State, &o.Amount, &o.PaymentMethod,
		&o.CreatedAt, &uID, &uName, &uEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if uID != nil {
		o.User = &domain.User{ID: *uID}
		if uName != nil {
			o.User.Username = *uName
		}
		if uEmail != nil {
			o.User.Email = *uEmail
		}
	}
	return &o, nil
}

func (r *Repo) OrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.queryOrders(ctx, `
		SELECT o.id, o.charge_id, o.address, o.city, o.state, o.amount, o.payment_method, o.created_at,
		       u.id, u.username, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.id
	`, userID)
}

func (r *Repo) OrderHistory(ctx context.Context, userID int64) ([]domain.OrderSummary, error) {
	orders, err := r.queryOrders(ctx, `
		SELECT o.id, o.charge_id, o.address, o.city, o.state, o.amount, o.payment_method, o.created_at,
		       NULL::bigint, NULL::text, NULL::text
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.id
	`, userID)
	if err != nil {
		return nil, err
	}
	if err := r.attachDishes(ctx, orders, true); err != nil {
		return nil, err
	}

	summaries := make([]domain.OrderSummary, 0, len(orders))
	for _, o := range orders {
		dishes := o.Dishes
		if dishes == nil {
			dishes = []domain.Dish{}
		}
		summaries = append(summaries, domain.OrderSummary{
			ChargeID:      o.ChargeID,
			Amount:        o.Amount,
			Address:       o.Address,
			City:          o.City,
			State:         o.State,
			PaymentMethod: o.PaymentMethod,
			CreatedAt:     o.CreatedAt,
			Dishes:        dishes,
		})
	}
	return summaries, nil
}

func (r *Repo) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// queryOrders expects the column order used by every order select above:
// order fields followed by a nullable user triple.
func (r *Repo) queryOrders(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var uID *int64
		var uName, uEmail *string
		if err := rows.Scan(&o.ID, &o.ChargeID, &o.Address, &o.City, &o.State, &o.Amount,
			&o.PaymentMethod, &o.CreatedAt, &uID, &uName, &uEmail); err != nil {
			return nil, err
		}
		if uID != nil {
			o.User = &domain.User{ID: *uID}
			if uName != nil {
				o.User.Username = *uName
			}
			if uEmail != nil {
				o.User.Email = *uEmail
			}
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// attachDishes loads the dish relation for the given orders in one query.
// withRestaurant additionally expands each dish's restaurant name.
func (r *Repo) attachDishes(ctx context.Context, orders []domain.Order, withRestaurant bool) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		byID[orders[i].ID] = &orders[i]
	}

	sql := `
		SELECT od.order_id, d.id, d.name, d.price, NULL::bigint, NULL::text
		FROM order_dishes od
		JOIN dishes d ON d.id = od.dish_id
		WHERE od.order_id = ANY($1)
		ORDER BY od.order_id, d.id
	`
	if withRestaurant {
		sql = `
			SELECT od.order_id, d.id, d.name, d.price, rt.id, rt.name
			FROM order_dishes od
			JOIN dishes d ON d.id = od.dish_id
			LEFT JOIN restaurants rt ON rt.id = d.restaurant_id
			WHERE od.order_id = ANY($1)
			ORDER BY od.order_id, d.id
		`
	}

	rows, err := r.pool.Query(ctx, sql, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var d domain.Dish
		var rtID *int64
		var rtName *string
		if err := rows.Scan(&orderID, &d.ID, &d.Name, &d.Price, &rtID, &rtName); err != nil {
			return err
		}
		if rtID != nil {
			d.Restaurant = &domain.Restaurant{ID: *rtID}
			if rtName != nil {
				d.Restaurant.Name = *rtName
			}
		}
		if o, ok := byID[orderID]; ok {
			o.Dishes = append(o.Dishes, d)
		}
	}
	return rows.Err()
}
