package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fsobarzo/resto-orders/internal/domain"
	"github.com/fsobarzo/resto-orders/internal/observability"
	"github.com/fsobarzo/resto-orders/internal/payment"
	"go.uber.org/zap"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

const chargeCurrency = "usd"

type Gateway interface {
	Charge(ctx context.Context, req payment.ChargeRequest) (*payment.Charge, error)
}

type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
}

// CreateOrderRequest is the order-submission payload. Amount may be
// fractional; the rounded value is the amount of record.
type CreateOrderRequest struct {
	Address string    `json:"address"`
	Amount  float64   `json:"amount"`
	Dishes  []DishRef `json:"dishes"`
	Token   string    `json:"token"`
	City    string    `json:"city"`
	State   string    `json:"state"`
}

type DishRef struct {
	ID int64 `json:"id"`
}

type Service struct {
	repo      domain.OrderRepository
	cache     domain.DishCache
	gateway   Gateway
	publisher EventPublisher
	logger    *zap.Logger
	metrics   observability.Metrics
	now       func() time.Time
}

func NewService(
	repo domain.OrderRepository,
	cache domain.DishCache,
	gateway Gateway,
	publisher EventPublisher,
	logger *zap.Logger,
	metrics observability.Metrics,
) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Create runs the order-creation workflow: validate the requested dishes,
// charge the card, persist the order. Validation strictly precedes the
// charge and the charge strictly precedes persistence, so an unfulfillable
// order is never charged and an unpaid order is never stored.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest, user *domain.User) (*domain.Order, CreateStats, error) {
	var st CreateStats

	if strings.TrimSpace(req.Token) == "" {
		s.logger.Warn("order rejected: missing payment token",
			zap.String("city", req.City),
			zap.Int("dish_count", len(req.Dishes)),
		)
		return nil, st, &domain.ValidationError{Msg: "Payment token is required."}
	}

	amount := int64(math.Round(req.Amount))

	dishes, missing, err := s.resolveDishes(ctx, req.Dishes)
	if err != nil {
		s.logger.Error("dish lookup failed", zap.Error(err))
		return nil, st, fmt.Errorf("dish lookup: %w", err)
	}
	if len(missing) > 0 {
		s.logger.Warn("order rejected: unknown dish ids",
			zap.Int64s("missing_dish_ids", missing),
		)
		return nil, st, domain.Validationf(
			"The following dish IDs do not exist: %s", joinIDs(missing))
	}

	submitted, err := json.Marshal(req.Dishes)
	if err != nil {
		return nil, st, fmt.Errorf("encode dish metadata: %w", err)
	}

	userLabel := "guest"
	if user != nil {
		userLabel = strconv.FormatInt(user.ID, 10)
	}

	tCharge := time.Now()
	charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		Amount:      amount,
		Currency:    chargeCurrency,
		Description: fmt.Sprintf("Order %s by %s", s.now().Format(time.RFC1123), userLabel),
		Source:      req.Token,
		Metadata: map[string]string{
			"dishes": string(submitted),
		},
	})
	st.ChargeMs = convertToMs(tCharge)
	if err != nil {
		s.metrics.ObserveCreate(st.ChargeMs, 0, false)
		s.logger.Error("charge failed",
			zap.Error(err),
			zap.Int64("amount", amount),
			zap.String("user", userLabel),
		)
		return nil, st, err
	}

	method := charge.CardBrand
	if method == "" {
		method = "Unknown"
	}

	order := &domain.Order{
		ChargeID:      charge.ID,
		Token:         req.Token,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Amount:        amount,
		PaymentMethod: method,
		Dishes:        dishes,
		User:          user,
	}

	tWrite := time.Now()
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		st.DBWriteMs = convertToMs(tWrite)
		s.metrics.ObserveCreate(st.ChargeMs, st.DBWriteMs, false)
		// The card has been charged at this point; keep the charge id in the
		// log so the payment can be reconciled by hand.
		s.logger.Error("order write failed after successful charge",
			zap.Error(err),
			zap.String("charge_id", charge.ID),
			zap.Int64("amount", amount),
			zap.String("user", userLabel),
		)
		return nil, st, fmt.Errorf("persist order: %w", err)
	}
	st.DBWriteMs = convertToMs(tWrite)

	if s.publisher != nil {
		if err := s.publisher.OrderCreated(ctx, order); err != nil {
			s.metrics.ObserveEvent(false)
			s.logger.Warn("order event publish failed",
				zap.Error(err),
				zap.Int64("order_id", order.ID),
			)
		} else {
			s.metrics.ObserveEvent(true)
		}
	}

	s.metrics.ObserveCreate(st.ChargeMs, st.DBWriteMs, true)
	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("charge_id", charge.ID),
		zap.Int64("amount", amount),
		zap.String("payment_method", method),
		zap.String("user", userLabel),
		zap.Float64("charge_ms", st.ChargeMs),
		zap.Float64("db_write_ms", st.DBWriteMs),
	)

	return order, st, nil
}

// resolveDishes looks up every distinct requested dish, cache first, and
// reports the ids that do not exist in first-requested order. Duplicates in
// the request collapse to a single validated dish.
func (s *Service) resolveDishes(ctx context.Context, refs []DishRef) ([]domain.Dish, []int64, error) {
	seen := make(map[int64]bool, len(refs))
	unique := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if !seen[ref.ID] {
			seen[ref.ID] = true
			unique = append(unique, ref.ID)
		}
	}

	resolved := make(map[int64]domain.Dish, len(unique))
	var toFetch []int64
	for _, id := range unique {
		if dish, ok := s.cache.Get(id); ok {
			s.metrics.IncDishCacheHit()
			resolved[id] = dish
			continue
		}
		s.metrics.IncDishCacheMiss()
		toFetch = append(toFetch, id)
	}

	if len(toFetch) > 0 {
		found, err := s.repo.DishesByIDs(ctx, toFetch)
		if err != nil {
			return nil, nil, err
		}
		for _, dish := range found {
			s.cache.Set(dish)
			resolved[dish.ID] = dish
		}
	}

	var dishes []domain.Dish
	var missing []int64
	for _, id := range unique {
		if dish, ok := resolved[id]; ok {
			dishes = append(dishes, dish)
		} else {
			missing = append(missing, id)
		}
	}
	return dishes, missing, nil
}

// Orders returns every order with relations expanded one level.
func (s *Service) Orders(ctx context.Context) ([]domain.Order, QueryStats, error) {
	var st QueryStats

	t0 := time.Now()
	orders, err := s.repo.Orders(ctx)
	st.DBMs = convertToMs(t0)
	if err != nil {
		s.logger.Error("order list failed", zap.Error(err))
		return nil, st, err
	}

	s.metrics.ObserveQuery("list", st.DBMs)
	return orders, st, nil
}

// OrderByID returns one order with the owning user projected to
// username/email.
func (s *Service) OrderByID(ctx context.Context, id int64) (*domain.Order, QueryStats, error) {
	var st QueryStats

	t0 := time.Now()
	order, err := s.repo.OrderByID(ctx, id)
	st.DBMs = convertToMs(t0)
	if err != nil {
		s.logger.Warn("order lookup failed",
			zap.Int64("order_id", id),
			zap.Error(err),
		)
		return nil, st, err
	}

	s.metrics.ObserveQuery("get", st.DBMs)
	return order, st, nil
}

// OrdersByUsername resolves the user by exact username and returns their
// orders with the user relation expanded.
func (s *Service) OrdersByUsername(ctx context.Context, username string) ([]domain.Order, QueryStats, error) {
	var st QueryStats

	t0 := time.Now()
	user, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		st.DBMs = convertToMs(t0)
		s.logger.Warn("user lookup failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, st, err
	}

	orders, err := s.repo.OrdersByUser(ctx, user.ID)
	st.DBMs = convertToMs(t0)
	if err != nil {
		s.logger.Error("orders by user failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, st, err
	}

	s.metrics.ObserveQuery("by_user", st.DBMs)
	return orders, st, nil
}

// OrderHistory resolves the user and returns their projected order
// summaries, dishes expanded with restaurant names.
func (s *Service) OrderHistory(ctx context.Context, username string) ([]domain.OrderSummary, QueryStats, error) {
	var st QueryStats

	t0 := time.Now()
	user, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		st.DBMs = convertToMs(t0)
		s.logger.Warn("user lookup failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, st, err
	}

	summaries, err := s.repo.OrderHistory(ctx, user.ID)
	st.DBMs = convertToMs(t0)
	if err != nil {
		s.logger.Error("order history failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, st, err
	}

	s.metrics.ObserveQuery("history", st.DBMs)
	return summaries, st, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
