package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fsobarzo/resto-orders/internal/application/service"
	"github.com/fsobarzo/resto-orders/internal/domain"
	"github.com/fsobarzo/resto-orders/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type OrderService interface {
	Create(ctx context.Context, req service.CreateOrderRequest, user *domain.User) (*domain.Order, service.CreateStats, error)
	Orders(ctx context.Context) ([]domain.Order, service.QueryStats, error)
	OrderByID(ctx context.Context, id int64) (*domain.Order, service.QueryStats, error)
	OrdersByUsername(ctx context.Context, username string) ([]domain.Order, service.QueryStats, error)
	OrderHistory(ctx context.Context, username string) ([]domain.OrderSummary, service.QueryStats, error)
}

type Server struct {
	service OrderService
	auth    *Auth
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
	origins []string
}

func New(service OrderService, auth *Auth, origins []string, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		service: service,
		auth:    auth,
		logger:  logger,
		metrics: metrics,
		origins: origins,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(ServerTimingApp(s.metrics))
	r.Use(CORS(s.origins))

	r.Route("/orders", func(r chi.Router) {
		// Order history is served without authentication.
		r.Get("/history/{username}", s.orderHistory)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)
			r.Get("/", s.listOrders)
			r.Post("/", s.createOrder)
			r.Get("/{id}", s.getOrder)
			r.Get("/by-user/{username}", s.ordersByUser)
		})
	})

	s.router = r
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia,
			"Content-Type must be application/json")
		return
	}

	var req service.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.logger.Warn("bad order payload", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "bad json")
		return
	}

	user := UserFromContext(r.Context())
	order, st, err := s.service.Create(r.Context(), req, user)
	if err != nil {
		s.writeCreateError(w, err)
		return
	}

	observability.AppendServerTiming(w, "charge", st.ChargeMs, "")
	observability.AppendServerTiming(w, "db_write", st.DBWriteMs, "")
	writeJSON(w, order)
}

func (s *Server) writeCreateError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var decl *domain.PaymentDeclinedError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, codeValidation, verr.Msg)
	case errors.As(err, &decl):
		writeError(w, http.StatusBadRequest, codePaymentDeclined, "Payment failed: "+decl.Reason)
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError,
			"An error occurred while processing the payment.")
	}
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, st, err := s.service.Orders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	observability.AppendServerTiming(w, "db", st.DBMs, "")
	writeJSON(w, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, "Invalid order id")
		return
	}

	order, st, err := s.service.OrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, codeOrderNotFound, "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternalError, "Failed to fetch order")
		return
	}

	observability.AppendServerTiming(w, "db", st.DBMs, "")
	writeJSON(w, order)
}

func (s *Server) ordersByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, codeUsernameRequired, "Username is required")
		return
	}

	orders, st, err := s.service.OrdersByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, codeUserNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternalError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	observability.AppendServerTiming(w, "db", st.DBMs, "")
	writeJSON(w, dataEnvelope{Data: orders})
}

func (s *Server) orderHistory(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, codeUsernameRequired, "Username is required")
		return
	}

	summaries, st, err := s.service.OrderHistory(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, codeUserNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternalError, "Failed to fetch order history")
		return
	}
	if summaries == nil {
		summaries = []domain.OrderSummary{}
	}

	observability.AppendServerTiming(w, "db", st.DBMs, "")
	writeJSON(w, dataEnvelope{Data: summaries})
}

type dataEnvelope struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
