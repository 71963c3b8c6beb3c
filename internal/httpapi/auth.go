package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/fsobarzo/resto-orders/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type ctxKey int

const userKey ctxKey = iota

// UserResolver loads the authenticated user behind a token's id claim.
type UserResolver interface {
	UserByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth resolves an optional bearer JWT into a user on the request context.
// Identity is owned by an external service; this middleware only verifies
// the token signature and loads the referenced user. It never rejects a
// request: anything short of a resolvable valid token means guest.
type Auth struct {
	secret []byte
	users  UserResolver
	logger *zap.Logger
}

func NewAuth(secret string, users UserResolver, logger *zap.Logger) *Auth {
	return &Auth{
		secret: []byte(secret),
		users:  users,
		logger: logger,
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := a.userFromRequest(r); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), userKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) userFromRequest(r *http.Request) *domain.User {
	if len(a.secret) == 0 || a.users == nil {
		return nil
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		a.logger.Warn("rejected bearer token, treating request as guest", zap.Error(err))
		return nil
	}

	id, ok := claims["id"].(float64)
	if !ok {
		a.logger.Warn("bearer token without numeric id claim")
		return nil
	}

	user, err := a.users.UserByID(r.Context(), int64(id))
	if err != nil {
		a.logger.Warn("token user not found, treating request as guest",
			zap.Int64("user_id", int64(id)),
			zap.Error(err),
		)
		return nil
	}
	return user
}

// UserFromContext returns the authenticated user, or nil for guests.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}
