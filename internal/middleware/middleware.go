package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AlenaMolokova/payhook/internal/auth"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/storage"
	"github.com/AlenaMolokova/payhook/internal/utils"
)

var ErrForbidden = errors.New("forbidden")

type claimsKey struct{}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type UserGetter interface {
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

// Guard turns a bearer header into caller identity and enforces the admin gate.
type Guard struct {
	tokens TokenVerifier
	users  UserGetter
	log    *slog.Logger
}

func NewGuard(tokens TokenVerifier, users UserGetter, log *slog.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, log: log}
}

func (g *Guard) Authenticate(header string) (*auth.Claims, error) {
	token, err := auth.ExtractBearer(header)
	if err != nil {
		return nil, err
	}
	return g.tokens.Verify(token)
}

// AuthorizeAdmin re-reads the user so a revoked admin flag takes effect
// before the token expires. The is_admin claim is ignored here.
func (g *Guard) AuthorizeAdmin(ctx context.Context, claims *auth.Claims) error {
	user, err := g.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// Auth rejects requests without a valid bearer token with 401.
func (g *Guard) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			g.log.Info("unauthenticated request",
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly must run after Auth.
func (g *Guard) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r)
		if !ok {
			utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := g.AuthorizeAdmin(r.Context(), claims); err != nil {
			if errors.Is(err, ErrForbidden) {
				g.log.Warn("admin route denied", slog.Int64("user_id", claims.UserID), slog.String("path", r.URL.Path))
				utils.WriteJSONError(w, http.StatusForbidden, "Forbidden")
				return
			}
			g.log.Error("admin check failed", slog.Any("error", err))
			utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "Invalid token"
	default:
		return "Unauthorized"
	}
}

func GetClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

func GetUserID(r *http.Request) (int64, bool) {
	claims, ok := GetClaims(r)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
