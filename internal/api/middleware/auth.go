package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/api/handlers"
)

const (
	headerAuthorization = "Authorization"
	headerUserID        = "X-User-ID"
)

type userIDKey struct{}

var (
	errNoCredentials = errors.New("no credentials")
	errBadToken      = errors.New("invalid or expired token")
)

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID достает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// Claims claims токена владельца мастерской, ID пользователя в sub
type Claims struct {
	jwt.RegisteredClaims
}

// Auth аутентифицирует владельцев мастерских.
//
// Bearer токен (HS256, sub = UUID пользователя) проверяется, если задан secret.
// Заголовок X-User-ID принимается только при allowHeader, для внутренних
// вызовов из-за API gateway.
func Auth(secret string, allowHeader bool) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authenticate(r, key, allowHeader)
			if err != nil {
				handlers.RespondUnauthorized(w, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func authenticate(r *http.Request, key []byte, allowHeader bool) (uuid.UUID, error) {
	if header := r.Header.Get(headerAuthorization); header != "" && len(key) > 0 {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return uuid.Nil, errors.New("invalid authorization header format")
		}
		return parseToken(strings.TrimSpace(token), key)
	}

	if allowHeader {
		if raw := r.Header.Get(headerUserID); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil || userID == uuid.Nil {
				return uuid.Nil, errors.New("invalid X-User-ID header")
			}
			return userID, nil
		}
	}

	return uuid.Nil, errNoCredentials
}

func parseToken(tokenString string, key []byte) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, errBadToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, errBadToken
	}
	return userID, nil
}
