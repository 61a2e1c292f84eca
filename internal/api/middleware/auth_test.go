package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func serveAuth(allowHeader bool, setup func(r *http.Request)) (*httptest.ResponseRecorder, uuid.UUID) {
	var seen uuid.UUID
	h := Auth(testSecret, allowHeader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/shops/x/bookings", nil)
	setup(req)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuth_ValidBearerToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userID.String(), time.Now().Add(time.Hour))

	rec, seen := serveAuth(false, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, seen)
}

func TestAuth_RejectsBadTokens(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name   string
		header string
	}{
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userID, time.Now().Add(-time.Hour))},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), userID, time.Now().Add(time.Hour))},
		{"wrong algorithm", "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), userID, time.Now().Add(time.Hour))},
		{"subject not uuid", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "alice", time.Now().Add(time.Hour))},
		{"no bearer prefix", "Token abc"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := serveAuth(true, func(r *http.Request) {
				r.Header.Set("Authorization", tt.header)
			})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, uuid.Nil, seen)
		})
	}
}

func TestAuth_UserIDHeader(t *testing.T) {
	userID := uuid.New()

	t.Run("allowed", func(t *testing.T) {
		rec, seen := serveAuth(true, func(r *http.Request) {
			r.Header.Set("X-User-ID", userID.String())
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, seen)
	})

	t.Run("disabled", func(t *testing.T) {
		rec, _ := serveAuth(false, func(r *http.Request) {
			r.Header.Set("X-User-ID", userID.String())
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		rec, _ := serveAuth(true, func(r *http.Request) {
			r.Header.Set("X-User-ID", "not-a-uuid")
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuth_NoCredentials(t *testing.T) {
	rec, _ := serveAuth(true, func(r *http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
