package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"car-rental/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	Auth(testSecret, zap.NewNop())(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthValidToken(t *testing.T) {
	clientID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": clientID.String()})

	rec, captured := runAuth(t, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	gotID, ok := utils.GetClientIDFromContext(captured.Context())
	require.True(t, ok)
	assert.Equal(t, clientID, gotID)
	assert.False(t, utils.IsSupportAgent(captured.Context()), "missing role defaults to client")
}

func TestAuthSupportAgentRole(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": utils.RoleSupportAgent,
	})

	rec, captured := runAuth(t, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, utils.IsSupportAgent(captured.Context()))
}

func TestAuthUnknownRoleDowngraded(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "superadmin",
	})

	rec, captured := runAuth(t, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, utils.IsSupportAgent(captured.Context()))
}

func TestAuthRejections(t *testing.T) {
	goodSub := uuid.New().String()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"sub": goodSub})},
		{"non-uuid subject", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "bob"})},
		{"missing subject", "Bearer " + signToken(t, testSecret, jwt.MapClaims{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := runAuth(t, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestSupportAgentGate(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := SupportAgent(zap.NewNop())(next)

	// No identity at all.
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated client without the staff role.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	req = req.WithContext(utils.SetIdentityContext(req.Context(), uuid.New(), utils.RoleClient))
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Support agent passes.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	req = req.WithContext(utils.SetIdentityContext(req.Context(), uuid.New(), utils.RoleSupportAgent))
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
