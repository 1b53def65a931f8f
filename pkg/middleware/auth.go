package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"car-rental/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth verifies the bearer token and puts the authenticated client ID and
// role on the request context. Token issuance lives in the identity service;
// this middleware only verifies HS256 signatures against the shared secret.
func Auth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Invalid bearer token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token claims")
				return
			}

			subject, _ := claims["sub"].(string)
			clientID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("Token subject is not a client ID", zap.String("sub", subject))
				utils.ResponseUnauthorized(w, "Invalid token subject")
				return
			}

			role, _ := claims["role"].(string)
			if role != utils.RoleSupportAgent {
				role = utils.RoleClient
			}

			ctx := utils.SetIdentityContext(r.Context(), clientID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SupportAgent gates staff-only routes on the role set by Auth.
func SupportAgent(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetClientIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !utils.IsSupportAgent(r.Context()) {
				logger.Warn("Non-staff access attempt",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				utils.ResponseForbidden(w, "Support agent access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
