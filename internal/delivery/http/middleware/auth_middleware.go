package middleware

import (
	"context"
	"net/http"
	"strings"

	"doctor-directory/pkg/jwt"
	"doctor-directory/pkg/response"
)

type contextKey string

const (
	ActorKey   contextKey = "actor"
	ScopeKey   contextKey = "scope"
	TokenIDKey contextKey = "token_id"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	jwtService TokenValidator
}

func NewAuthMiddleware(jwtService TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := WithActor(r.Context(), claims.Subject)
		ctx = context.WithValue(ctx, ScopeKey, claims.Scope)
		ctx = context.WithValue(ctx, TokenIDKey, claims.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor records who is performing the current request.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActorFromContext extracts the authenticated operator from context
func GetActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(ActorKey).(string)
	return actor, ok
}

// GetScopeFromContext extracts the token scope from context
func GetScopeFromContext(ctx context.Context) (string, bool) {
	scope, ok := ctx.Value(ScopeKey).(string)
	return scope, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
