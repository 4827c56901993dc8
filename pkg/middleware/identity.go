package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/errors"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/httputil"
)

type identityKey struct{}

// Claims is the caller identity carried by a bearer token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenValidator turns a raw bearer token into Claims.
type TokenValidator func(token string) (*Claims, error)

// ErrInvalidToken is returned by validators for any unusable token.
var ErrInvalidToken = errors.New("invalid or expired token")

type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTValidator validates HS256/384/512 tokens signed with secret. The
// user id is read from the user_id claim, falling back to sub.
func NewJWTValidator(secret string) TokenValidator {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))

	return func(raw string) (*Claims, error) {
		var tc tokenClaims
		token, err := parser.ParseWithClaims(raw, &tc, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}

		uid := tc.UserID
		if uid == "" {
			uid = tc.Subject
		}
		if uid == "" {
			return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
		}
		return &Claims{UserID: uid, Email: tc.Email, Role: tc.Role}, nil
	}
}

// Identity resolves the caller from the Authorization header. Requests
// without the header pass through anonymously so that each operation can
// decide whether it needs a caller; a header that is present but invalid is
// rejected with 401.
func Identity(validate TokenValidator, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid authorization header format"), l)
				return
			}

			claims, err := validate(strings.TrimSpace(raw))
			if err != nil {
				l.WarnContext(r.Context(), "rejected bearer token",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid or expired token"), l)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims stores the caller identity in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, identityKey{}, c)
}

// ClaimsFromContext returns the caller identity, or nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(identityKey{}).(*Claims)
	return c
}

// UserIDFromContext returns the caller id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.UserID
	}
	return ""
}
