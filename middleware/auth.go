package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

// CurrentUser is the identity embedded in a verified token.
type CurrentUser struct {
	ID       int
	Username string
	Email    string
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate rejects the request with 401 unless it carries a valid
// bearer token. Missing header, wrong scheme, bad signature and expiry
// all collapse to the same unauthorized response.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.userFromRequest(r)
		if err != nil {
			writeUnauthorized(w, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// OptionalAuthenticate attaches the identity when a valid token is
// present and proceeds anonymously otherwise.
func (a *Authenticator) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := a.userFromRequest(r); err == nil {
			r = r.WithContext(withUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) userFromRequest(r *http.Request) (*CurrentUser, error) {
	tokenString, err := tokenFromRequest(r)
	if err != nil {
		return nil, err
	}
	return a.VerifyToken(tokenString)
}

// VerifyToken checks signature and expiry and extracts the identity claims.
func (a *Authenticator) VerifyToken(tokenString string) (*CurrentUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return nil, errors.New("missing or invalid user_id claim")
	}

	user := &CurrentUser{ID: int(userIDFloat)}
	if username, ok := claims["username"].(string); ok {
		user.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	return user, nil
}

// tokenFromRequest reads the bearer token from the Authorization header,
// falling back to a token query parameter for websocket upgrades.
func tokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			return token, nil
		}
		return "", errors.New("authorization header missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization format, expected: Bearer [token]")
	}
	return parts[1], nil
}

func withUser(ctx context.Context, user *CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the verified identity set by Authenticate.
func GetUserFromContext(ctx context.Context) (*CurrentUser, error) {
	user, ok := ctx.Value(userContextKey).(*CurrentUser)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
