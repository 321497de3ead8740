// Package session identifies browser carts with signed tokens. A session is
// nothing more than a cart id wrapped in an HS256 JWT carried in a cookie;
// there are no user accounts.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie carrying the cart token.
const CookieName = "pharmacy_session"

// TokenTTL bounds how long an issued session token stays valid.
const TokenTTL = 30 * 24 * time.Hour

// Manager issues and verifies cart session tokens.
type Manager struct {
	secret []byte
}

// NewManager creates a manager with the given HMAC secret. An empty secret
// gets replaced by a random ephemeral one, which invalidates sessions on
// restart; deployments should always pin a secret.
func NewManager(secret string) *Manager {
	if secret == "" {
		secret = uuid.NewString()
	}
	return &Manager{secret: []byte(secret)}
}

type cartClaims struct {
	CartID string `json:"cart_id"`
	jwt.RegisteredClaims
}

// NewCartID generates a fresh cart identifier.
func NewCartID() string {
	return uuid.NewString()
}

// Issue signs a token for the given cart id.
func (m *Manager) Issue(cartID string) (string, error) {
	claims := cartClaims{
		CartID: cartID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token and returns the cart id it carries.
func (m *Manager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &cartClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(*cartClaims)
	if !ok || claims.CartID == "" {
		return "", errors.New("invalid session claims")
	}
	return claims.CartID, nil
}

// CartIDFromRequest extracts the cart id from the request's session cookie.
// When the cookie is absent or invalid, a new cart id is generated and a
// fresh cookie is set on the response.
func (m *Manager) CartIDFromRequest(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if cartID, err := m.Verify(cookie.Value); err == nil {
			return cartID
		}
	}

	cartID := NewCartID()
	if token, err := m.Issue(cartID); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(TokenTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return cartID
}
