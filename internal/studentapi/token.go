package studentapi

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the access token claims the gateway turns into the
// X-User-ID and X-User-Role headers
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// Expired reports whether the token has an expiry at or before now
func (c *TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// ParseToken reads the claims of an access token. The signature is not
// checked; only the gateway holds the signing secret.
func ParseToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, NewConfigError("invalid API token", err)
	}
	return claims, nil
}

// UseToken sends token as a bearer token and takes the user id and role
// from its claims. An expired token is rejected before any request is made.
func (c *Client) UseToken(token string) error {
	claims, err := ParseToken(token)
	if err != nil {
		return err
	}

	if claims.Expired(time.Now()) {
		return &APIError{
			Type:    ErrTypeAuth,
			Message: fmt.Sprintf("API token expired at %s", claims.ExpiresAt.Time.Format(time.RFC3339)),
		}
	}

	if claims.UserID != "" {
		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			return NewConfigError(fmt.Sprintf("invalid user_id claim %q", claims.UserID), err)
		}
		c.UserID = id
	}
	if claims.Role != "" {
		c.Role = claims.Role
	}
	c.Token = token
	return nil
}

// SetUserID replaces the X-User-ID identity. id must be a UUID.
func (c *Client) SetUserID(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return NewConfigError(fmt.Sprintf("invalid user id %q", id), err)
	}
	c.UserID = parsed
	return nil
}
