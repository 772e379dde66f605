package goPress

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the displayable subset of the access credential's claims.
// The credential stays opaque for authorization purposes; expiry is still
// discovered through a rejected request, never predicted from these claims.
type TokenClaims struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenInfo decodes the claims of a JWT access credential WITHOUT verifying
// its signature. For display only (e.g. "session expires at" in a profile
// view); never make an authorization decision from the result.
func TokenInfo(token string) (*TokenClaims, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	info := &TokenClaims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// TokenInfo decodes the current session's access credential. Returns
// [ErrNoSession] when unauthenticated.
func (c *Client) TokenInfo() (*TokenClaims, error) {
	if c == nil || c.session == nil {
		return nil, ErrClientNotReady
	}
	token, ok := c.session.AccessToken()
	if !ok {
		return nil, ErrNoSession
	}
	return TokenInfo(token)
}
