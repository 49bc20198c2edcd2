package access

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingClaim is returned when a required claim is missing
var ErrMissingClaim = errors.New("missing required claim")

// Claims are the claims Cloudflare Access puts in its application token.
// User logins carry an email; service tokens carry a common_name instead.
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email,omitempty"`
	CommonName    string `json:"common_name,omitempty"`
	Type          string `json:"type,omitempty"`
	IdentityNonce string `json:"identity_nonce,omitempty"`
	Country       string `json:"country,omitempty"`
}

// Identity is the caller behind a validated Access token
type Identity struct {
	Subject    string
	Email      string
	CommonName string
	Country    string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Identity converts the claims into an Identity.
func (c *Claims) Identity() (*Identity, error) {
	if c.Email == "" && c.CommonName == "" {
		return nil, fmt.Errorf("%w: email or common_name", ErrMissingClaim)
	}

	id := &Identity{
		Subject:    c.Subject,
		Email:      c.Email,
		CommonName: c.CommonName,
		Country:    c.Country,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id, nil
}

// IsServiceToken reports whether the caller authenticated with a service token
func (i *Identity) IsServiceToken() bool {
	return i.Email == "" && i.CommonName != ""
}

// Name returns the email of a user or the client ID of a service token
func (i *Identity) Name() string {
	if i.Email != "" {
		return i.Email
	}
	return i.CommonName
}
