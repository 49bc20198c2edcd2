// Package access validates Cloudflare Access JWTs for the admin routes.
package access

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

var (
	// ErrInvalidToken is returned when the token is invalid
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidIssuer is returned when the token issuer is not the Access team
	ErrInvalidIssuer = errors.New("invalid issuer")

	// ErrInvalidAudience is returned when the token was minted for another application
	ErrInvalidAudience = errors.New("invalid audience")

	// ErrJWKSFetchFailed is returned when the certs endpoint cannot be read
	ErrJWKSFetchFailed = errors.New("failed to fetch JWKS")
)

// JWKS represents the JSON Web Key Set served at /cdn-cgi/access/certs
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a JSON Web Key
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// Config holds configuration for Validator
type Config struct {
	TeamDomain  string // e.g. myteam.cloudflareaccess.com
	Audience    string // application AUD tag
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
	// RefetchInterval is the minimum time between two JWKS refetches forced
	// by an unknown kid.
	RefetchInterval time.Duration
	// CertsURL overrides the JWKS endpoint derived from TeamDomain.
	CertsURL string
	Clock    clockwork.Clock
}

// Validator validates JWTs issued by Cloudflare Access
type Validator struct {
	issuer     string
	audience   string
	certsURL   string
	httpClient *http.Client
	clock      clockwork.Clock

	jwksCache       *JWKS
	jwksCacheExp    time.Time
	jwksCacheTTL    time.Duration
	refetchInterval time.Duration
	lastRefetch     time.Time
	cacheMu         sync.RWMutex

	keyCache   map[string]*rsa.PublicKey
	keyCacheMu sync.RWMutex
}

// NewValidator creates a new Cloudflare Access JWT validator
func NewValidator(config Config) *Validator {
	if config.CacheTTL == 0 {
		config.CacheTTL = 1 * time.Hour
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 10 * time.Second
	}
	if config.RefetchInterval == 0 {
		config.RefetchInterval = time.Minute
	}
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}

	team := strings.TrimSuffix(config.TeamDomain, "/")
	issuer := "https://" + team
	certsURL := config.CertsURL
	if certsURL == "" {
		certsURL = issuer + "/cdn-cgi/access/certs"
	}

	return &Validator{
		issuer:       issuer,
		audience:     config.Audience,
		certsURL:        certsURL,
		jwksCacheTTL:    config.CacheTTL,
		refetchInterval: config.RefetchInterval,
		clock:           config.Clock,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		keyCache: make(map[string]*rsa.PublicKey),
	}
}

// ValidateToken validates an Access JWT and returns the identity it carries
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.clock.Now),
	)
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, errors.New("kid header not found")
		}

		publicKey, err := v.getPublicKey(ctx, kid)
		if err != nil {
			return nil, fmt.Errorf("failed to get public key: %w", err)
		}

		return publicKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, ErrJWKSFetchFailed):
			return nil, err
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, fmt.Errorf("%w: %v", ErrInvalidIssuer, err)
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, fmt.Errorf("%w: %v", ErrInvalidAudience, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims.Identity()
}

// FetchJWKS fetches the team's signing keys
func (v *Validator) FetchJWKS(ctx context.Context) (*JWKS, error) {
	v.cacheMu.RLock()
	if v.jwksCache != nil && v.clock.Now().Before(v.jwksCacheExp) {
		defer v.cacheMu.RUnlock()
		return v.jwksCache, nil
	}
	v.cacheMu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJWKSFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrJWKSFetchFailed, resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrJWKSFetchFailed, err)
	}

	v.cacheMu.Lock()
	v.jwksCache = &jwks
	v.jwksCacheExp = v.clock.Now().Add(v.jwksCacheTTL)
	v.cacheMu.Unlock()

	return &jwks, nil
}

// getPublicKey retrieves the public key for a given kid. Access rotates its
// keys, so an unknown kid forces a refetch of the JWKS, at most once per
// refetch interval.
func (v *Validator) getPublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.keyCacheMu.RLock()
	if key, exists := v.keyCache[kid]; exists {
		v.keyCacheMu.RUnlock()
		return key, nil
	}
	v.keyCacheMu.RUnlock()

	jwks, err := v.FetchJWKS(ctx)
	if err != nil {
		return nil, err
	}

	jwk := findKey(jwks, kid)
	if jwk == nil {
		if !v.expireForRefetch() {
			return nil, fmt.Errorf("key with kid %s not found in JWKS", kid)
		}
		if jwks, err = v.FetchJWKS(ctx); err != nil {
			return nil, err
		}
		if jwk = findKey(jwks, kid); jwk == nil {
			return nil, fmt.Errorf("key with kid %s not found in JWKS", kid)
		}
	}

	publicKey, err := jwkToRSAPublicKey(jwk)
	if err != nil {
		return nil, fmt.Errorf("failed to convert JWK to RSA public key: %w", err)
	}

	v.keyCacheMu.Lock()
	v.keyCache[kid] = publicKey
	v.keyCacheMu.Unlock()

	return publicKey, nil
}

func findKey(jwks *JWKS, kid string) *JWK {
	for i := range jwks.Keys {
		if jwks.Keys[i].Kid == kid {
			return &jwks.Keys[i]
		}
	}
	return nil
}

// jwkToRSAPublicKey converts a JWK to an RSA public key
func jwkToRSAPublicKey(jwk *JWK) (*rsa.PublicKey, error) {
	if jwk.Kty != "" && jwk.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", jwk.Kty)
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	var e int
	for _, b := range eBytes {
		e = e*256 + int(b)
	}
	if e == 0 {
		return nil, errors.New("empty exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}

// expireForRefetch expires the cached JWKS unless a forced refetch already
// happened within the refetch interval.
func (v *Validator) expireForRefetch() bool {
	v.cacheMu.Lock()
	defer v.cacheMu.Unlock()

	now := v.clock.Now()
	if !v.lastRefetch.IsZero() && now.Sub(v.lastRefetch) < v.refetchInterval {
		return false
	}
	v.lastRefetch = now
	v.jwksCacheExp = time.Time{}
	return true
}
