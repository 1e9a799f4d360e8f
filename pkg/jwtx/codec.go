package jwtx

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrUnknownScope = errors.New("jwtx: unknown token scope")

	// Configuration faults. These abort startup, they never surface
	// per-request.
	ErrBadAlgorithm = errors.New("jwtx: unsupported signing algorithm")
	ErrMissingKey   = errors.New("jwtx: signing key not configured")
	ErrSharedKey    = errors.New("jwtx: access and refresh keys must differ")
)

// KeyConfig names one (secret, HMAC algorithm) pair. Values come from the
// environment; nothing here is hard-coded.
type KeyConfig struct {
	Secret    []byte
	Algorithm string // e.g. "HS256", "HS512"
}

// CodecConfig carries the two key pairs a Codec needs. Access and email
// tokens share AccessKey; refresh tokens use RefreshKey.
type CodecConfig struct {
	AccessKey  KeyConfig
	RefreshKey KeyConfig
}

type signingPair struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// Codec signs and verifies tokens. The key pair is selected by scope:
// access/email map to the 256-bit-class pair, refresh to the 512-bit-class
// pair. Construct once at startup and share; the codec is immutable and safe
// for concurrent use.
type Codec struct {
	pairs map[Scope]signingPair
}

// NewCodec validates the configured algorithms and keys. Any fault here is a
// deployment problem and should stop the process.
func NewCodec(cfg CodecConfig) (*Codec, error) {
	access, err := newSigningPair(cfg.AccessKey)
	if err != nil {
		return nil, fmt.Errorf("access key: %w", err)
	}
	refresh, err := newSigningPair(cfg.RefreshKey)
	if err != nil {
		return nil, fmt.Errorf("refresh key: %w", err)
	}
	if subtle.ConstantTimeCompare(cfg.AccessKey.Secret, cfg.RefreshKey.Secret) == 1 {
		return nil, ErrSharedKey
	}

	return &Codec{
		pairs: map[Scope]signingPair{
			ScopeAccess:  access,
			ScopeEmail:   access,
			ScopeRefresh: refresh,
		},
	}, nil
}

func newSigningPair(cfg KeyConfig) (signingPair, error) {
	if len(cfg.Secret) == 0 {
		return signingPair{}, ErrMissingKey
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return signingPair{}, fmt.Errorf("%w: %q", ErrBadAlgorithm, cfg.Algorithm)
	}
	return signingPair{secret: cfg.Secret, method: method}, nil
}

// Encode serializes and signs claims with the key pair selected by the
// claims' scope.
func (c *Codec) Encode(claims Claims) (string, error) {
	pair, ok := c.pairs[claims.Scope]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, claims.Scope)
	}

	token := jwt.NewWithClaims(pair.method, claims)
	raw, err := token.SignedString(pair.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return raw, nil
}

// Decode verifies raw with the key pair implied by the requested scope and
// returns the claims. A token whose scope field disagrees with the requested
// scope still decodes (when both scopes share a key); rejecting that is the
// session resolver's job, since a caller may legitimately decode a token
// without knowing its class up front. Expiry is only checked when
// enforceExpiry is set; the resolver handles refresh expiry itself so it can
// flip the session state.
func (c *Codec) Decode(raw string, scope Scope, enforceExpiry bool) (Claims, error) {
	pair, ok := c.pairs[scope]
	if !ok {
		return Claims{}, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != pair.method.Alg() {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidSig, t.Method.Alg())
			}
			return pair.secret, nil
		},
		jwt.WithValidMethods([]string{pair.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !claims.Scope.Valid() {
		return Claims{}, fmt.Errorf("%w: %q", ErrUnknownScope, claims.Scope)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrMalformed)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing iat or exp", ErrMalformed)
	}

	if enforceExpiry && claims.Expired(time.Now().UTC()) {
		return Claims{}, ErrExpired
	}

	return claims, nil
}
