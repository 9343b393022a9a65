// Package identity resolves session credentials against the external
// identity provider. Provider-signed HS256 session tokens are verified
// locally with the shared signing secret; opaque tokens fall back to the
// provider's introspection endpoint. Either path yields only the subject id
// and email — application roles never come from the credential.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

const introspectTimeout = 5 * time.Second

// Config captures the provider settings.
type Config struct {
	Issuer        string
	JWTSecret     string
	IntrospectURL string
	APIKey        string
}

// Client validates session credentials.
type Client struct {
	issuer        string
	secret        []byte
	introspectURL string
	apiKey        string
	http          *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		issuer:        cfg.Issuer,
		secret:        []byte(cfg.JWTSecret),
		introspectURL: cfg.IntrospectURL,
		apiKey:        cfg.APIKey,
		http:          &http.Client{Timeout: introspectTimeout},
	}
}

// Validate resolves the credential to a provider identity. Absent,
// malformed, or rejected credentials yield domain.ErrUnauthenticated.
func (c *Client) Validate(ctx context.Context, credential string) (*ports.ProviderIdentity, error) {
	if credential == "" {
		return nil, domain.ErrUnauthenticated
	}

	// Structured session tokens are verified locally.
	if strings.Count(credential, ".") == 2 && len(c.secret) > 0 {
		return c.validateJWT(credential)
	}

	if c.introspectURL == "" {
		return nil, domain.ErrUnauthenticated
	}
	return c.introspect(ctx, credential)
}

func (c *Client) validateJWT(credential string) (*ports.ProviderIdentity, error) {
	claims := jwt.MapClaims{}
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: session token rejected", domain.ErrUnauthenticated)
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: session token missing subject", domain.ErrUnauthenticated)
	}

	return &ports.ProviderIdentity{ID: sub, Email: email}, nil
}

type introspectResponse struct {
	Active bool   `json:"active"`
	Sub    string `json:"sub"`
	Email  string `json:"email"`
}

func (c *Client) introspect(ctx context.Context, credential string) (*ports.ProviderIdentity, error) {
	body := strings.NewReader("token=" + credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, body)
	if err != nil {
		return nil, fmt.Errorf("identity introspect: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity introspect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity introspect: unexpected status %d", resp.StatusCode)
	}

	var out introspectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("identity introspect: decode: %w", err)
	}
	if !out.Active || out.Sub == "" {
		return nil, domain.ErrUnauthenticated
	}

	return &ports.ProviderIdentity{ID: out.Sub, Email: out.Email}, nil
}
