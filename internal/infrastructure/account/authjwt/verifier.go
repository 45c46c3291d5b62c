// Package authjwt verifies access tokens issued by the hosted auth service.
package authjwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/tournament-hub/internal/domain/user"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

const defaultLeeway = 30 * time.Second

type Config struct {
	Secret   string
	Audience string
	Issuer   string
	Leeway   time.Duration
	Logger   *logging.Logger
}

// claims follows the hosted auth access token layout.
type claims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email,omitempty"`
	Role         string         `json:"role,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type Verifier struct {
	secret   []byte
	audience string
	issuer   string
	leeway   time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = defaultLeeway
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Verifier{
		secret:   []byte(secret),
		audience: strings.TrimSpace(cfg.Audience),
		issuer:   strings.TrimSpace(cfg.Issuer),
		leeway:   leeway,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// VerifyAccessToken checks an HS256 token and returns its subject as the principal.
func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "token expired"
		}
		v.logger.DebugContext(ctx, "access token rejected", "reason", reason, "error", err)
		return user.Principal{}, fmt.Errorf("%w: %s", usecase.ErrUnauthorized, reason)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || strings.TrimSpace(c.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID:   c.Subject,
		Email:    c.Email,
		Username: metadataString(c.UserMetadata, "username"),
	}, nil
}

func metadataString(metadata map[string]any, key string) string {
	raw, ok := metadata[key]
	if !ok {
		return ""
	}
	value, _ := raw.(string)
	return strings.TrimSpace(value)
}
