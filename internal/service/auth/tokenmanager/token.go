package tokenmanager

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/models"
)

const (
	// Subject used when token requested without username
	DefaultSubject = "user"

	defaultAccessTokenTTL = time.Hour
	defaultSigningMethod  = "HS256"

	keyInfo   = "bankdemo access token"
	keyLength = 32
)

// Token manager with sensible default
type Config struct {
	// Secret key to derive signing key from
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access token lifetime
	// If not set than default is used
	AccessTTL time.Duration

	// Clock used both to issue and to verify tokens
	// Defaults to time.Now
	Now func() time.Time
}

type TokenManager struct {
	// Key derived from the configured secret
	key []byte

	// JWT MAC (Message Authentication Code) algorithm
	alg jwt.SigningMethod

	accessTTL time.Duration
	now       func() time.Time
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: secret key must not be empty", apperrors.ErrConfiguration)
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}
	alg := jwt.GetSigningMethod(cfg.Alg)
	if _, ok := alg.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: unsupported signing method %q", apperrors.ErrConfiguration, cfg.Alg)
	}

	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTokenTTL
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	key, err := deriveKey(cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	return &TokenManager{
		key:       key,
		alg:       alg,
		accessTTL: cfg.AccessTTL,
		now:       cfg.Now,
	}, nil
}

// Derive fixed length MAC key so the raw secret never signs anything
func deriveKey(secret string) ([]byte, error) {
	key := make([]byte, keyLength)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("%w: derive signing key: %w", apperrors.ErrConfiguration, err)
	}
	return key, nil
}

// Issue signed access token for subject
func (m *TokenManager) Issue(subject string) (models.AccessToken, error) {
	var token models.AccessToken

	if len(m.key) == 0 || m.alg == nil {
		return token, fmt.Errorf("%w: token manager has no signing key", apperrors.ErrConfiguration)
	}

	if subject == "" {
		subject = DefaultSubject
	}

	now := m.clock().Truncate(time.Second)
	expiresAt := now.Add(m.accessTTL)

	jwtToken := jwt.NewWithClaims(
		m.alg,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	)
	value, err := jwtToken.SignedString(m.key)
	if err != nil {
		return token, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return models.AccessToken{
		Value:     value,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify token and return its subject
// Any error matches apperrors.ErrUnauthorized
func (m *TokenManager) Verify(value string) (string, error) {
	if len(m.key) == 0 || m.alg == nil {
		return "", fmt.Errorf("%w: token manager has no signing key", apperrors.ErrConfiguration)
	}

	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(
		value,
		claims,
		func(t *jwt.Token) (any, error) {
			return m.key, nil
		},
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithTimeFunc(m.clock),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", fmt.Errorf("%w: %w", apperrors.ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", fmt.Errorf("%w: %w", apperrors.ErrTokenExpired, err)
	default:
		return "", fmt.Errorf("%w: %w", apperrors.ErrTokenMalformed, err)
	}
}

func (m *TokenManager) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
