package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/models"
)

// Issues and verifies access tokens
type TokenManager interface {
	Issue(subject string) (models.AccessToken, error)
	Verify(token string) (subject string, err error)
}

// Auth service
// There is no credential check: any username gets a token, empty one gets the default subject
type AuthService struct {
	tokens TokenManager
}

func NewAuthService(tokens TokenManager) *AuthService {
	return &AuthService{tokens: tokens}
}

func (s *AuthService) IssueToken(ctx context.Context, username string) (models.AccessToken, error) {
	token, err := s.tokens.Issue(username)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("token could not be issued. Err: %w", err)
	}
	return token, nil
}

// Authenticate request by 'Authorization: Bearer <token>' header
// Returns token subject; every error matches apperrors.ErrUnauthorized
func (s *AuthService) Authenticate(ctx context.Context, r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("%w: authorization header missing", apperrors.ErrTokenMalformed)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: authorization header is not bearer", apperrors.ErrTokenMalformed)
	}

	return s.tokens.Verify(strings.TrimSpace(token))
}
