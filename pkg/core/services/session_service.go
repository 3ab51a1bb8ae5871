package services

import (
	"context"
	"errors"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/ArthurB95/linklink/pkg/ports"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionService owns the credential lifecycle: the token is written once at
// login, read before every authenticated call, and removed at logout. There
// is no refresh protocol; an expired token surfaces as a request failure on
// the next call.
type SessionService struct {
	client ports.BackendClient
	tokens ports.TokenStore
	log    *zap.Logger
}

func NewSessionService(client ports.BackendClient, tokens ports.TokenStore, log *zap.Logger) *SessionService {
	return &SessionService{client: client, tokens: tokens, log: log}
}

var ErrNotLoggedIn = errors.New("not logged in")

func (s *SessionService) Login(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return s.tokens.SaveToken(ctx, token)
}

func (s *SessionService) Logout(ctx context.Context) error {
	return s.tokens.ClearToken(ctx)
}

func (s *SessionService) LoggedIn(ctx context.Context) bool {
	token, err := s.tokens.Token(ctx)
	return err == nil && token != ""
}

// CurrentUser fetches /auth/me. The current user is a critical resource:
// errors propagate.
func (s *SessionService) CurrentUser(ctx context.Context) (*domain.User, error) {
	if !s.LoggedIn(ctx) {
		return nil, ErrNotLoggedIn
	}
	return s.client.Me(ctx)
}

// TokenClaims is what the stored bearer token says about itself. The
// signature is NOT verified — only the backend can do that — so this is
// display/diagnostic information, never an auth decision.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

func (s *SessionService) InspectToken(ctx context.Context) (*TokenClaims, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, err
	}

	info := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = time.Now().After(claims.ExpiresAt.Time)
	}
	return info, nil
}
