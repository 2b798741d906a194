package services

import (
	"context"
	"errors"
	"time"

	"menulink/internal/logger"
	"menulink/internal/models"
	"menulink/internal/redis"
	"menulink/internal/validation"
	"menulink/pkg/menuapi"
)

// TokenStore keeps the remote API access token per session.
type TokenStore interface {
	GetToken(ctx context.Context, sessionID string) (string, error)
	SetToken(ctx context.Context, sessionID, token string, ttl time.Duration) error
	DeleteToken(ctx context.Context, sessionID string) error
}

type AuthAPI interface {
	Register(ctx context.Context, reg models.Registration) (*menuapi.RegisterResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*menuapi.LoginResponse, error)
	Me(ctx context.Context, token string) (*models.MerchantEnvelope, error)
}

type AuthService interface {
	Register(ctx context.Context, sessionID string, reg models.Registration) (*models.Merchant, error)
	Login(ctx context.Context, sessionID string, creds models.Credentials) (*models.Merchant, error)
	Logout(ctx context.Context, sessionID string)
	Me(ctx context.Context, sessionID string) (*models.Merchant, error)
	// Token returns the session's access token or ErrNotAuthenticated.
	Token(ctx context.Context, sessionID string) (string, error)
	// Check clears the stored token when err is a remote 401 and returns err.
	Check(ctx context.Context, sessionID string, err error) error
}

type authService struct {
	api    AuthAPI
	tokens TokenStore
	ttl    time.Duration
	log    *logger.Logger
}

func NewAuthService(api AuthAPI, tokens TokenStore, ttl time.Duration, log *logger.Logger) AuthService {
	return &authService{api: api, tokens: tokens, ttl: ttl, log: log}
}

// Register validates the form, creates the account and logs in when the
// remote API echoes the new account's email.
func (s *authService) Register(ctx context.Context, sessionID string, reg models.Registration) (*models.Merchant, error) {
	errs, err := validation.Struct(reg)
	if err != nil {
		return nil, err
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	reg.ConfirmPassword = ""
	resp, err := s.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if resp.Email == "" {
		return nil, nil
	}
	return s.Login(ctx, sessionID, models.Credentials{Email: reg.Email, Password: reg.Password})
}

func (s *authService) Login(ctx context.Context, sessionID string, creds models.Credentials) (*models.Merchant, error) {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.SetToken(ctx, sessionID, resp.AccessToken, s.ttl); err != nil {
		s.log.Warn(ctx).Err(err).Msg("failed to store access token")
	}

	me, err := s.api.Me(ctx, resp.AccessToken)
	if err != nil {
		return nil, s.Check(ctx, sessionID, err)
	}
	return &me.User, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) {
	if err := s.tokens.DeleteToken(ctx, sessionID); err != nil {
		s.log.Warn(ctx).Err(err).Msg("failed to delete access token")
	}
}

// Me verifies the stored token against the remote API. A rejected token is
// dropped, which logs the session out.
func (s *authService) Me(ctx context.Context, sessionID string) (*models.Merchant, error) {
	token, err := s.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	me, err := s.api.Me(ctx, token)
	if err != nil {
		return nil, s.Check(ctx, sessionID, err)
	}
	return &me.User, nil
}

func (s *authService) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := s.tokens.GetToken(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			s.log.Warn(ctx).Err(err).Msg("failed to read access token")
		}
		return "", ErrNotAuthenticated
	}
	return token, nil
}

func (s *authService) Check(ctx context.Context, sessionID string, err error) error {
	if menuapi.IsUnauthorized(err) {
		s.log.Warn(ctx).Msg("401 - invalid session, clearing token")
		s.Logout(ctx, sessionID)
	}
	return err
}
