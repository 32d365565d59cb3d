package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/validation"
	"go-storefront/internal/session"
	"go-storefront/internal/upstream"
)

// CartInvalidator drops a session's cached cart on logout.
type CartInvalidator interface {
	Invalidate(ctx context.Context, s session.Session)
}

type Service struct {
	api      upstream.IdentityAPI
	cart     CartInvalidator
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(api upstream.IdentityAPI, cart CartInvalidator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:      api,
		cart:     cart,
		validate: validation.New(),
		logger:   logger,
	}
}

// Login exchanges credentials for a token. The profile is fetched alongside
// for the navbar; failing to fetch it does not fail the login.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return LoginResponse{}, apperror.FromValidation(err)
	}

	token, err := s.api.Login(ctx, upstream.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if upstream.IsStatus(err, http.StatusUnauthorized) || upstream.IsStatus(err, http.StatusBadRequest) {
			return LoginResponse{}, ErrInvalidCredentials
		}
		s.logger.Error("login failed", zap.String("email", req.Email), zap.Error(err))
		return LoginResponse{}, upstream.Translate(err, nil)
	}

	sess := session.FromToken(token)
	res := LoginResponse{AccessToken: token}
	if !sess.ExpiresAt.IsZero() {
		exp := sess.ExpiresAt
		res.ExpiresAt = &exp
	}

	profile, err := s.api.Profile(ctx, token)
	if err != nil {
		s.logger.Warn("profile after login failed", zap.String("session", sess.Key()), zap.Error(err))
		return res, nil
	}
	p := toProfileResponse(profile)
	res.User = &p

	return res, nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (ActionStatusResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.UserName = strings.TrimSpace(req.UserName)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validate.Struct(req); err != nil {
		return ActionStatusResponse{}, apperror.FromValidation(err)
	}

	err := s.api.Register(ctx, upstream.Registration{
		FullName:    req.FullName,
		UserName:    req.UserName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return ActionStatusResponse{}, upstream.Translate(err, nil)
	}

	s.logger.Info("account registered", zap.String("email", req.Email))
	return ActionStatusResponse{Success: true, Message: "Registered successfully"}, nil
}

func (s *Service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (ActionStatusResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return ActionStatusResponse{}, apperror.FromValidation(err)
	}

	if err := s.api.ForgotPassword(ctx, req.Email); err != nil {
		return ActionStatusResponse{}, upstream.Translate(err, nil)
	}

	return ActionStatusResponse{Success: true, Message: "Reset code sent"}, nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (ActionStatusResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if err := s.validate.Struct(req); err != nil {
		return ActionStatusResponse{}, apperror.FromValidation(err)
	}

	err := s.api.ResetPassword(ctx, upstream.PasswordReset{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if upstream.IsStatus(err, http.StatusBadRequest) {
			return ActionStatusResponse{}, ErrResetCodeInvalid
		}
		return ActionStatusResponse{}, upstream.Translate(err, nil)
	}

	return ActionStatusResponse{Success: true, Message: "Password updated"}, nil
}

func (s *Service) Profile(ctx context.Context, sess session.Session) (ProfileResponse, error) {
	if sess.IsZero() {
		return ProfileResponse{}, ErrUnauthorized
	}

	p, err := s.api.Profile(ctx, sess.Token)
	if err != nil {
		return ProfileResponse{}, upstream.Translate(err, nil)
	}
	return toProfileResponse(p), nil
}

// Logout tears the session down on the gateway side. The store API keeps no
// server session to revoke.
func (s *Service) Logout(ctx context.Context, sess session.Session) {
	if sess.IsZero() || s.cart == nil {
		return
	}
	s.cart.Invalidate(ctx, sess)
}
