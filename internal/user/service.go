package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/h-wallet/h_wallet/internal/apierr"
	"github.com/h-wallet/h_wallet/internal/auth"
	"github.com/h-wallet/h_wallet/internal/config"
	"github.com/h-wallet/h_wallet/internal/scheme"
)

// invalidCredentials is shared by every authentication failure so responses
// never reveal whether a phone number is registered.
const invalidCredentials = "invalid credentials"

// Service manages user registration and authentication.
type Service struct {
	cfg        config.Config
	logger     *slog.Logger
	repo       Repository
	validators *scheme.ValidatorFactory
}

// NewService creates a new user service.
func NewService(cfg config.Config, logger *slog.Logger, repo Repository, validators *scheme.ValidatorFactory) *Service {
	return &Service{cfg: cfg, logger: logger, repo: repo, validators: validators}
}

// Register creates a new user and stores a hashed password. On success it
// returns the phone number as the user's identifier token.
func (s *Service) Register(ctx context.Context, r Registration) (string, error) {
	s.logger.Info("registering new user", slog.String("phone", r.PhoneNumber))

	if r.Password != r.ConfirmPassword {
		return "", s.failRegister(r.PhoneNumber, apierr.BadRequest("provided passwords do not match"))
	}

	if !s.validators.PhoneNumberValidator()(r.PhoneNumber) {
		return "", s.failRegister(r.PhoneNumber, apierr.BadRequest("the provided phone number: %s is not valid", r.PhoneNumber))
	}

	if _, err := s.repo.FindByPhone(ctx, r.PhoneNumber); err == nil {
		return "", s.failRegister(r.PhoneNumber, apierr.Conflict("user with phone number: %s already exists", r.PhoneNumber))
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	hash, salt, err := hashPassword(r.Password)
	if err != nil {
		return "", err
	}

	created := User{
		ID:           uuid.New().String(),
		Username:     r.Username,
		PhoneNumber:  r.PhoneNumber,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return "", err
	}

	s.logger.Info("registered new user", slog.String("phone", created.PhoneNumber))
	return created.PhoneNumber, nil
}

// Authenticate verifies credentials and issues a signed token carrying the
// phone number as its sole claim.
func (s *Service) Authenticate(ctx context.Context, l Login) (string, error) {
	s.logger.Info("logging in user", slog.String("phone", l.PhoneNumber))

	existing, err := s.repo.FindByPhone(ctx, l.PhoneNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("login failed", slog.String("phone", l.PhoneNumber), slog.String("reason", "user does not exist"))
			return "", apierr.Unauthorized(invalidCredentials)
		}
		return "", err
	}

	if !verifyPassword(l.Password, existing.PasswordHash, existing.PasswordSalt) {
		s.logger.Info("login failed", slog.String("phone", l.PhoneNumber), slog.String("reason", "password incorrect"))
		return "", apierr.Unauthorized(invalidCredentials)
	}

	token, err := auth.Issue(existing.PhoneNumber, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info("logged in user", slog.String("phone", l.PhoneNumber))
	return token, nil
}

// AuthenticatedUser resolves the caller from the phone-number claim of an
// already-verified token. It is the bridge every wallet operation uses.
func (s *Service) AuthenticatedUser(ctx context.Context, phoneNumber string) (User, error) {
	if phoneNumber == "" {
		return User{}, apierr.Unauthorized(invalidCredentials)
	}
	existing, err := s.repo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Error("authenticated user lookup failed", slog.String("reason", "account does not exist"))
			return User{}, apierr.Unauthorized(invalidCredentials)
		}
		return User{}, err
	}
	return existing, nil
}

// Details returns the public projection for the given phone number.
// A missing user is reported as a bad request, matching the behavior the
// rest of the API has always exposed.
func (s *Service) Details(ctx context.Context, phoneNumber string) (Profile, error) {
	s.logger.Info("retrieving user details", slog.String("phone", phoneNumber))

	existing, err := s.repo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, apierr.BadRequest("user with phone number: %s does not exist", phoneNumber)
		}
		return Profile{}, err
	}
	return existing.Profile(), nil
}

func (s *Service) failRegister(phone string, err *apierr.Error) error {
	s.logger.Info("registration failed", slog.String("phone", phone), slog.String("reason", err.Message))
	return err
}
