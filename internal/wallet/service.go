package wallet

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/h-wallet/h_wallet/internal/apierr"
	"github.com/h-wallet/h_wallet/internal/cache"
	"github.com/h-wallet/h_wallet/internal/scheme"
	"github.com/h-wallet/h_wallet/internal/user"
)

// MaxWalletCount caps how many wallets a user may hold at any time.
const MaxWalletCount = 5

// cardNumberLength is the BIN-like prefix stored for card wallets in place
// of the full PAN.
const cardNumberLength = 6

// Service exposes wallet operations scoped to the owning user.
type Service struct {
	logger     *slog.Logger
	repo       Repository
	validators *scheme.ValidatorFactory
	cache      *cache.Cache
}

// NewService builds a wallet service instance. cache may be nil-backed.
func NewService(logger *slog.Logger, repo Repository, validators *scheme.ValidatorFactory, c *cache.Cache) *Service {
	return &Service{logger: logger, repo: repo, validators: validators, cache: c}
}

// Create validates the registration, enforces uniqueness and the wallet
// quota, and persists a new wallet for the owner. It returns the new
// wallet's identity.
func (s *Service) Create(ctx context.Context, owner user.User, r Registration) (string, error) {
	s.logger.Info("creating wallet", slog.String("owner", owner.PhoneNumber))

	validate, err := s.validators.SchemeValidator(r.Scheme)
	if err != nil {
		return "", err
	}
	if !validate(r.PAN) {
		return "", s.failCreate(owner, apierr.BadRequest("the provided scheme number: %s is not valid for scheme: %s", r.PAN, r.Scheme))
	}

	walletType, err := r.Scheme.WalletType()
	if err != nil {
		return "", err
	}
	number := r.PAN
	if walletType == scheme.TypeCard {
		number = r.PAN[:cardNumberLength]
	}

	existing, err := s.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return "", err
	}

	// Duplicate before quota: a duplicate submission is a conflict even
	// when the owner is at capacity.
	for _, w := range existing {
		if w.Number == number {
			return "", s.failCreate(owner, apierr.Conflict("wallet already exists"))
		}
	}
	if len(existing) >= MaxWalletCount {
		return "", s.failCreate(owner, apierr.Forbidden("maximum number of wallets reached"))
	}

	created := Wallet{
		ID:        uuid.New().String(),
		OwnerID:   owner.ID,
		Name:      r.Name,
		Scheme:    r.Scheme,
		Type:      walletType,
		Number:    number,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return "", err
	}
	s.invalidate(ctx, owner.ID)

	s.logger.Info("wallet created", slog.String("owner", owner.PhoneNumber), slog.String("wallet_id", created.ID))
	return created.ID, nil
}

// Get retrieves a wallet owned by the caller.
func (s *Service) Get(ctx context.Context, owner user.User, id string) (Projection, error) {
	s.logger.Info("retrieving wallet", slog.String("wallet_id", id))

	existing, err := s.repo.FindByIDAndOwner(ctx, id, owner.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Projection{}, apierr.NotFound("wallet with id: %s does not exist", id)
		}
		return Projection{}, err
	}
	return existing.Projection(owner.PhoneNumber), nil
}

// List returns projections of every wallet attached to the owner, serving
// from the cache when the owner's list is already there.
func (s *Service) List(ctx context.Context, owner user.User) ([]Projection, error) {
	s.logger.Info("retrieving all wallets", slog.String("owner", owner.PhoneNumber))

	key := cacheKey(owner.ID)
	var cached []Projection
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("wallet cache read failed", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	wallets, err := s.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	projections := make([]Projection, 0, len(wallets))
	for _, w := range wallets {
		projections = append(projections, w.Projection(owner.PhoneNumber))
	}

	if err := s.cache.Set(ctx, key, projections); err != nil {
		s.logger.Warn("wallet cache write failed", slog.Any("error", err))
	}
	return projections, nil
}

// Delete removes a wallet owned by the caller.
func (s *Service) Delete(ctx context.Context, owner user.User, id string) error {
	s.logger.Info("deleting wallet", slog.String("wallet_id", id))

	if err := s.repo.Remove(ctx, id, owner.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierr.NotFound("wallet with id: %s does not exist", id)
		}
		return err
	}
	s.invalidate(ctx, owner.ID)

	s.logger.Info("wallet deleted", slog.String("wallet_id", id))
	return nil
}

func (s *Service) failCreate(owner user.User, err *apierr.Error) error {
	s.logger.Info("wallet creation failed",
		slog.String("owner", owner.PhoneNumber),
		slog.String("reason", err.Message),
	)
	return err
}

func (s *Service) invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.Delete(ctx, cacheKey(ownerID)); err != nil {
		s.logger.Warn("wallet cache invalidation failed", slog.Any("error", err))
	}
}

func cacheKey(ownerID string) string {
	return "wallets:" + ownerID
}
