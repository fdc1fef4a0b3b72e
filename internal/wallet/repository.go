package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/h-wallet/h_wallet/internal/scheme"
)

// ErrNotFound is returned when no wallet matches both id and owner. A wallet
// belonging to another user is indistinguishable from a nonexistent one.
var ErrNotFound = errors.New("wallet not found")

// Repository persists wallets.
type Repository interface {
	Create(ctx context.Context, wallet Wallet) error
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (Wallet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Wallet, error)
	Remove(ctx context.Context, id, ownerID string) error
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record.
func (r *PostgresRepository) Create(ctx context.Context, wallet Wallet) error {
	walletID, err := uuid.Parse(wallet.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(wallet.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, owner_id, name, scheme, type, number, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		walletID, ownerID, wallet.Name, string(wallet.Scheme), string(wallet.Type), wallet.Number, wallet.CreatedAt.UTC())
	return err
}

// FindByIDAndOwner fetches a wallet scoped to its owner.
func (r *PostgresRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (Wallet, error) {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return Wallet{}, ErrNotFound
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return Wallet{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, owner_id, name, scheme, type, number, created_at
        FROM wallets WHERE id = $1 AND owner_id = $2`, walletID, owner)
	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	return w, nil
}

// ListByOwner returns every wallet attached to the owner.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Wallet, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, owner_id, name, scheme, type, number, created_at
        FROM wallets WHERE owner_id = $1 ORDER BY created_at`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// Remove deletes a wallet scoped to its owner.
func (r *PostgresRepository) Remove(ctx context.Context, id, ownerID string) error {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE id = $1 AND owner_id = $2`, walletID, owner)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (Wallet, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		schemeStr string
		typeStr   string
		createdAt time.Time
		w         Wallet
	)
	if err := row.Scan(&id, &ownerID, &w.Name, &schemeStr, &typeStr, &w.Number, &createdAt); err != nil {
		return Wallet{}, err
	}
	w.ID = id.String()
	w.OwnerID = ownerID.String()
	w.Scheme = scheme.Scheme(schemeStr)
	w.Type = scheme.Type(typeStr)
	w.CreatedAt = createdAt.UTC()
	return w, nil
}
