package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by repositories when no user matches.
var ErrNotFound = errors.New("user not found")

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByPhone(ctx context.Context, phoneNumber string) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, username, phone_number, password_hash, password_salt, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, user.Username, user.PhoneNumber, user.PasswordHash, user.PasswordSalt, user.CreatedAt.UTC())
	return err
}

// FindByPhone fetches a user by exact phone-number match.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phoneNumber string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, phone_number, password_hash, password_salt, created_at
        FROM users WHERE phone_number = $1`, phoneNumber)
	var (
		id        uuid.UUID
		createdAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.Username, &user.PhoneNumber, &user.PasswordHash, &user.PasswordSalt, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
