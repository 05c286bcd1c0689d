// internal/database/user.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jason-s-yu/pushups/internal/auth"
	"github.com/jason-s-yu/pushups/internal/models"
)

// CreateUser hashes password and inserts a new user.
func (s *Store) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{ID: id, Username: username, Password: hash}
	q := `INSERT INTO users (id, username, password) VALUES ($1, $2, $3) RETURNING created_at`

	err = pgx.BeginTxFunc(ctx, s.Pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, u.ID, u.Username, u.Password).Scan(&u.CreatedAt)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	q := `SELECT id, username, password, created_at FROM users WHERE username=$1`
	return s.scanUser(ctx, q, username)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `SELECT id, username, password, created_at FROM users WHERE id=$1`
	return s.scanUser(ctx, q, id)
}

func (s *Store) scanUser(ctx context.Context, q string, arg any) (*models.User, error) {
	var u models.User
	err := s.Pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// AuthenticateUser returns the user when password matches, else ErrInvalidCredentials.
func (s *Store) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	match, err := auth.VerifyPassword(password, u.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password for %s: %w", u.ID, err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
