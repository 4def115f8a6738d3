package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codedojo/internal/common"
	"codedojo/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Hint quota read-modify-write. GetHintQuotaForUpdate takes a row lock so
	// concurrent consume calls for the same user serialize.
	GetHintQuotaForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*model.HintQuota, error)
	UpdateHintQuota(ctx context.Context, tx *sql.Tx, userID string, quota *model.HintQuota) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, hashed_password, role, free_hints_used, purchased_hints, last_hint_reset)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.HashedPassword, user.Role,
		user.FreeHintsUsed, user.PurchasedHints, user.LastHintReset)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *pgUserRepository) findBy(ctx context.Context, column, value string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT id, username, email, hashed_password, role, free_hints_used, purchased_hints, last_hint_reset, created_at, updated_at
	          FROM users WHERE %s = $1`, column)
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.Role,
		&user.FreeHintsUsed, &user.PurchasedHints, &user.LastHintReset,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findBy %s: %w", column, err)
	}
	return user, nil
}

func (r *pgUserRepository) GetHintQuotaForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*model.HintQuota, error) {
	query := `SELECT free_hints_used, purchased_hints, last_hint_reset FROM users WHERE id = $1 FOR UPDATE`
	quota := &model.HintQuota{}
	err := tx.QueryRowContext(ctx, query, userID).Scan(&quota.FreeUsed, &quota.Purchased, &quota.LastReset)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.GetHintQuotaForUpdate: %w", err)
	}
	return quota, nil
}

func (r *pgUserRepository) UpdateHintQuota(ctx context.Context, tx *sql.Tx, userID string, quota *model.HintQuota) error {
	query := `UPDATE users SET free_hints_used = $1, purchased_hints = $2, last_hint_reset = $3, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4`
	if _, err := tx.ExecContext(ctx, query, quota.FreeUsed, quota.Purchased, quota.LastReset, userID); err != nil {
		return fmt.Errorf("pgUserRepository.UpdateHintQuota: %w", err)
	}
	return nil
}
