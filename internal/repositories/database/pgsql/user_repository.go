package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/produce_settlement_app/internal/models"
	"github.com/SscSPs/produce_settlement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, name, password_hash, role, producer_id, branch_ids,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.UserID, m.Username, m.Name, m.PasswordHash, m.Role, m.ProducerID, m.BranchIDs,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, m.Username)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` AND deleted_at IS NULL;`
	var m models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Username,
		&m.Name,
		&m.PasswordHash,
		&m.Role,
		&m.ProducerID,
		&m.BranchIDs,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = $1", username)
}
