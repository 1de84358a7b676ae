package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/produce_settlement_app/internal/models"
	"github.com/SscSPs/produce_settlement_app/internal/utils/mapping"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

type userRepository struct {
	db *sql.DB
}

const userColumns = `user_id, username, name, password_hash, role, producer_id, branch_ids,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Username, m.Name, m.PasswordHash, m.Role, m.ProducerID, joinIDs(m.BranchIDs),
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy, formatNullTime(m.DeletedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, m.Username)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, where string, arg string) (*domain.User, error) {
	var m models.User
	var branchIDs, createdAt, updatedAt string
	var deletedAt *string
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where+` AND deleted_at IS NULL`, arg,
	).Scan(&m.UserID, &m.Username, &m.Name, &m.PasswordHash, &m.Role, &m.ProducerID, &branchIDs,
		&createdAt, &m.CreatedBy, &updatedAt, &m.LastUpdatedBy, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	m.BranchIDs = splitIDs(branchIDs)
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.LastUpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}
