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
)

var _ portsrepo.ProducerRepositoryFacade = (*producerRepository)(nil)

type producerRepository struct {
	db *sql.DB
}

const producerColumns = `producer_id, branch_id, name, phone, location, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProducer(row rowScanner) (models.Producer, error) {
	var m models.Producer
	var createdAt, updatedAt string
	if err := row.Scan(&m.ProducerID, &m.BranchID, &m.Name, &m.Phone, &m.Location, &m.IsActive,
		&createdAt, &m.CreatedBy, &updatedAt, &m.LastUpdatedBy); err != nil {
		return m, err
	}
	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return m, err
	}
	m.LastUpdatedAt, err = parseTime(updatedAt)
	return m, err
}

func (r *producerRepository) SaveProducer(ctx context.Context, producer domain.Producer) error {
	m := mapping.ToModelProducer(producer)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO producers (`+producerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ProducerID, m.BranchID, m.Name, m.Phone, m.Location, m.IsActive,
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producer with ID %s already exists", apperrors.ErrDuplicate, m.ProducerID)
		}
		return fmt.Errorf("failed to save producer %s: %w", m.ProducerID, err)
	}
	return nil
}

func (r *producerRepository) UpdateProducer(ctx context.Context, producer domain.Producer) error {
	m := mapping.ToModelProducer(producer)
	res, err := r.db.ExecContext(ctx, `
		UPDATE producers
		SET branch_id = ?, name = ?, phone = ?, location = ?, is_active = ?, last_updated_at = ?, last_updated_by = ?
		WHERE producer_id = ?`,
		m.BranchID, m.Name, m.Phone, m.Location, m.IsActive, formatTime(m.LastUpdatedAt), m.LastUpdatedBy, m.ProducerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update producer %s: %w", m.ProducerID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFoundError("producer " + m.ProducerID)
	}
	return nil
}

func (r *producerRepository) FindProducerByID(ctx context.Context, producerID string) (*domain.Producer, error) {
	m, err := scanProducer(r.db.QueryRowContext(ctx,
		`SELECT `+producerColumns+` FROM producers WHERE producer_id = ?`, producerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("producer " + producerID)
		}
		return nil, fmt.Errorf("failed to find producer %s: %w", producerID, err)
	}
	d := mapping.ToDomainProducer(m)
	return &d, nil
}

func (r *producerRepository) ListProducers(ctx context.Context, branchIDs []string, limit int, offset int) ([]domain.Producer, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if branchIDs != nil && len(branchIDs) == 0 {
		return []domain.Producer{}, nil
	}

	query := `SELECT ` + producerColumns + ` FROM producers`
	args := []any{}
	if branchIDs != nil {
		query += ` WHERE branch_id IN (` + placeholders(len(branchIDs)) + `)`
		args = append(args, stringArgs(branchIDs)...)
	}
	query += ` ORDER BY name, producer_id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query producers: %w", err)
	}
	defer rows.Close()

	producers := []models.Producer{}
	for rows.Next() {
		m, err := scanProducer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan producer row: %w", err)
		}
		producers = append(producers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating producer rows: %w", err)
	}
	return mapping.ToDomainProducerSlice(producers), nil
}
