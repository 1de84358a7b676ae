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

const producerColumns = `producer_id, branch_id, name, phone, location, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxProducerRepository struct {
	BaseRepository
}

func newPgxProducerRepository(pool *pgxpool.Pool) portsrepo.ProducerRepositoryFacade {
	return &PgxProducerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProducerRepositoryFacade = (*PgxProducerRepository)(nil)

func scanProducer(row pgx.Row) (models.Producer, error) {
	var m models.Producer
	err := row.Scan(
		&m.ProducerID,
		&m.BranchID,
		&m.Name,
		&m.Phone,
		&m.Location,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProducer inserts a new producer.
func (r *PgxProducerRepository) SaveProducer(ctx context.Context, producer domain.Producer) error {
	m := mapping.ToModelProducer(producer)
	query := `
		INSERT INTO producers (` + producerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProducerID, m.BranchID, m.Name, m.Phone, m.Location, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: producer with ID %s already exists", apperrors.ErrDuplicate, m.ProducerID)
		}
		return fmt.Errorf("failed to save producer %s: %w", m.ProducerID, err)
	}
	return nil
}

// UpdateProducer updates name, contact details, branch and active flag.
func (r *PgxProducerRepository) UpdateProducer(ctx context.Context, producer domain.Producer) error {
	m := mapping.ToModelProducer(producer)
	query := `
		UPDATE producers
		SET branch_id = $2, name = $3, phone = $4, location = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE producer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ProducerID, m.BranchID, m.Name, m.Phone, m.Location, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update producer %s: %w", m.ProducerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("producer " + m.ProducerID)
	}
	return nil
}

// FindProducerByID retrieves a producer by its ID.
func (r *PgxProducerRepository) FindProducerByID(ctx context.Context, producerID string) (*domain.Producer, error) {
	query := `SELECT ` + producerColumns + ` FROM producers WHERE producer_id = $1;`
	m, err := scanProducer(r.Pool.QueryRow(ctx, query, producerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("producer " + producerID)
		}
		return nil, fmt.Errorf("failed to find producer %s: %w", producerID, err)
	}
	d := mapping.ToDomainProducer(m)
	return &d, nil
}

// ListProducers retrieves producers ordered by name, optionally limited to a set of branches.
func (r *PgxProducerRepository) ListProducers(ctx context.Context, branchIDs []string, limit int, offset int) ([]domain.Producer, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if branchIDs != nil && len(branchIDs) == 0 {
		return []domain.Producer{}, nil
	}

	var rows pgx.Rows
	var err error
	if branchIDs == nil {
		query := `SELECT ` + producerColumns + ` FROM producers ORDER BY name, producer_id LIMIT $1 OFFSET $2;`
		rows, err = r.Pool.Query(ctx, query, limit, offset)
	} else {
		query := `SELECT ` + producerColumns + ` FROM producers WHERE branch_id = ANY($1) ORDER BY name, producer_id LIMIT $2 OFFSET $3;`
		rows, err = r.Pool.Query(ctx, query, branchIDs, limit, offset)
	}
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
