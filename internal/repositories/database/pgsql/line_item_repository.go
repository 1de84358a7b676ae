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
	"github.com/jackc/pgx/v5/pgxpool"
)

const lineItemColumns = `line_item_id, producer_id, name, category, quantity, unit, price_per_unit,
		payment_status, proof_image_ref, settlement_batch_id,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxLineItemRepository struct {
	BaseRepository
}

func newPgxLineItemRepository(pool *pgxpool.Pool) portsrepo.LineItemRepositoryFacade {
	return &PgxLineItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LineItemRepositoryFacade = (*PgxLineItemRepository)(nil)

func scanLineItem(row pgx.Row) (models.LineItem, error) {
	var m models.LineItem
	err := row.Scan(
		&m.LineItemID,
		&m.ProducerID,
		&m.Name,
		&m.Category,
		&m.Quantity,
		&m.Unit,
		&m.PricePerUnit,
		&m.PaymentStatus,
		&m.ProofImageRef,
		&m.SettlementBatchID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectLineItems(rows pgx.Rows) ([]models.LineItem, error) {
	defer rows.Close()
	items := []models.LineItem{}
	for rows.Next() {
		m, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return items, nil
}

// SaveLineItem inserts a new unsettled line item.
func (r *PgxLineItemRepository) SaveLineItem(ctx context.Context, item domain.LineItem) error {
	m := mapping.ToModelLineItem(item)
	query := `
		INSERT INTO line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LineItemID, m.ProducerID, m.Name, m.Category, m.Quantity, m.Unit, m.PricePerUnit,
		m.PaymentStatus, m.ProofImageRef, m.SettlementBatchID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save line item %s: %w", m.LineItemID, err)
	}
	return nil
}

// UpdateLineItem rewrites the editable fields of an unsettled item.
func (r *PgxLineItemRepository) UpdateLineItem(ctx context.Context, item domain.LineItem) error {
	m := mapping.ToModelLineItem(item)
	query := `
		UPDATE line_items
		SET name = $2, category = $3, quantity = $4, unit = $5, price_per_unit = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE line_item_id = $1 AND payment_status = 'unsettled';
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.LineItemID, m.Name, m.Category, m.Quantity, m.Unit, m.PricePerUnit,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update line item %s: %w", m.LineItemID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing matched: either the item is gone or it was settled in the meantime.
	existing, err := r.FindLineItemByID(ctx, m.LineItemID)
	if err != nil {
		return err
	}
	if existing.IsSettled() {
		return fmt.Errorf("%w: line item %s is settled and can no longer be edited", apperrors.ErrConflict, m.LineItemID)
	}
	return fmt.Errorf("line item %s was not updated", m.LineItemID)
}

// DeleteLineItem removes a line item; snapshots referencing it keep their frozen copy.
func (r *PgxLineItemRepository) DeleteLineItem(ctx context.Context, lineItemID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM line_items WHERE line_item_id = $1;`, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to delete line item %s: %w", lineItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("line item " + lineItemID)
	}
	return nil
}

// FindLineItemByID retrieves a line item by its ID.
func (r *PgxLineItemRepository) FindLineItemByID(ctx context.Context, lineItemID string) (*domain.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE line_item_id = $1;`
	m, err := scanLineItem(r.Pool.QueryRow(ctx, query, lineItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("line item " + lineItemID)
		}
		return nil, fmt.Errorf("failed to find line item %s: %w", lineItemID, err)
	}
	d := mapping.ToDomainLineItem(m)
	return &d, nil
}

// ListLineItemsByProducer retrieves a producer's items in recording order.
func (r *PgxLineItemRepository) ListLineItemsByProducer(ctx context.Context, producerID string, status *domain.PaymentStatus) ([]domain.LineItem, error) {
	var rows pgx.Rows
	var err error
	if status == nil {
		query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE producer_id = $1 ORDER BY created_at, line_item_id;`
		rows, err = r.Pool.Query(ctx, query, producerID)
	} else {
		query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE producer_id = $1 AND payment_status = $2 ORDER BY created_at, line_item_id;`
		rows, err = r.Pool.Query(ctx, query, producerID, string(*status))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for producer %s: %w", producerID, err)
	}
	items, err := collectLineItems(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLineItemSlice(items), nil
}
