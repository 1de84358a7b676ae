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

var _ portsrepo.LineItemRepositoryFacade = (*lineItemRepository)(nil)

type lineItemRepository struct {
	db *sql.DB
}

const lineItemColumns = `line_item_id, producer_id, name, category, quantity, unit, price_per_unit,
	payment_status, proof_image_ref, settlement_batch_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanLineItem(row rowScanner) (models.LineItem, error) {
	var m models.LineItem
	var createdAt, updatedAt string
	if err := row.Scan(&m.LineItemID, &m.ProducerID, &m.Name, &m.Category, &m.Quantity, &m.Unit, &m.PricePerUnit,
		&m.PaymentStatus, &m.ProofImageRef, &m.SettlementBatchID,
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

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryLineItems(ctx context.Context, q queryer, query string, args ...any) ([]domain.LineItem, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
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
	return mapping.ToDomainLineItemSlice(items), nil
}

func (r *lineItemRepository) SaveLineItem(ctx context.Context, item domain.LineItem) error {
	m := mapping.ToModelLineItem(item)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO line_items (`+lineItemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.LineItemID, m.ProducerID, m.Name, m.Category, m.Quantity, m.Unit, m.PricePerUnit,
		m.PaymentStatus, m.ProofImageRef, m.SettlementBatchID,
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save line item %s: %w", m.LineItemID, err)
	}
	return nil
}

func (r *lineItemRepository) UpdateLineItem(ctx context.Context, item domain.LineItem) error {
	m := mapping.ToModelLineItem(item)
	res, err := r.db.ExecContext(ctx, `
		UPDATE line_items
		SET name = ?, category = ?, quantity = ?, unit = ?, price_per_unit = ?, last_updated_at = ?, last_updated_by = ?
		WHERE line_item_id = ? AND payment_status = 'unsettled'`,
		m.Name, m.Category, m.Quantity, m.Unit, m.PricePerUnit, formatTime(m.LastUpdatedAt), m.LastUpdatedBy, m.LineItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update line item %s: %w", m.LineItemID, err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}

	existing, err := r.FindLineItemByID(ctx, m.LineItemID)
	if err != nil {
		return err
	}
	if existing.IsSettled() {
		return fmt.Errorf("%w: line item %s is settled and can no longer be edited", apperrors.ErrConflict, m.LineItemID)
	}
	return fmt.Errorf("line item %s was not updated", m.LineItemID)
}

func (r *lineItemRepository) DeleteLineItem(ctx context.Context, lineItemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM line_items WHERE line_item_id = ?`, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to delete line item %s: %w", lineItemID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFoundError("line item " + lineItemID)
	}
	return nil
}

func (r *lineItemRepository) FindLineItemByID(ctx context.Context, lineItemID string) (*domain.LineItem, error) {
	m, err := scanLineItem(r.db.QueryRowContext(ctx,
		`SELECT `+lineItemColumns+` FROM line_items WHERE line_item_id = ?`, lineItemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("line item " + lineItemID)
		}
		return nil, fmt.Errorf("failed to find line item %s: %w", lineItemID, err)
	}
	d := mapping.ToDomainLineItem(m)
	return &d, nil
}

func (r *lineItemRepository) ListLineItemsByProducer(ctx context.Context, producerID string, status *domain.PaymentStatus) ([]domain.LineItem, error) {
	if status == nil {
		return queryLineItems(ctx, r.db,
			`SELECT `+lineItemColumns+` FROM line_items WHERE producer_id = ? ORDER BY created_at, line_item_id`, producerID)
	}
	return queryLineItems(ctx, r.db,
		`SELECT `+lineItemColumns+` FROM line_items WHERE producer_id = ? AND payment_status = ? ORDER BY created_at, line_item_id`,
		producerID, string(*status))
}
