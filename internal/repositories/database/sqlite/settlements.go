package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/produce_settlement_app/internal/core/settlement"
	"github.com/SscSPs/produce_settlement_app/internal/models"
	"github.com/SscSPs/produce_settlement_app/internal/utils/mapping"
	"github.com/SscSPs/produce_settlement_app/internal/utils/pagination"
	"github.com/google/uuid"
)

var _ portsrepo.SettlementRepositoryFacade = (*settlementRepository)(nil)

type settlementRepository struct {
	db *sql.DB
}

const settlementColumns = `batch_id, producer_id, total_amount, settled_amount, product_count,
	proof_image_ref, settlement_date, settlement_method, notes, created_at, created_by`

func scanSettlement(row rowScanner) (models.SettlementBatch, error) {
	var m models.SettlementBatch
	var settlementDate, createdAt string
	if err := row.Scan(&m.BatchID, &m.ProducerID, &m.TotalAmount, &m.SettledAmount, &m.ProductCount,
		&m.ProofImageRef, &settlementDate, &m.SettlementMethod, &m.Notes, &createdAt, &m.CreatedBy); err != nil {
		return m, err
	}
	var err error
	if m.SettlementDate, err = parseTime(settlementDate); err != nil {
		return m, err
	}
	m.CreatedAt, err = parseTime(createdAt)
	return m, err
}

// RecordSettlement writes the batch, its snapshots and the item status flips
// in one transaction. The store runs on a single connection, so the rows read
// here cannot change before commit.
func (r *settlementRepository) RecordSettlement(ctx context.Context, batch domain.SettlementBatch, lineItemIDs []string) (*domain.SettlementBatch, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE producer_id = ? AND payment_status = 'unsettled'`
	args := []any{batch.ProducerID}
	if len(lineItemIDs) > 0 {
		query = `SELECT ` + lineItemColumns + ` FROM line_items
			WHERE producer_id = ? AND (payment_status = 'unsettled' OR line_item_id IN (` + placeholders(len(lineItemIDs)) + `))`
		args = append(args, stringArgs(lineItemIDs)...)
	}
	locked, err := queryLineItems(ctx, tx, query+` ORDER BY created_at, line_item_id`, args...)
	if err != nil {
		return nil, err
	}

	stored, selected, err := settlement.AssembleBatch(batch, locked, lineItemIDs, uuid.NewString)
	if err != nil {
		return nil, err
	}

	mb := mapping.ToModelSettlementBatch(stored)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlement_batches (`+settlementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mb.BatchID, mb.ProducerID, mb.TotalAmount, mb.SettledAmount, mb.ProductCount,
		mb.ProofImageRef, formatTime(mb.SettlementDate), mb.SettlementMethod, mb.Notes, formatTime(mb.CreatedAt), mb.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert settlement batch %s: %w", mb.BatchID, err)
	}

	for _, snap := range stored.Snapshots {
		ms := mapping.ToModelSettlementSnapshot(snap)
		_, err = tx.ExecContext(ctx, `
			INSERT INTO settlement_snapshots (snapshot_id, batch_id, line_item_id, product_name, quantity, unit, price_per_unit, total_amount, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ms.SnapshotID, ms.BatchID, ms.LineItemID, ms.ProductName,
			ms.Quantity, ms.Unit, ms.PricePerUnit, ms.TotalAmount, formatTime(ms.CreatedAt),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert snapshot for settlement %s: %w", mb.BatchID, err)
		}
	}

	for _, item := range selected {
		_, err = tx.ExecContext(ctx, `
			UPDATE line_items
			SET payment_status = 'settled', proof_image_ref = ?, settlement_batch_id = ?, last_updated_at = ?, last_updated_by = ?
			WHERE line_item_id = ? AND payment_status = 'unsettled'`,
			mb.ProofImageRef, mb.BatchID, formatTime(mb.CreatedAt), mb.CreatedBy, item.LineItemID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to mark line item %s settled: %w", item.LineItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &stored, nil
}

func (r *settlementRepository) FindSettlementByID(ctx context.Context, batchID string) (*domain.SettlementBatch, error) {
	m, err := scanSettlement(r.db.QueryRowContext(ctx,
		`SELECT `+settlementColumns+` FROM settlement_batches WHERE batch_id = ?`, batchID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("settlement " + batchID)
		}
		return nil, fmt.Errorf("failed to find settlement %s: %w", batchID, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT snapshot_id, batch_id, line_item_id, product_name, quantity, unit, price_per_unit, total_amount, created_at
		FROM settlement_snapshots WHERE batch_id = ? ORDER BY product_name, snapshot_id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for settlement %s: %w", batchID, err)
	}
	defer rows.Close()

	snaps := []models.SettlementSnapshot{}
	for rows.Next() {
		var s models.SettlementSnapshot
		var createdAt string
		if err := rows.Scan(&s.SnapshotID, &s.BatchID, &s.LineItemID, &s.ProductName,
			&s.Quantity, &s.Unit, &s.PricePerUnit, &s.TotalAmount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}

	d := mapping.ToDomainSettlementBatch(m)
	d.Snapshots = mapping.ToDomainSettlementSnapshotSlice(snaps)
	return &d, nil
}

func (r *settlementRepository) ListSettlementsByProducer(ctx context.Context, producerID string, limit int, nextToken *string) ([]domain.SettlementBatch, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + settlementColumns + ` FROM settlement_batches WHERE producer_id = ?`
	args := []any{producerID}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %w", apperrors.ErrValidation, err))
		}
		// Row-value comparison over the fixed-width text timestamps.
		query += ` AND (settlement_date, created_at) < (?, ?)`
		args = append(args, formatTime(lastDate), formatTime(lastCreatedAt))
	}
	query += ` ORDER BY settlement_date DESC, created_at DESC LIMIT ?`
	args = append(args, fetchLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query settlements for producer %s: %w", producerID, err)
	}
	defer rows.Close()

	batches := make([]models.SettlementBatch, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		batches = append(batches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}

	var nextTokenVal *string
	if len(batches) > limit {
		last := batches[limit-1]
		token := pagination.EncodeToken(last.SettlementDate, last.CreatedAt)
		nextTokenVal = &token
		batches = batches[:limit]
	}

	result := make([]domain.SettlementBatch, len(batches))
	for i, m := range batches {
		result[i] = mapping.ToDomainSettlementBatch(m)
	}
	return result, nextTokenVal, nil
}
