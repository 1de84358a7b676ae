package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/produce_settlement_app/internal/core/settlement"
	"github.com/SscSPs/produce_settlement_app/internal/models"
	"github.com/SscSPs/produce_settlement_app/internal/utils/mapping"
	"github.com/SscSPs/produce_settlement_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settlementColumns = `batch_id, producer_id, total_amount, settled_amount, product_count,
		proof_image_ref, settlement_date, settlement_method, notes, created_at, created_by`

type PgxSettlementRepository struct {
	BaseRepository
}

func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

func scanSettlement(row pgx.Row) (models.SettlementBatch, error) {
	var m models.SettlementBatch
	err := row.Scan(
		&m.BatchID,
		&m.ProducerID,
		&m.TotalAmount,
		&m.SettledAmount,
		&m.ProductCount,
		&m.ProofImageRef,
		&m.SettlementDate,
		&m.SettlementMethod,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// RecordSettlement writes a batch, its snapshots and the status flip of the
// settled line items within a single DB transaction.
func (r *PgxSettlementRepository) RecordSettlement(ctx context.Context, batch domain.SettlementBatch, lineItemIDs []string) (*domain.SettlementBatch, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	// 1. Lock the producer's outstanding rows plus whatever was asked for, so a
	// concurrent settlement of the same items waits here and then sees them settled.
	lockQuery := `
		SELECT ` + lineItemColumns + `
		FROM line_items
		WHERE producer_id = $1 AND (payment_status = 'unsettled' OR line_item_id = ANY($2))
		ORDER BY created_at, line_item_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, batch.ProducerID, lineItemIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock line items for producer "+batch.ProducerID, err)
	}
	lockedModels, err := collectLineItems(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read locked line items", err)
	}

	// 2. Validate the selection against the locked rows and build snapshots.
	stored, selected, err := settlement.AssembleBatch(batch, mapping.ToDomainLineItemSlice(lockedModels), lineItemIDs, uuid.NewString)
	if err != nil {
		return nil, err
	}

	// 3. Insert the batch.
	mb := mapping.ToModelSettlementBatch(stored)
	batchQuery := `
		INSERT INTO settlement_batches (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, batchQuery,
		mb.BatchID, mb.ProducerID, mb.TotalAmount, mb.SettledAmount, mb.ProductCount,
		mb.ProofImageRef, mb.SettlementDate, mb.SettlementMethod, mb.Notes, mb.CreatedAt, mb.CreatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert settlement batch "+mb.BatchID, err)
	}

	// 4. Snapshots and status flips go out as one batch.
	pgBatch := &pgx.Batch{}
	snapshotQuery := `
		INSERT INTO settlement_snapshots (snapshot_id, batch_id, line_item_id, product_name, quantity, unit, price_per_unit, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, snap := range stored.Snapshots {
		ms := mapping.ToModelSettlementSnapshot(snap)
		pgBatch.Queue(snapshotQuery,
			ms.SnapshotID, ms.BatchID, ms.LineItemID, ms.ProductName,
			ms.Quantity, ms.Unit, ms.PricePerUnit, ms.TotalAmount, ms.CreatedAt,
		)
	}

	selectedIDs := make([]string, len(selected))
	for i, item := range selected {
		selectedIDs[i] = item.LineItemID
	}
	pgBatch.Queue(`
		UPDATE line_items
		SET payment_status = 'settled', proof_image_ref = $2, settlement_batch_id = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE line_item_id = ANY($1) AND payment_status = 'unsettled';
	`, selectedIDs, mb.ProofImageRef, mb.BatchID, mb.CreatedAt, mb.CreatedBy)

	br := tx.SendBatch(ctx, pgBatch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to write snapshots for settlement "+mb.BatchID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindSettlementByID retrieves a batch and its snapshots.
func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, batchID string) (*domain.SettlementBatch, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlement_batches WHERE batch_id = $1;`
	m, err := scanSettlement(r.Pool.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("settlement " + batchID)
		}
		return nil, fmt.Errorf("failed to find settlement %s: %w", batchID, err)
	}

	snapQuery := `
		SELECT snapshot_id, batch_id, line_item_id, product_name, quantity, unit, price_per_unit, total_amount, created_at
		FROM settlement_snapshots
		WHERE batch_id = $1
		ORDER BY product_name, snapshot_id;
	`
	rows, err := r.Pool.Query(ctx, snapQuery, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for settlement %s: %w", batchID, err)
	}
	defer rows.Close()

	snaps := []models.SettlementSnapshot{}
	for rows.Next() {
		var s models.SettlementSnapshot
		if err := rows.Scan(&s.SnapshotID, &s.BatchID, &s.LineItemID, &s.ProductName,
			&s.Quantity, &s.Unit, &s.PricePerUnit, &s.TotalAmount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row for settlement %s: %w", batchID, err)
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows for settlement %s: %w", batchID, err)
	}

	d := mapping.ToDomainSettlementBatch(m)
	d.Snapshots = mapping.ToDomainSettlementSnapshotSlice(snaps)
	return &d, nil
}

// ListSettlementsByProducer pages through a producer's batches ordered by
// settlement_date DESC with created_at DESC as the tie-breaker.
func (r *PgxSettlementRepository) ListSettlementsByProducer(ctx context.Context, producerID string, limit int, nextToken *string) ([]domain.SettlementBatch, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + settlementColumns + ` FROM settlement_batches WHERE producer_id = $1`
	orderByClause := `ORDER BY settlement_date DESC, created_at DESC`
	args := []interface{}{producerID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %w", apperrors.ErrValidation, decodeErr))
		}
		baseQuery += ` AND (settlement_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query settlements for producer %s: %w", producerID, err)
	}
	defer rows.Close()

	batches := make([]models.SettlementBatch, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan settlement row for producer %s: %w", producerID, err)
		}
		batches = append(batches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating settlement rows for producer %s: %w", producerID, err)
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
