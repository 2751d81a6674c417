package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinichq/clinic-api/internal/model"
)

func (r *prescriptionRepository) GetByRecord(ctx context.Context, recordID int64) (*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE record_id = $1`
	var prescription model.Prescription
	if err := r.GetDB().GetContext(ctx, &prescription, query, recordID); err != nil {
		return nil, fmt.Errorf("failed to get prescription by record: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListItems(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error) {
	query := `
		SELECT id, prescription_id, medicine_id, quantity, note
		FROM prescription_items
		WHERE prescription_id = $1
		ORDER BY id ASC
	`
	var items []*model.PrescriptionItem
	if err := r.GetDB().SelectContext(ctx, &items, query, prescriptionID); err != nil {
		return nil, fmt.Errorf("failed to list prescription items: %w", err)
	}
	return items, nil
}

// SaveWithItems upserts the header by record_id, then replaces the whole
// item set. One transaction, so readers never see a half-replaced list and
// a failed insert rolls the delete back too.
func (r *prescriptionRepository) SaveWithItems(ctx context.Context, prescription *model.Prescription, items []*model.PrescriptionItem) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO prescriptions (
				code, date, notes, ai_alerts, record_id, created_by
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (record_id) DO UPDATE SET
				date = EXCLUDED.date,
				notes = EXCLUDED.notes,
				ai_alerts = EXCLUDED.ai_alerts
			RETURNING id, code, created_by
		`
		prescription.Date = time.Now()
		err := tx.QueryRowxContext(ctx, headerQuery,
			prescription.Code,
			prescription.Date,
			prescription.Notes,
			prescription.AIAlerts,
			prescription.RecordID,
			prescription.CreatedBy,
		).Scan(&prescription.ID, &prescription.Code, &prescription.CreatedBy)
		if err != nil {
			return fmt.Errorf("failed to upsert prescription: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM prescription_items WHERE prescription_id = $1`,
			prescription.ID,
		); err != nil {
			return fmt.Errorf("failed to clear prescription items: %w", err)
		}

		itemQuery := `
			INSERT INTO prescription_items (prescription_id, medicine_id, quantity, note)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		for _, item := range items {
			item.PrescriptionID = prescription.ID
			if err := tx.QueryRowxContext(ctx, itemQuery,
				item.PrescriptionID,
				item.MedicineID,
				item.Quantity,
				item.Note,
			).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to insert prescription item: %w", err)
			}
		}
		return nil
	})
}
