package postgres

import (
	"context"
	"fmt"
	"time"
)

// PaidRevenueByDateRange sums paid bills issued in [start, end). COALESCE
// makes an empty window come back as zero rather than a NULL scan error.
func (r *billRepository) PaidRevenueByDateRange(ctx context.Context, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0) FROM bills
		WHERE date_issued >= $1 AND date_issued < $2 AND payment_status = 'Paid'
	`
	var total float64
	if err := r.GetDB().GetContext(ctx, &total, query, start, end); err != nil {
		return 0, fmt.Errorf("failed to sum paid revenue: %w", err)
	}
	return total, nil
}
