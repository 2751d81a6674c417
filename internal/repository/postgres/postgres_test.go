package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-api/internal/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestBillPaidRevenueByDateRange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db)

	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM bills`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(199.99))

	total, err := repo.PaidRevenueByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 199.99, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillPaidRevenueEmptyWindowIsZero(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM bills`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	total, err := repo.PaidRevenueByDateRange(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAppointmentUpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectExec(`UPDATE appointments`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 404, "Checked-in")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAppointmentCountByDateRange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	start := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestMedicalRecordUpsertByAppointment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMedicalRecordRepository(db)

	mock.ExpectQuery(`INSERT INTO medical_records`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_by"}).AddRow(5, 1))

	record := &model.MedicalRecord{AppointmentID: 1, Vitals: "BP 120/80", CreatedBy: 9}
	require.NoError(t, repo.UpsertByAppointment(context.Background(), record))

	// The returning clause reports the original author on conflict.
	assert.Equal(t, int64(5), record.ID)
	assert.Equal(t, int64(1), record.CreatedBy)
}

func TestPrescriptionSaveWithItemsIsTransactional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPrescriptionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO prescriptions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "created_by"}).AddRow(3, "P-AB12CD34", 1))
	mock.ExpectExec(`DELETE FROM prescription_items`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO prescription_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	prescription := &model.Prescription{Code: "P-NEW", RecordID: 5, CreatedBy: 1}
	items := []*model.PrescriptionItem{{MedicineID: 100, Quantity: 10}}

	require.NoError(t, repo.SaveWithItems(context.Background(), prescription, items))
	assert.Equal(t, int64(3), prescription.ID)
	assert.Equal(t, "P-AB12CD34", prescription.Code)
	assert.Equal(t, int64(3), items[0].PrescriptionID)
	assert.Equal(t, int64(7), items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrescriptionSaveRollsBackOnItemFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPrescriptionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO prescriptions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "created_by"}).AddRow(3, "P-AB12CD34", 1))
	mock.ExpectExec(`DELETE FROM prescription_items`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO prescription_items`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	prescription := &model.Prescription{Code: "P-NEW", RecordID: 5, CreatedBy: 1}
	items := []*model.PrescriptionItem{{MedicineID: 100, Quantity: 10}}

	err := repo.SaveWithItems(context.Background(), prescription, items)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
