package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/infras/otel/mocks"
	"rentwheels/infras/postgres"
	"rentwheels/internal/domains/invoice/repository"
)

func newRepo(t *testing.T) (repository.Invoice, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = sqlxDB.Close() })

	return repository.New(postgres.NewFromDB(sqlxDB), mocks.NewOtel()), mock, sqlxDB
}

const (
	byReservation = `FROM invoices WHERE \(invoices\.reservation_id = \$1\) ORDER BY invoices\.created_at DESC LIMIT \$2`
	byNames       = `FROM invoices WHERE \(invoices\.car_name = \$1 AND invoices\.customer_name = \$2\) ORDER BY invoices\.created_at DESC LIMIT \$3`
)

func TestInvoiceRepository_GetPaired_ByReservation(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(byReservation).
		ExpectQuery().
		WithArgs("res-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_number"}).AddRow("inv-1", "INV-2024-001"))

	got, err := repo.GetPaired(context.Background(), "res-1", "Tesla Model S", "Jane")

	require.NoError(t, err)
	assert.Equal(t, "INV-2024-001", got.InvoiceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_GetPaired_FallsBackToNames(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(byReservation).
		ExpectQuery().
		WithArgs("res-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_number"}))
	mock.ExpectPrepare(byNames).
		ExpectQuery().
		WithArgs("Tesla Model S", "Jane", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_number"}).AddRow("inv-7", "INV-2023-007"))

	got, err := repo.GetPaired(context.Background(), "res-1", "Tesla Model S", "Jane")

	require.NoError(t, err)
	assert.Equal(t, "inv-7", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_GetPairedTx_None(t *testing.T) {
	repo, mock, db := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectPrepare(byReservation).
		ExpectQuery().
		WithArgs("res-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	got, err := repo.GetPairedTx(context.Background(), tx, "res-1", "", "")

	require.NoError(t, err)
	assert.Empty(t, got.ID)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
