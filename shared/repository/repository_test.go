package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/infras/otel/mocks"
	"rentwheels/infras/postgres"
	"rentwheels/shared"
	"rentwheels/shared/dto"
	"rentwheels/shared/model"
	"rentwheels/shared/repository"
)

type vehicle struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Seats int    `db:"seats"`
	model.Metadata
}

const selectColumns = "vehicles.id, vehicles.name, vehicles.seats, vehicles.created_at, vehicles.modified_at, vehicles.created_by, vehicles.modified_by"

func selectFrom(rest string) string {
	return "SELECT " + selectColumns + rest
}

var metadataColumns = []string{"created_at", "modified_at", "created_by", "modified_by"}

func newRepo(t *testing.T) (repository.Repository[vehicle], sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = sqlxDB.Close() })

	repo := repository.NewRepository[vehicle]("vehicle", "vehicles", "id", postgres.NewFromDB(sqlxDB), mocks.NewOtel())

	return repo, mock, sqlxDB
}

func vehicleRows(at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(append([]string{"id", "name", "seats"}, metadataColumns...)).
		AddRow("car-1", "Maruti Swift", 5, at, at, "admin", "admin")
}

func TestRepository_InsertColumns(t *testing.T) {
	repo, _, _ := newRepo(t)

	assert.Equal(t, []string{"id", "name", "seats", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock, _ := newRepo(t)
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vehicles (id, name, seats, created_at, modified_at, created_by, modified_by) VALUES ($1, $2, $3, $4, $5, $6, $7)")).
		WithArgs("car-1", "Maruti Swift", 5, at, at, "admin", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), vehicle{ID: "car-1", Name: "Maruti Swift", Seats: 5, Metadata: model.NewMetadata("admin", at)})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	repo, mock, _ := newRepo(t)
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta(selectFrom(" FROM vehicles WHERE (vehicles.id = $1)"))).
		ExpectQuery().
		WithArgs("car-1").
		WillReturnRows(vehicleRows(at))

	got, err := repo.Get(context.Background(), shared.FilterByID("car-1", "id", "vehicles"))

	require.NoError(t, err)
	assert.Equal(t, "Maruti Swift", got.Name)
	assert.Equal(t, 5, got.Seats)
	assert.Equal(t, "admin", got.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_NoRows(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare("SELECT .+ FROM vehicles").
		ExpectQuery().
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), shared.FilterByID("missing", "id", "vehicles"))

	assert.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestRepository_Get_Error(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare("SELECT .+ FROM vehicles").
		ExpectQuery().
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), shared.FilterByID("car-1", "id", "vehicles"))

	assert.ErrorContains(t, err, "failed to get data (vehicle)")
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock, _ := newRepo(t)
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta(selectFrom(" FROM vehicles WHERE (seats = $1) ORDER BY vehicles.created_at DESC LIMIT $2 OFFSET $3"))).
		ExpectQuery().
		WithArgs(5, 10, 10).
		WillReturnRows(vehicleRows(at))

	filter := dto.NewFilterGroup(dto.Filter{Field: "seats", Value: 5, Operator: dto.FilterOperatorEq})
	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "DESC"}, filter)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_NoPaging(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta(selectFrom(" FROM vehicles"))).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows(append([]string{"id", "name", "seats"}, metadataColumns...)))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{}, dto.FilterGroup{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_Count(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(vehicles.id) FROM vehicles WHERE (LOWER(name) LIKE LOWER($1))")).
		ExpectQuery().
		WithArgs("%swift%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.NewFilterGroup(dto.Filter{Field: "name", Value: "swift", Operator: dto.FilterOperatorLike}))

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Exist(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM vehicles WHERE (vehicles.name = $1))")).
		ExpectQuery().
		WithArgs("Maruti Swift").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), shared.FilterByID("Maruti Swift", "name", "vehicles"))

	require.NoError(t, err)
	assert.True(t, exist)
}

func TestRepository_Exist_RequiresFilter(t *testing.T) {
	repo, _, _ := newRepo(t)

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})

	assert.ErrorIs(t, err, repository.ErrRequiredFilter)
}

func TestRepository_Update_SortedColumns(t *testing.T) {
	repo, mock, _ := newRepo(t)
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles SET modified_at = $1, modified_by = $2, seats = $3 WHERE (vehicles.id = $4)")).
		WithArgs(at, "admin", 7, "car-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"seats": 7, "modified_by": "admin", "modified_at": at}, shared.FilterByID("car-1", "id", "vehicles"))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_RequiresFilter(t *testing.T) {
	repo, _, _ := newRepo(t)

	err := repo.Update(context.Background(), map[string]any{"seats": 7}, dto.FilterGroup{})

	assert.ErrorIs(t, err, repository.ErrRequiredFilter)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vehicles WHERE (vehicles.id = $1)")).
		WithArgs("car-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), shared.FilterByID("car-1", "id", "vehicles")))
	assert.ErrorIs(t, repo.Delete(context.Background(), dto.FilterGroup{}), repository.ErrRequiredFilter)
}

func TestRepository_DeleteAll(t *testing.T) {
	repo, mock, _ := newRepo(t)

	t.Run("whole table", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vehicles")).WillReturnResult(sqlmock.NewResult(0, 4))

		deleted, err := repo.DeleteAll(context.Background(), dto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, int64(4), deleted)
	})

	t.Run("scoped by filter", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vehicles WHERE (vehicles.id = $1)")).
			WithArgs("car-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.DeleteAll(context.Background(), shared.FilterByID("car-1", "id", "vehicles"))

		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TxOperations(t *testing.T) {
	repo, mock, db := newRepo(t)
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta(selectFrom(" FROM vehicles WHERE (vehicles.id = $1) FOR UPDATE"))).
		ExpectQuery().
		WithArgs("car-1").
		WillReturnRows(vehicleRows(at))
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(vehicles.id) FROM vehicles")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectPrepare(regexp.QuoteMeta(selectFrom(" FROM vehicles WHERE (vehicles.name = $1) ORDER BY vehicles.created_at DESC LIMIT $2"))).
		ExpectQuery().
		WithArgs("Maruti Swift", 1).
		WillReturnRows(vehicleRows(at))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vehicles WHERE (vehicles.id = $1)")).
		WithArgs("car-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	got, err := repo.GetForUpdateTx(context.Background(), tx, shared.FilterByID("car-1", "id", "vehicles"))
	require.NoError(t, err)
	assert.Equal(t, "car-1", got.ID)

	count, err := repo.CountTx(context.Background(), tx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	latest, err := repo.GetAllTx(context.Background(), tx,
		dto.QueryParams{Limit: 1, SortBy: "created_at", SortDir: "DESC"},
		dto.NewFilterGroup(dto.Filter{Field: "name", Value: "Maruti Swift", Operator: dto.FilterOperatorEq, Table: "vehicles"}))
	require.NoError(t, err)
	assert.Len(t, latest, 1)

	require.NoError(t, repo.DeleteTx(context.Background(), tx, shared.FilterByID("car-1", "id", "vehicles")))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_CommitAndRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	defer sqlxDB.Close()

	transactor := repository.NewTransactor(postgres.NewFromDB(sqlxDB), mocks.NewOtel())

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = transactor.WithTransaction(context.Background(), func(tx *sqlx.Tx) error { return nil })
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("car already booked")
	err = transactor.WithTransaction(context.Background(), func(tx *sqlx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
