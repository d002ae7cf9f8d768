package license

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupLicenseMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestCreateLicense(t *testing.T) {
	repo, mock, close := setupLicenseMock(t)
	defer close()

	multiplier, _ := decimal.NewFromString("5.0")
	terms := "Full exclusive rights"

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO licenses (name, terms, price_multiplier, is_exclusive)")).
		WithArgs("Exclusive", &terms, sqlmock.AnyArg(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "terms", "price_multiplier", "is_exclusive"}).
			AddRow(3, "Exclusive", terms, "5.0", true))

	lic, err := repo.Create(context.Background(), "Exclusive", &terms, multiplier, true)
	require.NoError(t, err)
	require.Equal(t, 3, lic.ID)
	require.True(t, lic.IsExclusive)
	require.Equal(t, "5.00", lic.PriceMultiplier.StringFixed(2))
}

func TestGetLicenseByID(t *testing.T) {
	repo, mock, close := setupLicenseMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, terms, price_multiplier, is_exclusive")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "terms", "price_multiplier", "is_exclusive"}).
			AddRow(2, "Premium", nil, "2.0", false))

	lic, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Premium", lic.Name)
	require.Nil(t, lic.Terms)
}

func TestGetLicenseByID_NotFound(t *testing.T) {
	repo, mock, close := setupLicenseMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, terms, price_multiplier, is_exclusive")).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "terms", "price_multiplier", "is_exclusive"}))

	_, err := repo.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrLicenseNotFound)
}

func TestGetLicenseByID_QueryFailureIsNotMappedToNotFound(t *testing.T) {
	repo, mock, close := setupLicenseMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, terms, price_multiplier, is_exclusive")).
		WithArgs(2).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByID(context.Background(), 2)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrLicenseNotFound)
}

func TestGetAllLicenses_OrderedByMultiplier(t *testing.T) {
	repo, mock, close := setupLicenseMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY price_multiplier ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "terms", "price_multiplier", "is_exclusive"}).
			AddRow(1, "Standard", nil, "1.0", false).
			AddRow(2, "Premium", nil, "2.0", false).
			AddRow(3, "Exclusive", nil, "5.0", true))

	licenses, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, licenses, 3)
	require.Equal(t, "Standard", licenses[0].Name)
	require.Equal(t, "Exclusive", licenses[2].Name)
}
