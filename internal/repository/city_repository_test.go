package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*CityRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCityRepo(db), mock
}

func TestCityList(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM cities ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Helsinki").
			AddRow(2, "Espoo"))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Helsinki", out[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityListEmptyIsNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM cities ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.List(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "No cities found", err.Error())
}

func TestCityCreate(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cities (name) VALUES (?)")).
		WithArgs("Vantaa").
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create(context.Background(), "Vantaa")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
}

func TestCityUpdatePartial(t *testing.T) {
	repo, mock := newMock(t)
	name := "Tampere"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cities SET name = ? WHERE id = ?")).
		WithArgs(name, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 3, PutCity{Name: &name})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityUpdateNoFields(t *testing.T) {
	repo, _ := newMock(t)
	err := repo.Update(context.Background(), 3, PutCity{})
	assert.True(t, errors.Is(err, ErrUpdateFailed))
}

func TestCityUpdateMissingRow(t *testing.T) {
	repo, mock := newMock(t)
	name := "Oulu"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cities SET name = ? WHERE id = ?")).
		WithArgs(name, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 99, PutCity{Name: &name})
	assert.True(t, errors.Is(err, ErrUpdateFailed))
	assert.Equal(t, "City not updated", err.Error())
}

func TestCityDeleteMissingRow(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cities WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrDeleteFailed))
}
