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

func newCompanyMock(t *testing.T) (*HousingCompanyRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHousingCompanyRepo(db), mock
}

func TestHousingCompanyGetDecodesJoinedRefs(t *testing.T) {
	repo, mock := newCompanyMock(t)
	mock.ExpectQuery("SELECT user_id FROM housing_companies WHERE id = ?").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	mock.ExpectQuery("SELECT housing_companies.id,").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "apartment_count", "address_id", "user_id", "user", "address", "postcode", "city"}).
			AddRow(10, "As Oy Esimerkki", 24, 3, 7,
				[]byte(`{"user_id":7,"user_name":"maija"}`),
				[]byte(`{"address_id":3,"street":"Mannerheimintie","number":"12"}`),
				[]byte(`{"postcode_id":2,"code":"00100","name":"Helsinki keskusta"}`),
				[]byte(`{"city_id":1,"name":"Helsinki"}`)))

	hc, err := repo.Get(context.Background(), 10, Actor{ID: 7, Role: RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "As Oy Esimerkki", hc.Name)
	assert.Equal(t, "maija", hc.User.UserName)
	assert.Equal(t, "Mannerheimintie", hc.Address.Street)
	assert.Equal(t, "00100", hc.Postcode.Code)
	assert.Equal(t, "Helsinki", hc.City.Name)
}

func TestHousingCompanyGetForeignOwner(t *testing.T) {
	repo, mock := newCompanyMock(t)
	mock.ExpectQuery("SELECT user_id FROM housing_companies WHERE id = ?").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	_, err := repo.Get(context.Background(), 10, Actor{ID: 8, Role: RoleUser})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestHousingCompanyListAllRequiresAdmin(t *testing.T) {
	repo, _ := newCompanyMock(t)
	_, err := repo.ListAll(context.Background(), Actor{ID: 1, Role: RoleSuperadmin})
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Not authorized", err.Error())
}

func TestDeleteCascadeOrder(t *testing.T) {
	repo, mock := newCompanyMock(t)
	actor := Actor{ID: 7, Role: RoleUser}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, address_id FROM housing_companies WHERE id = ?").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "address_id"}).AddRow(7, 3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM surveys WHERE housing_company_id = ? AND user_id = ?")).
		WithArgs(uint64(10), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21).AddRow(22))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM answers WHERE survey_id = ?")).
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM answers WHERE survey_id = ?")).
		WithArgs(uint64(22)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM surveys WHERE housing_company_id = ? AND user_id = ?")).
		WithArgs(uint64(10), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM housing_companies WHERE id = ?")).
		WithArgs(uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM addresses WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteCascade(context.Background(), 10, actor)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeAbortsOnAnswerlessSurvey(t *testing.T) {
	repo, mock := newCompanyMock(t)
	actor := Actor{ID: 7, Role: RoleUser}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, address_id FROM housing_companies WHERE id = ?").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "address_id"}).AddRow(7, 3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM surveys WHERE housing_company_id = ? AND user_id = ?")).
		WithArgs(uint64(10), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM answers WHERE survey_id = ?")).
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 10, actor)
	assert.True(t, errors.Is(err, ErrDeleteFailed))
	assert.Equal(t, "Answers not deleted", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeForeignOwnerRollsBack(t *testing.T) {
	repo, mock := newCompanyMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, address_id FROM housing_companies WHERE id = ?").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "address_id"}).AddRow(7, 3))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 10, Actor{ID: 99, Role: RoleUser})
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.NoError(t, mock.ExpectationsWereMet())
}
