package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/housing-survey/internal/model"
)

func newSurveyMock(t *testing.T) (*SurveyRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSurveyRepo(db, 10), mock
}

func TestSurveyCreateFillsServerFields(t *testing.T) {
	repo, mock := newSurveyMock(t)
	repo.keyGen = func(n int) (string, error) { return "freekey123", nil }
	actor := Actor{ID: 7, Role: RoleUser}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, apartment_count FROM housing_companies WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "apartment_count"}).AddRow(7, 24))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM surveys WHERE survey_key = ?")).
		WithArgs("freekey123").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO surveys").
		WithArgs(nil, nil, nil, 24, model.SurveyStatusOpen, uint64(7), "freekey123", uint64(5)).
		WillReturnResult(sqlmock.NewResult(31, 1))

	s, err := repo.Create(context.Background(), PostSurvey{HousingCompanyID: 5}, actor)
	require.NoError(t, err)
	assert.Equal(t, uint64(31), s.ID)
	assert.Equal(t, 24, s.MaxResponses)
	assert.Equal(t, model.SurveyStatusOpen, s.SurveyStatus)
	assert.Equal(t, "freekey123", s.SurveyKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSurveyCreateRetriesOnKeyCollision(t *testing.T) {
	repo, mock := newSurveyMock(t)
	keys := []string{"taken00001", "free000001"}
	repo.keyGen = func(n int) (string, error) {
		k := keys[0]
		keys = keys[1:]
		return k, nil
	}
	actor := Actor{ID: 7, Role: RoleUser}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, apartment_count FROM housing_companies WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "apartment_count"}).AddRow(7, 12))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM surveys WHERE survey_key = ?")).
		WithArgs("taken00001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM surveys WHERE survey_key = ?")).
		WithArgs("free000001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO surveys").
		WithArgs(nil, nil, nil, 12, model.SurveyStatusOpen, uint64(7), "free000001", uint64(5)).
		WillReturnResult(sqlmock.NewResult(32, 1))

	s, err := repo.Create(context.Background(), PostSurvey{HousingCompanyID: 5}, actor)
	require.NoError(t, err)
	assert.Equal(t, "free000001", s.SurveyKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSurveyCreateForeignCompany(t *testing.T) {
	repo, mock := newSurveyMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, apartment_count FROM housing_companies WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "apartment_count"}).AddRow(7, 24))

	_, err := repo.Create(context.Background(), PostSurvey{HousingCompanyID: 5}, Actor{ID: 9, Role: RoleUser})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestSurveyDeleteToleratesZeroAnswers(t *testing.T) {
	repo, mock := newSurveyMock(t)
	actor := Actor{ID: 7, Role: RoleUser}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM surveys WHERE id = ?")).
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	// Unlike the housing company cascade, zero deleted answers is fine here.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM answers WHERE survey_id = ?")).
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM surveys WHERE id = ?")).
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 21, actor)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSurveyGetByKeyNotFound(t *testing.T) {
	repo, mock := newSurveyMock(t)
	mock.ExpectQuery("SELECT surveys.id,").
		WithArgs("nosuchkey1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "start_date", "end_date", "min_responses", "max_responses",
			"survey_status", "user_id", "survey_key", "housing_company_id", "user", "housing_company",
		}))

	_, err := repo.GetByKey(context.Background(), "nosuchkey1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Survey not found", err.Error())
}

func TestSurveyListScopedToOwner(t *testing.T) {
	repo, mock := newSurveyMock(t)
	mock.ExpectQuery("WHERE surveys.user_id = ?").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "start_date", "end_date", "min_responses", "max_responses",
			"survey_status", "user_id", "survey_key", "housing_company_id", "user", "housing_company",
		}).AddRow(21, nil, nil, nil, 24, model.SurveyStatusOpen, 7, "freekey123", 5,
			[]byte(`{"user_id":7,"user_name":"maija"}`),
			[]byte(`{"housing_company_id":5,"name":"As Oy Esimerkki"}`)))

	out, err := repo.List(context.Background(), Actor{ID: 7, Role: RoleUser})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "As Oy Esimerkki", out[0].HousingCompany.Name)
	assert.Nil(t, out[0].StartDate)
}
