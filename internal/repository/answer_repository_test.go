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

func newAnswerMock(t *testing.T) (*AnswerRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAnswerRepo(db), mock
}

func TestAnswerCreateBatch(t *testing.T) {
	repo, mock := newAnswerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM surveys WHERE survey_key = ?")).
		WithArgs("freekey123").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO answers (answer, question_id, survey_id) VALUES (?, ?, ?)")).
		WithArgs(3, uint64(1), uint64(21)).
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO answers (answer, question_id, survey_id) VALUES (?, ?, ?)")).
		WithArgs(1, uint64(2), uint64(21)).
		WillReturnResult(sqlmock.NewResult(102, 1))
	mock.ExpectCommit()

	err := repo.CreateBatch(context.Background(), "freekey123", []AnswerInput{
		{Answer: 3, QuestionID: 1},
		{Answer: 1, QuestionID: 2},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerCreateBatchUnknownKeyInsertsNothing(t *testing.T) {
	repo, mock := newAnswerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM surveys WHERE survey_key = ?")).
		WithArgs("nosuchkey1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.CreateBatch(context.Background(), "nosuchkey1", []AnswerInput{
		{Answer: 2, QuestionID: 1},
	})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Survey not found", err.Error())
	// No insert expectations were registered, so ExpectationsWereMet
	// also proves nothing was written before the key check failed.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerCreateBatchRollsBackOnFailedInsert(t *testing.T) {
	repo, mock := newAnswerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM surveys WHERE survey_key = ?")).
		WithArgs("freekey123").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO answers (answer, question_id, survey_id) VALUES (?, ?, ?)")).
		WithArgs(3, uint64(1), uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateBatch(context.Background(), "freekey123", []AnswerInput{
		{Answer: 3, QuestionID: 1},
	})
	assert.True(t, errors.Is(err, ErrCreateFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerListBySurveyScoped(t *testing.T) {
	repo, mock := newAnswerMock(t)
	mock.ExpectQuery("WHERE answers.survey_id = . AND surveys.user_id = .").
		WithArgs(uint64(21), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "answer", "question_id", "survey_id", "question", "survey", "user", "housing_company",
		}).AddRow(101, 3, 1, 21,
			[]byte(`{"question":"Miten viihdyt?","weight":2}`),
			[]byte(`{"survey_id":21,"survey_key":"freekey123","user_id":7,"housing_company_id":5,"max_responses":24,"survey_status":"open"}`),
			[]byte(`{"user_id":7,"user_name":"maija"}`),
			[]byte(`{"housing_company_id":5,"name":"As Oy Esimerkki"}`)))

	out, err := repo.ListBySurvey(context.Background(), 21, Actor{ID: 7, Role: RoleUser})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Answer.Answer)
	assert.Equal(t, 2, out[0].Question.Weight)
	assert.Equal(t, "freekey123", out[0].Survey.SurveyKey)
}

func TestAnswerListBySurveyEmptyIsNotFound(t *testing.T) {
	repo, mock := newAnswerMock(t)
	mock.ExpectQuery("WHERE answers.survey_id = .").
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "answer", "question_id", "survey_id", "question", "survey", "user", "housing_company",
		}))

	_, err := repo.ListBySurvey(context.Background(), 21, Actor{ID: 1, Role: RoleAdmin})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "No answers found", err.Error())
}
