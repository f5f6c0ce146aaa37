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

func newQuestionMock(t *testing.T) (*QuestionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewQuestionRepo(db), mock
}

func questionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "question_order", "question", "weight", "active", "section_id",
		"choice_id", "choice_text", "choice_value",
	})
}

func TestQuestionListActiveGroupsChoices(t *testing.T) {
	repo, mock := newQuestionMock(t)
	mock.ExpectQuery("WHERE questions.active = TRUE").
		WillReturnRows(questionRows().
			AddRow(1, 1, "Miten viihdyt talossa?", 2, true, 1, 10, "Huonosti", 1).
			AddRow(1, 1, "Miten viihdyt talossa?", 2, true, 1, 11, "Hyvin", 3).
			AddRow(2, 2, "Toimiiko huolto?", 1, true, 1, nil, nil, nil))

	out, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0].Choices, 2)
	assert.Equal(t, "Hyvin", out[0].Choices[1].ChoiceText)
	// LEFT JOIN keeps a question with no linked choices.
	assert.Empty(t, out[1].Choices)
}

func TestQuestionUpdateReplacesChoiceSet(t *testing.T) {
	repo, mock := newQuestionMock(t)
	text := "Toimiiko huolto hyvin?"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE questions SET question = ? WHERE id = ?")).
		WithArgs(text, uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions WHERE id = ?")).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM questions_choices WHERE question_id = ?")).
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO questions_choices (question_id, choice_id) VALUES (?, ?)")).
		WithArgs(uint64(2), uint64(10)).
		WillReturnResult(sqlmock.NewResult(51, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO questions_choices (question_id, choice_id) VALUES (?, ?)")).
		WithArgs(uint64(2), uint64(12)).
		WillReturnResult(sqlmock.NewResult(52, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), 2, PutQuestion{
		Question:  &text,
		ChoiceIDs: []uint64{10, 12},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionUpdateChoicesOnlyUnknownQuestion(t *testing.T) {
	repo, mock := newQuestionMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), 99, PutQuestion{ChoiceIDs: []uint64{10}})
	assert.True(t, errors.Is(err, ErrUpdateFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionUpdateNoFields(t *testing.T) {
	repo, mock := newQuestionMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Update(context.Background(), 2, PutQuestion{})
	assert.True(t, errors.Is(err, ErrUpdateFailed))
}

func TestQuestionDeleteRemovesLinksFirst(t *testing.T) {
	repo, mock := newQuestionMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM questions_choices WHERE question_id = ?")).
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM questions WHERE id = ?")).
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
