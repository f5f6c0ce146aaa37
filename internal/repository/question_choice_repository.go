package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// QuestionChoiceRepo manages rows of the questions_choices join table
// directly. Most callers go through QuestionRepo, which replaces links as
// a set; this repo exists for admin maintenance of individual links.
type QuestionChoiceRepo struct {
	db *sql.DB
}

func NewQuestionChoiceRepo(db *sql.DB) *QuestionChoiceRepo {
	return &QuestionChoiceRepo{db: db}
}

func (r *QuestionChoiceRepo) List(ctx context.Context) ([]*model.QuestionChoice, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, question_id, choice_id FROM questions_choices ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.QuestionChoice
	for rows.Next() {
		qc := new(model.QuestionChoice)
		if err := rows.Scan(&qc.ID, &qc.QuestionID, &qc.ChoiceID); err != nil {
			return nil, err
		}
		out = append(out, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No question choices found")
	}
	return out, nil
}

func (r *QuestionChoiceRepo) Get(ctx context.Context, id uint64) (*model.QuestionChoice, error) {
	var qc model.QuestionChoice
	err := r.db.QueryRowContext(ctx,
		"SELECT id, question_id, choice_id FROM questions_choices WHERE id = ?", id).
		Scan(&qc.ID, &qc.QuestionID, &qc.ChoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No question choices found")
		}
		return nil, err
	}
	return &qc, nil
}

func (r *QuestionChoiceRepo) Create(ctx context.Context, questionID, choiceID uint64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO questions_choices (question_id, choice_id) VALUES (?, ?)",
		questionID, choiceID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Question choice not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutQuestionChoice carries the updatable join-row fields.
type PutQuestionChoice struct {
	QuestionID *uint64 `json:"question_id"`
	ChoiceID   *uint64 `json:"choice_id"`
}

func (r *QuestionChoiceRepo) Update(ctx context.Context, id uint64, in PutQuestionChoice) error {
	var set setClause
	if in.QuestionID != nil {
		set.add("question_id", *in.QuestionID)
	}
	if in.ChoiceID != nil {
		set.add("choice_id", *in.ChoiceID)
	}
	if set.empty() {
		return updateFailed("Question choice not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE questions_choices SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Question choice not updated")
	}
	return nil
}

func (r *QuestionChoiceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM questions_choices WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Question choice not deleted")
	}
	return nil
}
