package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/housing-survey/internal/model"
)

const questionSelect = `SELECT questions.id, question_order, question, weight, questions.active, section_id,
	choices.id, choices.choice_text, choices.choice_value
	FROM questions
	LEFT JOIN questions_choices ON questions_choices.question_id = questions.id
	LEFT JOIN choices ON questions_choices.choice_id = choices.id`

// QuestionRepo provides persistence for questions and their linked
// choices. Choice links live in the questions_choices join table and are
// replaced as a set when a question is updated with choice ids.
type QuestionRepo struct {
	db *sql.DB
}

func NewQuestionRepo(db *sql.DB) *QuestionRepo { return &QuestionRepo{db: db} }

func scanQuestions(rows *sql.Rows) ([]*model.QuestionWithChoices, error) {
	var out []*model.QuestionWithChoices
	byID := map[uint64]*model.QuestionWithChoices{}
	for rows.Next() {
		var q model.Question
		var choiceID sql.NullInt64
		var choiceText sql.NullString
		var choiceValue sql.NullInt64
		if err := rows.Scan(&q.ID, &q.QuestionOrder, &q.Question, &q.Weight, &q.Active, &q.SectionID,
			&choiceID, &choiceText, &choiceValue); err != nil {
			return nil, err
		}
		qc, ok := byID[q.ID]
		if !ok {
			qc = &model.QuestionWithChoices{Question: q}
			byID[q.ID] = qc
			out = append(out, qc)
		}
		if choiceID.Valid {
			qc.Choices = append(qc.Choices, model.Choice{
				ID:          uint64(choiceID.Int64),
				ChoiceText:  choiceText.String,
				ChoiceValue: int(choiceValue.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns the active questions with their choices, in form
// order. This is the public listing respondents see.
func (r *QuestionRepo) ListActive(ctx context.Context) ([]*model.QuestionWithChoices, error) {
	rows, err := r.db.QueryContext(ctx,
		questionSelect+" WHERE questions.active = TRUE ORDER BY question_order, choices.choice_value")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No questions found")
	}
	return out, nil
}

// List returns every question, active or not.
func (r *QuestionRepo) List(ctx context.Context) ([]*model.QuestionWithChoices, error) {
	rows, err := r.db.QueryContext(ctx,
		questionSelect+" ORDER BY question_order, choices.choice_value")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No questions found")
	}
	return out, nil
}

// Get fetches one question with its choices.
func (r *QuestionRepo) Get(ctx context.Context, id uint64) (*model.QuestionWithChoices, error) {
	rows, err := r.db.QueryContext(ctx,
		questionSelect+" WHERE questions.id = ? ORDER BY choices.choice_value", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No questions found")
	}
	return out[0], nil
}

// PostQuestion carries the fields required to create a question, plus the
// ids of the choices to link to it.
type PostQuestion struct {
	QuestionOrder int      `json:"question_order"`
	Question      string   `json:"question"`
	Weight        int      `json:"weight"`
	Active        bool     `json:"active"`
	SectionID     uint64   `json:"section_id"`
	ChoiceIDs     []uint64 `json:"choice_ids"`
}

// Create inserts a question and its choice links in one transaction.
func (r *QuestionRepo) Create(ctx context.Context, in PostQuestion) (id uint64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO questions (question_order, question, weight, active, section_id) VALUES (?, ?, ?, ?, ?)",
		in.QuestionOrder, in.Question, in.Weight, in.Active, in.SectionID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = createFailed("Question not created")
		return 0, err
	}
	last, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	id = uint64(last)
	for _, cid := range in.ChoiceIDs {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO questions_choices (question_id, choice_id) VALUES (?, ?)",
			id, cid); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// PutQuestion carries the updatable question fields. A non-nil ChoiceIDs
// replaces the question's choice links with exactly the given set.
type PutQuestion struct {
	QuestionOrder *int     `json:"question_order"`
	Question      *string  `json:"question"`
	Weight        *int     `json:"weight"`
	Active        *bool    `json:"active"`
	SectionID     *uint64  `json:"section_id"`
	ChoiceIDs     []uint64 `json:"choice_ids"`
}

// Update sets only the provided fields and, when choice ids are supplied,
// swaps the join rows for that explicit set inside the same transaction.
func (r *QuestionRepo) Update(ctx context.Context, id uint64, in PutQuestion) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var set setClause
	if in.QuestionOrder != nil {
		set.add("question_order", *in.QuestionOrder)
	}
	if in.Question != nil {
		set.add("question", *in.Question)
	}
	if in.Weight != nil {
		set.add("weight", *in.Weight)
	}
	if in.Active != nil {
		set.add("active", *in.Active)
	}
	if in.SectionID != nil {
		set.add("section_id", *in.SectionID)
	}
	if set.empty() && in.ChoiceIDs == nil {
		err = updateFailed("Question not updated")
		return err
	}

	if !set.empty() {
		var res sql.Result
		res, err = tx.ExecContext(ctx,
			"UPDATE questions SET "+set.assignments()+" WHERE id = ?",
			append(set.args, id)...)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			err = updateFailed("Question not updated")
			return err
		}
	}

	if in.ChoiceIDs != nil {
		var exists int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM questions WHERE id = ?", id).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			err = updateFailed("Question not updated")
			return err
		}
		if _, err = tx.ExecContext(ctx,
			"DELETE FROM questions_choices WHERE question_id = ?", id); err != nil {
			return err
		}
		for _, cid := range in.ChoiceIDs {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO questions_choices (question_id, choice_id) VALUES (?, ?)",
				id, cid); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes a question and its choice links in one transaction.
func (r *QuestionRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		"DELETE FROM questions_choices WHERE question_id = ?", id); err != nil {
		return err
	}
	res, xerr := tx.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if xerr != nil {
		err = xerr
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = deleteFailed("Question not deleted")
		return err
	}
	return nil
}
