package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

const answerSelect = `SELECT answers.id, answers.answer, answers.question_id, answers.survey_id,
	JSON_OBJECT('question', questions.question, 'weight', questions.weight) AS question,
	JSON_OBJECT('survey_id', surveys.id, 'start_date', surveys.start_date, 'end_date', surveys.end_date,
		'min_responses', surveys.min_responses, 'max_responses', surveys.max_responses,
		'survey_status', surveys.survey_status, 'user_id', surveys.user_id,
		'survey_key', surveys.survey_key, 'housing_company_id', surveys.housing_company_id) AS survey,
	JSON_OBJECT('user_id', users.id, 'user_name', users.user_name) AS user,
	JSON_OBJECT('housing_company_id', housing_companies.id, 'name', housing_companies.name) AS housing_company
	FROM answers
	JOIN questions ON answers.question_id = questions.id
	JOIN surveys ON answers.survey_id = surveys.id
	JOIN users ON surveys.user_id = users.id
	JOIN housing_companies ON surveys.housing_company_id = housing_companies.id`

// AnswerRepo stores anonymous respondent answers. Submission resolves
// the survey by its public key, never by id, so respondents cannot probe
// surveys they were not given a key for.
type AnswerRepo struct {
	db *sql.DB
}

func NewAnswerRepo(db *sql.DB) *AnswerRepo { return &AnswerRepo{db: db} }

// ListBySurvey returns the detailed answers of a survey the actor owns.
func (r *AnswerRepo) ListBySurvey(ctx context.Context, surveyID uint64, actor Actor) ([]*model.AnswerDetail, error) {
	q := answerSelect + " WHERE answers.survey_id = ?"
	args := []any{surveyID}
	if !actor.IsAdmin() {
		q += " AND surveys.user_id = ?"
		args = append(args, actor.ID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AnswerDetail
	for rows.Next() {
		a := new(model.AnswerDetail)
		var rawQuestion, rawSurvey, rawUser, rawCompany []byte
		if err := rows.Scan(&a.ID, &a.Answer.Answer, &a.QuestionID, &a.SurveyID,
			&rawQuestion, &rawSurvey, &rawUser, &rawCompany); err != nil {
			return nil, err
		}
		a.Question = decodeRef[model.QuestionRef](rawQuestion)
		a.Survey = decodeRef[model.SurveyRef](rawSurvey)
		a.User = decodeRef[model.UserRef](rawUser)
		a.HousingCompany = decodeRef[model.HousingCompanyRef](rawCompany)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No answers found")
	}
	return out, nil
}

// Get fetches one raw answer row.
func (r *AnswerRepo) Get(ctx context.Context, id uint64) (*model.Answer, error) {
	var a model.Answer
	err := r.db.QueryRowContext(ctx,
		"SELECT id, answer, question_id, survey_id FROM answers WHERE id = ?", id).
		Scan(&a.ID, &a.Answer, &a.QuestionID, &a.SurveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No answers found")
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnswerRepo) surveyIDByKey(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, key string) (uint64, error) {
	var id uint64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM surveys WHERE survey_key = ?", key).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, notFound("Survey not found")
		}
		return 0, err
	}
	return id, nil
}

// AnswerInput is one submitted answer inside a batch.
type AnswerInput struct {
	Answer     int    `json:"answer"`
	QuestionID uint64 `json:"question_id"`
}

// CreateByKey stores a single answer for the survey behind the key.
func (r *AnswerRepo) CreateByKey(ctx context.Context, key string, in AnswerInput) (uint64, error) {
	surveyID, err := r.surveyIDByKey(ctx, r.db, key)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO answers (answer, question_id, survey_id) VALUES (?, ?, ?)",
		in.Answer, in.QuestionID, surveyID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Answer not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateBatch stores a full submission in one transaction. The survey key
// is resolved before any insert, so an unknown key fails the whole batch
// without writing a row; any failed insert rolls the batch back.
func (r *AnswerRepo) CreateBatch(ctx context.Context, key string, in []AnswerInput) (err error) {
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

	surveyID, err := r.surveyIDByKey(ctx, tx, key)
	if err != nil {
		return err
	}
	for _, a := range in {
		var res sql.Result
		res, err = tx.ExecContext(ctx,
			"INSERT INTO answers (answer, question_id, survey_id) VALUES (?, ?, ?)",
			a.Answer, a.QuestionID, surveyID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			err = createFailed("Answer not created")
			return err
		}
	}
	return nil
}

// PutAnswer carries the updatable answer fields.
type PutAnswer struct {
	Answer     *int    `json:"answer"`
	QuestionID *uint64 `json:"question_id"`
}

func (r *AnswerRepo) Update(ctx context.Context, id uint64, in PutAnswer) error {
	var set setClause
	if in.Answer != nil {
		set.add("answer", *in.Answer)
	}
	if in.QuestionID != nil {
		set.add("question_id", *in.QuestionID)
	}
	if set.empty() {
		return updateFailed("Answer not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE answers SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Answer not updated")
	}
	return nil
}

func (r *AnswerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM answers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Answer not deleted")
	}
	return nil
}
