package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
	"github.com/iliyamo/housing-survey/internal/utils"
)

const surveySelect = `SELECT surveys.id, start_date, end_date, min_responses, max_responses, survey_status, surveys.user_id, survey_key, housing_company_id,
	JSON_OBJECT('user_id', users.id, 'user_name', users.user_name) AS user,
	JSON_OBJECT('housing_company_id', housing_companies.id, 'name', housing_companies.name) AS housing_company
	FROM surveys
	JOIN users ON surveys.user_id = users.id
	JOIN housing_companies ON surveys.housing_company_id = housing_companies.id`

// SurveyRepo provides ownership-scoped persistence for surveys. Survey
// keys are generated server side and retried until unique, so clients
// never supply their own key.
type SurveyRepo struct {
	db     *sql.DB
	keyLen int
	keyGen func(int) (string, error)
}

func NewSurveyRepo(db *sql.DB, keyLen int) *SurveyRepo {
	return &SurveyRepo{db: db, keyLen: keyLen, keyGen: utils.GenerateSurveyKey}
}

func scanSurveys(rows *sql.Rows) ([]*model.Survey, error) {
	var out []*model.Survey
	for rows.Next() {
		s := new(model.Survey)
		var rawUser, rawCompany []byte
		if err := rows.Scan(&s.ID, &s.StartDate, &s.EndDate, &s.MinResponses, &s.MaxResponses,
			&s.SurveyStatus, &s.UserID, &s.SurveyKey, &s.HousingCompanyID,
			&rawUser, &rawCompany); err != nil {
			return nil, err
		}
		s.User = decodeRef[model.UserRef](rawUser)
		s.HousingCompany = decodeRef[model.HousingCompanyRef](rawCompany)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every survey for admins and only the actor's own surveys
// otherwise.
func (r *SurveyRepo) List(ctx context.Context, actor Actor) ([]*model.Survey, error) {
	q := surveySelect
	var args []any
	if !actor.IsAdmin() {
		q += " WHERE surveys.user_id = ?"
		args = append(args, actor.ID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanSurveys(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No surveys found")
	}
	return out, nil
}

// ListByCompany returns a company's surveys the actor is allowed to see.
func (r *SurveyRepo) ListByCompany(ctx context.Context, companyID uint64, actor Actor) ([]*model.Survey, error) {
	q := surveySelect + " WHERE surveys.housing_company_id = ?"
	args := []any{companyID}
	if !actor.IsAdmin() {
		q += " AND surveys.user_id = ?"
		args = append(args, actor.ID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanSurveys(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No surveys found")
	}
	return out, nil
}

// Get fetches one survey the actor is allowed to see.
func (r *SurveyRepo) Get(ctx context.Context, id uint64, actor Actor) (*model.Survey, error) {
	q := surveySelect + " WHERE surveys.id = ?"
	args := []any{id}
	if !actor.IsAdmin() {
		q += " AND surveys.user_id = ?"
		args = append(args, actor.ID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanSurveys(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("Survey not found")
	}
	return out[0], nil
}

// GetByKey resolves a survey by its public key. No authorization; this
// is how anonymous respondents reach a survey.
func (r *SurveyRepo) GetByKey(ctx context.Context, key string) (*model.Survey, error) {
	rows, err := r.db.QueryContext(ctx, surveySelect+" WHERE survey_key = ?", key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanSurveys(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("Survey not found")
	}
	return out[0], nil
}

// PostSurvey carries the fields accepted when creating a survey. The key,
// status and max_responses are filled in server side.
type PostSurvey struct {
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	MinResponses     *int    `json:"min_responses"`
	HousingCompanyID uint64  `json:"housing_company_id"`
}

// Create inserts a survey for a company the actor owns (admins may target
// any company). max_responses is copied from the company's apartment
// count and the survey key is regenerated until it does not collide.
func (r *SurveyRepo) Create(ctx context.Context, in PostSurvey, actor Actor) (*model.Survey, error) {
	var ownerID uint64
	var apartmentCount int
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, apartment_count FROM housing_companies WHERE id = ?",
		in.HousingCompanyID).Scan(&ownerID, &apartmentCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Housing company not found")
		}
		return nil, err
	}
	if err := actor.Authorize(ownerID); err != nil {
		return nil, err
	}

	var key string
	for {
		key, err = r.keyGen(r.keyLen)
		if err != nil {
			return nil, err
		}
		var n int
		err = r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM surveys WHERE survey_key = ?", key).Scan(&n)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO surveys (start_date, end_date, min_responses, max_responses, survey_status, user_id, survey_key, housing_company_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.StartDate, in.EndDate, in.MinResponses, apartmentCount,
		model.SurveyStatusOpen, actor.ID, key, in.HousingCompanyID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, createFailed("Survey not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Survey{
		ID:               uint64(id),
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		MinResponses:     in.MinResponses,
		MaxResponses:     apartmentCount,
		SurveyStatus:     model.SurveyStatusOpen,
		UserID:           actor.ID,
		SurveyKey:        key,
		HousingCompanyID: in.HousingCompanyID,
	}, nil
}

// PutSurvey carries the updatable survey fields. The key and owner are
// immutable once created.
type PutSurvey struct {
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	MinResponses *int    `json:"min_responses"`
	MaxResponses *int    `json:"max_responses"`
	SurveyStatus *string `json:"survey_status"`
}

// Update sets only the provided fields on a survey the actor may modify.
func (r *SurveyRepo) Update(ctx context.Context, id uint64, in PutSurvey, actor Actor) error {
	var set setClause
	if in.StartDate != nil {
		set.add("start_date", *in.StartDate)
	}
	if in.EndDate != nil {
		set.add("end_date", *in.EndDate)
	}
	if in.MinResponses != nil {
		set.add("min_responses", *in.MinResponses)
	}
	if in.MaxResponses != nil {
		set.add("max_responses", *in.MaxResponses)
	}
	if in.SurveyStatus != nil {
		set.add("survey_status", *in.SurveyStatus)
	}
	if set.empty() {
		return notFound("Survey not updated")
	}
	q := "UPDATE surveys SET " + set.assignments() + " WHERE id = ?"
	args := append(set.args, id)
	if !actor.IsAdmin() {
		q += " AND user_id = ?"
		args = append(args, actor.ID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("Survey not updated")
	}
	return nil
}

// Delete removes a survey and its answers in one transaction. Unlike the
// housing company cascade, a survey without answers deletes cleanly.
func (r *SurveyRepo) Delete(ctx context.Context, id uint64, actor Actor) (err error) {
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

	var ownerID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT user_id FROM surveys WHERE id = ?", id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("Survey not found")
		}
		return err
	}
	if err = actor.Authorize(ownerID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM answers WHERE survey_id = ?", id); err != nil {
		return err
	}

	res, xerr := tx.ExecContext(ctx, "DELETE FROM surveys WHERE id = ?", id)
	if xerr != nil {
		err = xerr
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = deleteFailed("Survey not deleted")
		return err
	}
	return nil
}
