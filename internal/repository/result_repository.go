package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

const resultSelect = `SELECT results.id, results.date_time, results.filename, results.survey_id,
	JSON_OBJECT('survey_id', surveys.id, 'start_date', surveys.start_date, 'end_date', surveys.end_date,
		'min_responses', surveys.min_responses, 'max_responses', surveys.max_responses,
		'survey_status', surveys.survey_status, 'user_id', surveys.user_id,
		'survey_key', surveys.survey_key, 'housing_company_id', surveys.housing_company_id) AS survey,
	JSON_OBJECT('housing_company_id', housing_companies.id, 'name', housing_companies.name,
		'street', streets.name, 'street_number', addresses.number,
		'postcode', postcodes.code, 'city', cities.name) AS housing_company
	FROM results
	JOIN surveys ON results.survey_id = surveys.id
	JOIN housing_companies ON surveys.housing_company_id = housing_companies.id
	JOIN addresses ON housing_companies.address_id = addresses.id
	JOIN streets ON addresses.street_id = streets.id
	JOIN postcodes ON streets.postcode_id = postcodes.id
	JOIN cities ON postcodes.city_id = cities.id`

// ResultRepo stores uploaded report documents attached to surveys.
// Results have no owner column of their own; every scoped operation goes
// through the owning survey's user_id.
type ResultRepo struct {
	db *sql.DB
}

func NewResultRepo(db *sql.DB) *ResultRepo { return &ResultRepo{db: db} }

func scanResults(rows *sql.Rows) ([]*model.Result, error) {
	var out []*model.Result
	for rows.Next() {
		res := new(model.Result)
		var rawSurvey, rawCompany []byte
		if err := rows.Scan(&res.ID, &res.DateTime, &res.Filename, &res.SurveyID,
			&rawSurvey, &rawCompany); err != nil {
			return nil, err
		}
		res.Survey = decodeRef[model.SurveyRef](rawSurvey)
		res.HousingCompany = decodeRef[model.ResultCompanyRef](rawCompany)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ResultRepo) listWhere(ctx context.Context, where string, args ...any) ([]*model.Result, error) {
	q := resultSelect
	if where != "" {
		q += " WHERE " + where
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No results found")
	}
	return out, nil
}

// List returns every result for admins and only results on the actor's
// own surveys otherwise.
func (r *ResultRepo) List(ctx context.Context, actor Actor) ([]*model.Result, error) {
	if actor.IsAdmin() {
		return r.listWhere(ctx, "")
	}
	return r.listWhere(ctx, "surveys.user_id = ?", actor.ID)
}

// ListBySurvey returns the results attached to one survey the actor may see.
func (r *ResultRepo) ListBySurvey(ctx context.Context, surveyID uint64, actor Actor) ([]*model.Result, error) {
	if actor.IsAdmin() {
		return r.listWhere(ctx, "results.survey_id = ?", surveyID)
	}
	return r.listWhere(ctx, "results.survey_id = ? AND surveys.user_id = ?", surveyID, actor.ID)
}

// Get fetches one result the actor may see.
func (r *ResultRepo) Get(ctx context.Context, id uint64, actor Actor) (*model.Result, error) {
	var out []*model.Result
	var err error
	if actor.IsAdmin() {
		out, err = r.listWhere(ctx, "results.id = ?", id)
	} else {
		out, err = r.listWhere(ctx, "results.id = ? AND surveys.user_id = ?", id, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Create records an uploaded file against a survey the actor owns.
func (r *ResultRepo) Create(ctx context.Context, dateTime, filename string, surveyID uint64, actor Actor) (uint64, error) {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM surveys WHERE id = ?", surveyID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, notFound("Survey not found")
		}
		return 0, err
	}
	if err := actor.Authorize(ownerID); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO results (date_time, filename, survey_id) VALUES (?, ?, ?)",
		dateTime, filename, surveyID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Result not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutResult carries the updatable result fields.
type PutResult struct {
	DateTime *string `json:"date_time"`
	Filename *string `json:"filename"`
	SurveyID *uint64 `json:"survey_id"`
}

// Update sets only the provided fields, reaching the row through a join
// on the owning survey so non-admins cannot touch foreign results.
func (r *ResultRepo) Update(ctx context.Context, id uint64, in PutResult, actor Actor) error {
	var set setClause
	if in.DateTime != nil {
		set.add("results.date_time", *in.DateTime)
	}
	if in.Filename != nil {
		set.add("results.filename", *in.Filename)
	}
	if in.SurveyID != nil {
		set.add("results.survey_id", *in.SurveyID)
	}
	if set.empty() {
		return updateFailed("Result not updated")
	}
	q := "UPDATE results JOIN surveys ON results.survey_id = surveys.id SET " +
		set.assignments() + " WHERE results.id = ?"
	args := append(set.args, id)
	if !actor.IsAdmin() {
		q += " AND surveys.user_id = ?"
		args = append(args, actor.ID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Result not updated")
	}
	return nil
}

// Delete removes a result the actor owns via its survey.
func (r *ResultRepo) Delete(ctx context.Context, id uint64, actor Actor) error {
	q := "DELETE results FROM results JOIN surveys ON results.survey_id = surveys.id WHERE results.id = ?"
	args := []any{id}
	if !actor.IsAdmin() {
		q += " AND surveys.user_id = ?"
		args = append(args, actor.ID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Result not deleted")
	}
	return nil
}
