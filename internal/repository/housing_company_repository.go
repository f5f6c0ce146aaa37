package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// companySelect reconstructs a housing company with its nested owner and
// full address chain. The related rows arrive as JSON_OBJECT columns and
// are decoded into typed refs by scanCompanies.
const companySelect = `SELECT housing_companies.id, housing_companies.name, apartment_count, address_id, housing_companies.user_id,
	JSON_OBJECT('user_id', users.id, 'user_name', users.user_name) AS user,
	JSON_OBJECT('address_id', addresses.id, 'street', streets.name, 'number', addresses.number) AS address,
	JSON_OBJECT('postcode_id', postcodes.id, 'code', postcodes.code, 'name', postcodes.name) AS postcode,
	JSON_OBJECT('city_id', cities.id, 'name', cities.name) AS city
	FROM housing_companies
	JOIN users ON housing_companies.user_id = users.id
	JOIN addresses ON housing_companies.address_id = addresses.id
	JOIN streets ON addresses.street_id = streets.id
	JOIN postcodes ON streets.postcode_id = postcodes.id
	JOIN cities ON postcodes.city_id = cities.id`

// HousingCompanyRepo provides ownership-scoped persistence for housing
// companies, including the cascade delete that removes a company's
// surveys, their answers and the company's address in one transaction.
type HousingCompanyRepo struct {
	db *sql.DB
}

func NewHousingCompanyRepo(db *sql.DB) *HousingCompanyRepo {
	return &HousingCompanyRepo{db: db}
}

func scanCompanies(rows *sql.Rows) ([]*model.HousingCompany, error) {
	var out []*model.HousingCompany
	for rows.Next() {
		hc := new(model.HousingCompany)
		var rawUser, rawAddress, rawPostcode, rawCity []byte
		if err := rows.Scan(&hc.ID, &hc.Name, &hc.ApartmentCount, &hc.AddressID, &hc.UserID,
			&rawUser, &rawAddress, &rawPostcode, &rawCity); err != nil {
			return nil, err
		}
		hc.User = decodeRef[model.UserRef](rawUser)
		hc.Address = decodeRef[model.AddressRef](rawAddress)
		hc.Postcode = decodeRef[model.PostcodeRef](rawPostcode)
		hc.City = decodeRef[model.CityRef](rawCity)
		out = append(out, hc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HousingCompanyRepo) listWhere(ctx context.Context, where string, args ...any) ([]*model.HousingCompany, error) {
	q := companySelect
	if where != "" {
		q += " WHERE " + where
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanCompanies(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No housing companies found")
	}
	return out, nil
}

// ListAll returns every housing company. Admin only.
func (r *HousingCompanyRepo) ListAll(ctx context.Context, actor Actor) ([]*model.HousingCompany, error) {
	if !actor.IsAdmin() {
		return nil, unauthorized("Not authorized")
	}
	return r.listWhere(ctx, "")
}

// ListByUser returns the companies owned by the given user.
func (r *HousingCompanyRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.HousingCompany, error) {
	return r.listWhere(ctx, "housing_companies.user_id = ?", userID)
}

// ListByPostcode returns the companies whose address falls under a postcode.
func (r *HousingCompanyRepo) ListByPostcode(ctx context.Context, postcodeID uint64) ([]*model.HousingCompany, error) {
	return r.listWhere(ctx, "postcodes.id = ?", postcodeID)
}

// ListByCity returns the companies located in a city.
func (r *HousingCompanyRepo) ListByCity(ctx context.Context, cityID uint64) ([]*model.HousingCompany, error) {
	return r.listWhere(ctx, "cities.id = ?", cityID)
}

// ListByStreet returns the companies located on a street.
func (r *HousingCompanyRepo) ListByStreet(ctx context.Context, streetID uint64) ([]*model.HousingCompany, error) {
	return r.listWhere(ctx, "streets.id = ?", streetID)
}

// Get fetches one company. The recorded owner is looked up first and the
// actor authorized against it before the full row is assembled.
func (r *HousingCompanyRepo) Get(ctx context.Context, id uint64, actor Actor) (*model.HousingCompany, error) {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM housing_companies WHERE id = ?", id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Housing company not found")
		}
		return nil, err
	}
	if err := actor.Authorize(ownerID); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, companySelect+" WHERE housing_companies.id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := scanCompanies(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("Housing company not found")
	}
	return out[0], nil
}

// PostHousingCompany carries the fields required to create a company.
type PostHousingCompany struct {
	Name           string `json:"name"`
	ApartmentCount int    `json:"apartment_count"`
	AddressID      uint64 `json:"address_id"`
	UserID         uint64 `json:"user_id"`
}

// Create inserts a company and returns the new id.
func (r *HousingCompanyRepo) Create(ctx context.Context, in PostHousingCompany) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO housing_companies (name, apartment_count, address_id, user_id) VALUES (?, ?, ?, ?)",
		in.Name, in.ApartmentCount, in.AddressID, in.UserID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("No housing companies added")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutHousingCompany carries the updatable company fields.
type PutHousingCompany struct {
	Name           *string `json:"name"`
	ApartmentCount *int    `json:"apartment_count"`
	AddressID      *uint64 `json:"address_id"`
}

// Update sets only the provided fields. Non-admin actors can only reach
// rows they own; zero affected rows reads as not found either way.
func (r *HousingCompanyRepo) Update(ctx context.Context, id uint64, in PutHousingCompany, actor Actor) error {
	var set setClause
	if in.Name != nil {
		set.add("name", *in.Name)
	}
	if in.ApartmentCount != nil {
		set.add("apartment_count", *in.ApartmentCount)
	}
	if in.AddressID != nil {
		set.add("address_id", *in.AddressID)
	}
	if set.empty() {
		return updateFailed("Housing company not updated")
	}
	q := "UPDATE housing_companies SET " + set.assignments() + " WHERE id = ?"
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
		return notFound("Housing company not found")
	}
	return nil
}

// DeleteCascade removes a housing company and everything that exclusively
// depends on it, in dependency order, inside one transaction:
//
//	answers of each survey -> surveys -> company -> address
//
// Answers of a survey must actually be deleted; a survey with zero
// answers aborts the cascade. The standalone SurveyRepo.Delete tolerates
// zero answers, and that asymmetry is kept on purpose.
func (r *HousingCompanyRepo) DeleteCascade(ctx context.Context, id uint64, actor Actor) (err error) {
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

	var ownerID, addressID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT user_id, address_id FROM housing_companies WHERE id = ?", id).
		Scan(&ownerID, &addressID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("Housing company not found")
		}
		return err
	}
	if err = actor.Authorize(ownerID); err != nil {
		return err
	}

	// Surveys of this company, ownership-filtered unless admin.
	sq := "SELECT id FROM surveys WHERE housing_company_id = ?"
	args := []any{id}
	if !actor.IsAdmin() {
		sq += " AND user_id = ?"
		args = append(args, actor.ID)
	}
	rows, qerr := tx.QueryContext(ctx, sq, args...)
	if qerr != nil {
		err = qerr
		return err
	}
	var surveyIDs []uint64
	for rows.Next() {
		var sid uint64
		if err = rows.Scan(&sid); err != nil {
			rows.Close()
			return err
		}
		surveyIDs = append(surveyIDs, sid)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	for _, sid := range surveyIDs {
		var res sql.Result
		res, err = tx.ExecContext(ctx, "DELETE FROM answers WHERE survey_id = ?", sid)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			err = deleteFailed("Answers not deleted")
			return err
		}
	}

	if len(surveyIDs) > 0 {
		dq := "DELETE FROM surveys WHERE housing_company_id = ?"
		dargs := []any{id}
		if !actor.IsAdmin() {
			dq += " AND user_id = ?"
			dargs = append(dargs, actor.ID)
		}
		var res sql.Result
		res, err = tx.ExecContext(ctx, dq, dargs...)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			err = notFound("Surveys not deleted")
			return err
		}
	}

	res, xerr := tx.ExecContext(ctx, "DELETE FROM housing_companies WHERE id = ?", id)
	if xerr != nil {
		err = xerr
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = notFound("Housing company not found")
		return err
	}

	res, xerr = tx.ExecContext(ctx, "DELETE FROM addresses WHERE id = ?", addressID)
	if xerr != nil {
		err = xerr
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = deleteFailed("Address not deleted")
		return err
	}
	return nil
}
