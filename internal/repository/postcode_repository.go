package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// PostcodeRepo provides persistence for postcodes.
type PostcodeRepo struct {
	db *sql.DB
}

func NewPostcodeRepo(db *sql.DB) *PostcodeRepo { return &PostcodeRepo{db: db} }

func (r *PostcodeRepo) List(ctx context.Context) ([]*model.Postcode, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, code, name, city_id FROM postcodes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Postcode
	for rows.Next() {
		p := new(model.Postcode)
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.CityID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No postcodes found")
	}
	return out, nil
}

func (r *PostcodeRepo) Get(ctx context.Context, id uint64) (*model.Postcode, error) {
	var p model.Postcode
	err := r.db.QueryRowContext(ctx,
		"SELECT id, code, name, city_id FROM postcodes WHERE id = ?", id).
		Scan(&p.ID, &p.Code, &p.Name, &p.CityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No postcodes found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostcodeRepo) Create(ctx context.Context, code, name string, cityID uint64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO postcodes (code, name, city_id) VALUES (?, ?, ?)", code, name, cityID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Postcode not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutPostcode carries the updatable postcode fields.
type PutPostcode struct {
	Code   *string `json:"code"`
	Name   *string `json:"name"`
	CityID *uint64 `json:"city_id"`
}

func (r *PostcodeRepo) Update(ctx context.Context, id uint64, in PutPostcode) error {
	var set setClause
	if in.Code != nil {
		set.add("code", *in.Code)
	}
	if in.Name != nil {
		set.add("name", *in.Name)
	}
	if in.CityID != nil {
		set.add("city_id", *in.CityID)
	}
	if set.empty() {
		return updateFailed("Postcode not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE postcodes SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Postcode not updated")
	}
	return nil
}

func (r *PostcodeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM postcodes WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Postcode not deleted")
	}
	return nil
}
