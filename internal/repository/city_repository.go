package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// CityRepo encapsulates all database queries related to cities. It depends
// on a sql.DB connection pool created at startup and injected here.
type CityRepo struct {
	db *sql.DB
}

func NewCityRepo(db *sql.DB) *CityRepo { return &CityRepo{db: db} }

// List returns every city. Zero rows is an error, not an empty slice.
func (r *CityRepo) List(ctx context.Context) ([]*model.City, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM cities ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.City
	for rows.Next() {
		c := new(model.City)
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No cities found")
	}
	return out, nil
}

// Get fetches a city by id.
func (r *CityRepo) Get(ctx context.Context, id uint64) (*model.City, error) {
	var c model.City
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM cities WHERE id = ?", id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No cities found")
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a city and returns the new id.
func (r *CityRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO cities (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("City not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutCity carries the updatable city fields; nil means "leave unchanged".
type PutCity struct {
	Name *string `json:"name"`
}

// Update sets only the provided fields.
func (r *CityRepo) Update(ctx context.Context, id uint64, in PutCity) error {
	var set setClause
	if in.Name != nil {
		set.add("name", *in.Name)
	}
	if set.empty() {
		return updateFailed("City not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE cities SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("City not updated")
	}
	return nil
}

// Delete removes a city by id.
func (r *CityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cities WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("City not deleted")
	}
	return nil
}
