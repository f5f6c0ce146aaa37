package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// StreetRepo provides persistence for streets.
type StreetRepo struct {
	db *sql.DB
}

func NewStreetRepo(db *sql.DB) *StreetRepo { return &StreetRepo{db: db} }

func (r *StreetRepo) List(ctx context.Context) ([]*model.Street, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, postcode_id FROM streets ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Street
	for rows.Next() {
		s := new(model.Street)
		if err := rows.Scan(&s.ID, &s.Name, &s.PostcodeID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No streets found")
	}
	return out, nil
}

func (r *StreetRepo) Get(ctx context.Context, id uint64) (*model.Street, error) {
	var s model.Street
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, postcode_id FROM streets WHERE id = ?", id).
		Scan(&s.ID, &s.Name, &s.PostcodeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No streets found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *StreetRepo) Create(ctx context.Context, name string, postcodeID uint64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO streets (name, postcode_id) VALUES (?, ?)", name, postcodeID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Street not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutStreet carries the updatable street fields.
type PutStreet struct {
	Name       *string `json:"name"`
	PostcodeID *uint64 `json:"postcode_id"`
}

func (r *StreetRepo) Update(ctx context.Context, id uint64, in PutStreet) error {
	var set setClause
	if in.Name != nil {
		set.add("name", *in.Name)
	}
	if in.PostcodeID != nil {
		set.add("postcode_id", *in.PostcodeID)
	}
	if set.empty() {
		return updateFailed("Street not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE streets SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Street not updated")
	}
	return nil
}

func (r *StreetRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM streets WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Street not deleted")
	}
	return nil
}
