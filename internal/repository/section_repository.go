package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// SectionRepo provides persistence for the sections that group questions
// on the survey form.
type SectionRepo struct {
	db *sql.DB
}

func NewSectionRepo(db *sql.DB) *SectionRepo { return &SectionRepo{db: db} }

func (r *SectionRepo) List(ctx context.Context) ([]*model.Section, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, section_text, active FROM sections ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Section
	for rows.Next() {
		s := new(model.Section)
		if err := rows.Scan(&s.ID, &s.SectionText, &s.Active); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No sections found")
	}
	return out, nil
}

func (r *SectionRepo) Get(ctx context.Context, id uint64) (*model.Section, error) {
	var s model.Section
	err := r.db.QueryRowContext(ctx,
		"SELECT id, section_text, active FROM sections WHERE id = ?", id).
		Scan(&s.ID, &s.SectionText, &s.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No sections found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepo) Create(ctx context.Context, sectionText string, active bool) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO sections (section_text, active) VALUES (?, ?)", sectionText, active)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Section not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutSection carries the updatable section fields.
type PutSection struct {
	SectionText *string `json:"section_text"`
	Active      *bool   `json:"active"`
}

func (r *SectionRepo) Update(ctx context.Context, id uint64, in PutSection) error {
	var set setClause
	if in.SectionText != nil {
		set.add("section_text", *in.SectionText)
	}
	if in.Active != nil {
		set.add("active", *in.Active)
	}
	if set.empty() {
		return updateFailed("Section not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE sections SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Section not updated")
	}
	return nil
}

func (r *SectionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sections WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Section not deleted")
	}
	return nil
}
