package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// ChoiceRepo provides persistence for answer choices.
type ChoiceRepo struct {
	db *sql.DB
}

func NewChoiceRepo(db *sql.DB) *ChoiceRepo { return &ChoiceRepo{db: db} }

func (r *ChoiceRepo) scanList(rows *sql.Rows) ([]*model.Choice, error) {
	var out []*model.Choice
	for rows.Next() {
		c := new(model.Choice)
		if err := rows.Scan(&c.ID, &c.ChoiceText, &c.ChoiceValue); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No choices found")
	}
	return out, nil
}

func (r *ChoiceRepo) List(ctx context.Context) ([]*model.Choice, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, choice_text, choice_value FROM choices ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanList(rows)
}

// ListByValue returns the choices carrying a given numeric value.
func (r *ChoiceRepo) ListByValue(ctx context.Context, value int) ([]*model.Choice, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, choice_text, choice_value FROM choices WHERE choice_value = ?", value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanList(rows)
}

func (r *ChoiceRepo) Get(ctx context.Context, id uint64) (*model.Choice, error) {
	var c model.Choice
	err := r.db.QueryRowContext(ctx,
		"SELECT id, choice_text, choice_value FROM choices WHERE id = ?", id).
		Scan(&c.ID, &c.ChoiceText, &c.ChoiceValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No choices found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *ChoiceRepo) Create(ctx context.Context, choiceText string, choiceValue int) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO choices (choice_text, choice_value) VALUES (?, ?)", choiceText, choiceValue)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Choice not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutChoice carries the updatable choice fields.
type PutChoice struct {
	ChoiceText  *string `json:"choice_text"`
	ChoiceValue *int    `json:"choice_value"`
}

func (r *ChoiceRepo) Update(ctx context.Context, id uint64, in PutChoice) error {
	var set setClause
	if in.ChoiceText != nil {
		set.add("choice_text", *in.ChoiceText)
	}
	if in.ChoiceValue != nil {
		set.add("choice_value", *in.ChoiceValue)
	}
	if set.empty() {
		return updateFailed("Choice not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE choices SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Choice not updated")
	}
	return nil
}

func (r *ChoiceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM choices WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Choice not deleted")
	}
	return nil
}
