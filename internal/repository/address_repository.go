package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/housing-survey/internal/model"
)

// AddressRepo provides persistence for addresses. An address is owned
// exclusively by its housing company; the cascade delete in
// HousingCompanyRepo removes the address row together with the company.
type AddressRepo struct {
	db *sql.DB
}

func NewAddressRepo(db *sql.DB) *AddressRepo { return &AddressRepo{db: db} }

func (r *AddressRepo) List(ctx context.Context) ([]*model.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, number, street_id FROM addresses ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Address
	for rows.Next() {
		a := new(model.Address)
		if err := rows.Scan(&a.ID, &a.Number, &a.StreetID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No addresses found")
	}
	return out, nil
}

func (r *AddressRepo) Get(ctx context.Context, id uint64) (*model.Address, error) {
	var a model.Address
	err := r.db.QueryRowContext(ctx,
		"SELECT id, number, street_id FROM addresses WHERE id = ?", id).
		Scan(&a.ID, &a.Number, &a.StreetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No addresses found")
		}
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepo) Create(ctx context.Context, number string, streetID uint64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO addresses (number, street_id) VALUES (?, ?)", number, streetID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("Address not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PutAddress carries the updatable address fields.
type PutAddress struct {
	Number   *string `json:"number"`
	StreetID *uint64 `json:"street_id"`
}

func (r *AddressRepo) Update(ctx context.Context, id uint64, in PutAddress) error {
	var set setClause
	if in.Number != nil {
		set.add("number", *in.Number)
	}
	if in.StreetID != nil {
		set.add("street_id", *in.StreetID)
	}
	if set.empty() {
		return updateFailed("Address not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE addresses SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("Address not updated")
	}
	return nil
}

func (r *AddressRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("Address not deleted")
	}
	return nil
}
