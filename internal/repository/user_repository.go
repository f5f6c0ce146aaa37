package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/housing-survey/internal/model"
	"github.com/iliyamo/housing-survey/internal/utils"
)

// UserRepo provides persistence for users. Passwords are hashed here at
// the creation boundary; plaintext never reaches any other layer.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user and returns its id. The email is normalized to
// lower case and a duplicate maps to ErrEmailExists (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, userName, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (user_name, email, password, role) VALUES (?, ?, ?, ?)",
		userName, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, createFailed("User not created")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email, including the password
// hash for login verification.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_name, email, password, role FROM users WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No users found")
		}
		return nil, err
	}
	return &u, nil
}

// Get fetches a user by id without the password hash.
func (r *UserRepo) Get(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_name, email, role FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.UserName, &u.Email, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("No users found")
		}
		return nil, err
	}
	return &u, nil
}

// List returns every user without password hashes.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_name, email, role FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.UserName, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("No users found")
	}
	return out, nil
}

// PutUser carries the updatable user fields. A provided password is
// re-hashed before it is stored.
type PutUser struct {
	UserName *string `json:"user_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (r *UserRepo) Update(ctx context.Context, id uint64, in PutUser, cost int) error {
	var set setClause
	if in.UserName != nil {
		set.add("user_name", *in.UserName)
	}
	if in.Email != nil {
		set.add("email", strings.ToLower(strings.TrimSpace(*in.Email)))
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password, cost)
		if err != nil {
			return err
		}
		set.add("password", hash)
	}
	if in.Role != nil {
		set.add("role", *in.Role)
	}
	if set.empty() {
		return updateFailed("User not updated")
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+set.assignments()+" WHERE id = ?",
		append(set.args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return updateFailed("User not updated")
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deleteFailed("User not deleted")
	}
	return nil
}
