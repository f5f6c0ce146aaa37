package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/housing-survey/internal/utils"
)

func newUserMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestUserCreateNormalizesEmailAndHashes(t *testing.T) {
	repo, mock := newUserMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (user_name, email, password, role) VALUES (?, ?, ?, ?)")).
		WithArgs("Maija", "maija@example.fi", sqlmock.AnyArg(), RoleUser).
		WillReturnResult(sqlmock.NewResult(4, 1))

	id, err := repo.Create(context.Background(), "Maija", "  Maija@Example.FI ", "salasana123", RoleUser, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo, mock := newUserMock(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	_, err := repo.Create(context.Background(), "Maija", "maija@example.fi", "salasana123", RoleUser, bcrypt.MinCost)
	assert.True(t, errors.Is(err, ErrEmailExists))
}

func TestUserGetByEmailIncludesHash(t *testing.T) {
	repo, mock := newUserMock(t)
	hash, err := utils.HashPassword("salasana123", bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_name, email, password, role FROM users WHERE email = ? LIMIT 1")).
		WithArgs("maija@example.fi").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "password", "role"}).
			AddRow(4, "Maija", "maija@example.fi", hash, RoleUser))

	u, err := repo.GetByEmail(context.Background(), "Maija@Example.fi")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "salasana123"))
	assert.False(t, utils.VerifyPassword(u.PasswordHash, "wrong"))
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	repo, mock := newUserMock(t)
	pw := "uusisalasana"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = ? WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 4, PutUser{Password: &pw}, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetUnknownIsNotFound(t *testing.T) {
	repo, mock := newUserMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_name, email, role FROM users WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "role"}))

	_, err := repo.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "No users found", err.Error())
}
