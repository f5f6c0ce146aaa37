package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorIsAdmin(t *testing.T) {
	assert.True(t, Actor{ID: 1, Role: RoleAdmin}.IsAdmin())
	assert.False(t, Actor{ID: 1, Role: RoleUser}.IsAdmin())
	// superadmin is literally not admin; every ownership decision treats
	// it as a plain user.
	assert.False(t, Actor{ID: 1, Role: RoleSuperadmin}.IsAdmin())
}

func TestActorCanAccess(t *testing.T) {
	owner := Actor{ID: 7, Role: RoleUser}
	assert.True(t, owner.CanAccess(7))
	assert.False(t, owner.CanAccess(8))

	admin := Actor{ID: 1, Role: RoleAdmin}
	assert.True(t, admin.CanAccess(7))

	super := Actor{ID: 2, Role: RoleSuperadmin}
	assert.False(t, super.CanAccess(7))
	assert.True(t, super.CanAccess(2))
}

func TestActorAuthorize(t *testing.T) {
	err := Actor{ID: 3, Role: RoleUser}.Authorize(9)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Unauthorized", err.Error())

	assert.NoError(t, Actor{ID: 3, Role: RoleUser}.Authorize(3))
	assert.NoError(t, Actor{ID: 3, Role: RoleAdmin}.Authorize(9))
}
