package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetClause(t *testing.T) {
	var set setClause
	assert.True(t, set.empty())

	set.add("name", "Kallio")
	set.add("city_id", uint64(3))
	assert.False(t, set.empty())
	assert.Equal(t, "name = ?, city_id = ?", set.assignments())
	assert.Equal(t, []any{"Kallio", uint64(3)}, set.args)
}
