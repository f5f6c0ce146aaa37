package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/housing-survey/internal/model"
)

func TestDecodeRef(t *testing.T) {
	u := decodeRef[model.UserRef]([]byte(`{"user_id":4,"user_name":"maija"}`))
	assert.Equal(t, uint64(4), u.UserID)
	assert.Equal(t, "maija", u.UserName)
}

func TestDecodeRefLenient(t *testing.T) {
	// NULL column.
	assert.Zero(t, decodeRef[model.UserRef](nil))
	// Malformed payload decodes to the zero value instead of failing the row.
	assert.Zero(t, decodeRef[model.UserRef]([]byte(`{"user_id":`)))
	// Unknown fields are ignored.
	c := decodeRef[model.CityRef]([]byte(`{"city_id":2,"name":"Espoo","extra":true}`))
	assert.Equal(t, uint64(2), c.CityID)
}
