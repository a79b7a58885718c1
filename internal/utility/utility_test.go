package utility

import (
	"errors"
	"testing"

	"catalog_commerce/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseObjectID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseObjectID("xyz")
	require.Error(t, err)
	assert.Equal(t, common.StatusBadRequest, common.StatusCodeOf(err))
	assert.Equal(t, primitive.NilObjectID, String2ObjectID("xyz"))
}

func TestStringArray2ObjectIDArray(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	ids, err := StringArray2ObjectIDArray([]string{a.Hex(), b.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, ids)
	assert.Equal(t, []string{a.Hex(), b.Hex()}, ObjectIDArray2StringArray(ids))

	_, err = StringArray2ObjectIDArray([]string{a.Hex(), "bad"})
	var e *common.Error
	assert.True(t, errors.As(err, &e))
}

func TestToMap_OmitEmpty(t *testing.T) {
	type sample struct {
		Name  string `bson:"name"`
		Stock int64  `bson:"stock,omitempty"`
	}
	m, err := ToMap(sample{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "x"}, m)
}
