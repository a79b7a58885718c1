package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStatusCodeOf(t *testing.T) {
	assert.Equal(t, StatusNotFound, StatusCodeOf(ErrNotFound))
	assert.Equal(t, StatusBadRequest, StatusCodeOf(fmt.Errorf("ids: %w", ErrRequiredField)))
	assert.Equal(t, StatusInternalServerError, StatusCodeOf(errors.New("boom")))
	assert.Equal(t, StatusInternalServerError, StatusCodeOf(&Error{Message: "no status"}))
}

func TestErrorIs(t *testing.T) {
	err := NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, errors.New("driver"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.EqualError(t, errors.Unwrap(err), "driver")
}

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
	assert.ErrorIs(t, ConvertMongoError(mongo.ErrNoDocuments), ErrNotFound)

	already := NewError(ErrCodeValidationFormat, "bad", StatusBadRequest, nil)
	assert.Same(t, already, ConvertMongoError(already))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	converted := ConvertMongoError(dup)
	assert.Equal(t, StatusConflict, StatusCodeOf(converted))
	assert.Equal(t, dup.Error(), converted.Error(), "giữ nguyên message của driver")

	validation := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "Document failed validation"}}}
	assert.Equal(t, StatusBadRequest, StatusCodeOf(ConvertMongoError(validation)))

	badValue := mongo.CommandError{Code: 2, Message: "bad value"}
	assert.Equal(t, StatusBadRequest, StatusCodeOf(ConvertMongoError(badValue)))

	other := mongo.CommandError{Code: 8000, Message: "atlas error"}
	assert.Equal(t, StatusInternalServerError, StatusCodeOf(ConvertMongoError(other)))

	plain := ConvertMongoError(errors.New("weird"))
	assert.Equal(t, StatusInternalServerError, StatusCodeOf(plain))
	assert.EqualError(t, plain, "weird")
}
