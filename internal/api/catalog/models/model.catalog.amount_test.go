package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAmount_UnmarshalBSONValue(t *testing.T) {
	dec, err := primitive.ParseDecimal128("12.5")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value interface{}
		want  Amount
	}{
		{"double", 2.5, 2.5},
		{"int32", int32(3), 3},
		{"int64", int64(4), 4},
		{"decimal128", dec, 12.5},
		{"chuỗi", "2.00", 2},
		{"chuỗi có khoảng trắng", " 7.25 ", 7.25},
		{"chuỗi rỗng", "", 0},
		{"chuỗi không phải số", "n/a", 0},
		{"null", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{"prices": bson.M{"discount": tt.value}})
			require.NoError(t, err)

			var p Product
			require.NoError(t, bson.Unmarshal(raw, &p))
			require.NotNil(t, p.Prices)
			assert.Equal(t, tt.want, p.Prices.Discount)
		})
	}
}

func TestAmount_UnmarshalBSONValue_Variants(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"isCombination": true,
		"variants":      bson.A{bson.M{"price": "10.00", "discount": "0.00"}, bson.M{"price": 9, "discount": "1.50"}},
	})
	require.NoError(t, err)

	var p Product
	require.NoError(t, bson.Unmarshal(raw, &p))
	require.Len(t, p.Variants, 2)
	assert.Equal(t, Amount(10), p.Variants[0].Price)
	assert.Equal(t, Amount(9), p.Variants[1].Price)
	assert.Equal(t, Amount(1.5), p.Variants[1].Discount)
}

func TestAmount_UnmarshalBSONValue_RejectsOtherTypes(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"prices": bson.M{"discount": bson.M{"value": 1}}})
	require.NoError(t, err)

	var p Product
	assert.Error(t, bson.Unmarshal(raw, &p))
}

func TestAmount_MarshalsAsNumber(t *testing.T) {
	raw, err := bson.Marshal(Prices{Price: 8, Discount: 2})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, 2.0, doc["discount"])
	assert.Equal(t, 8.0, doc["price"])
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var p Prices
	require.NoError(t, json.Unmarshal([]byte(`{"price": 8, "discount": "2.00", "originalPrice": null}`), &p))
	assert.Equal(t, Amount(8), p.Price)
	assert.Equal(t, Amount(2), p.Discount)
	assert.Equal(t, Amount(0), p.OriginalPrice)

	assert.Error(t, json.Unmarshal([]byte(`{"discount": "cheap"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"discount": true}`), &p))
}
