package basesvctest

import (
	"context"
	"testing"

	basesvc "catalog_commerce/internal/api/base/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type item struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	Name   map[string]string    `bson:"name,omitempty"`
	Stock  int64                `bson:"stock"`
	Refs   []primitive.ObjectID `bson:"refs,omitempty"`
	Price  part                 `bson:"price"`
	Parts  []part               `bson:"parts,omitempty"`
	Status string               `bson:"status,omitempty"`
}

type part struct {
	Discount float64 `bson:"discount"`
}

func TestMemStore_MatchOperators(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[item]()
	ref := primitive.NewObjectID()

	a := item{Name: map[string]string{"en": "Blue Shirt"}, Stock: 3, Refs: []primitive.ObjectID{ref}, Status: "show"}
	b := item{Name: map[string]string{"fr": "Pantalon"}, Stock: 0, Parts: []part{{Discount: 5}}}
	b.Price.Discount = 0
	s.Seed(a, b)

	count := func(filter bson.M) int64 {
		n, err := s.CountDocuments(ctx, filter)
		require.NoError(t, err)
		return n
	}

	assert.Equal(t, int64(1), count(bson.M{"name.en": bson.M{"$regex": "shirt", "$options": "i"}}))
	assert.Equal(t, int64(1), count(bson.M{"refs": ref}))
	assert.Equal(t, int64(1), count(bson.M{"refs": bson.M{"$in": []primitive.ObjectID{ref}}}))
	assert.Equal(t, int64(1), count(bson.M{"stock": bson.M{"$gt": 0}}))
	assert.Equal(t, int64(1), count(bson.M{"stock": bson.M{"$lt": 1}}))
	assert.Equal(t, int64(2), count(bson.M{"$or": []bson.M{{"status": "show"}, {"stock": 0}}}))
	assert.Equal(t, int64(1), count(bson.M{"parts": bson.M{"$elemMatch": bson.M{"discount": bson.M{"$gt": 0}}}}))
	assert.Equal(t, int64(0), count(bson.M{"$expr": bson.M{"$gt": bson.A{bson.M{"$toDouble": "$price.discount"}, 0}}}))
}

func TestMemStore_SortSkipLimitAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[item]()
	for _, n := range []int64{5, 1, 3} {
		_, err := s.InsertOne(ctx, item{Stock: n})
		require.NoError(t, err)
	}

	got, err := s.Find(ctx, nil, options.Find().SetSort(bson.D{{Key: "stock", Value: -1}}).SetSkip(1).SetLimit(1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Stock)

	n, err := s.UpdateMany(ctx, bson.M{"stock": bson.M{"$gt": 2}}, &basesvc.UpdateData{Set: map[string]interface{}{"status": "hide"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	deleted, err := s.DeleteMany(ctx, bson.M{"status": "hide"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Len(t, s.All(), 1)
}

func TestFindWithPagination(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[item]()
	for i := int64(0); i < 7; i++ {
		s.Seed(item{Stock: i})
	}

	opts := options.Find().SetSort(bson.D{{Key: "stock", Value: -1}})
	page, err := basesvc.FindWithPagination[item](ctx, s, bson.M{"stock": bson.M{"$gt": 0}}, 2, 4, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 6, page.Total)
	assert.EqualValues(t, 2, page.Page)
	assert.EqualValues(t, 4, page.Limit)
	require.Len(t, page.Items, 2)
	assert.EqualValues(t, 2, page.Items[0].Stock)
	assert.EqualValues(t, 1, page.Items[1].Stock)

	page, err = basesvc.FindWithPagination[item](ctx, s, bson.M{}, 0, 0, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Page)
	assert.EqualValues(t, 10, page.Limit)
	assert.Len(t, page.Items, 7)
}

func TestMatch_ExprOverArrays(t *testing.T) {
	positive := func(field string) bson.M {
		return bson.M{"$gt": bson.A{
			bson.M{"$convert": bson.M{"input": field, "to": "double", "onError": 0, "onNull": 0}},
			0,
		}}
	}
	anyPart := bson.M{"$expr": bson.M{"$anyElementTrue": bson.A{
		bson.M{"$map": bson.M{
			"input": bson.M{"$ifNull": bson.A{"$parts", bson.A{}}},
			"as":    "p",
			"in":    positive("$$p.discount"),
		}},
	}}}

	tests := []struct {
		name string
		doc  bson.M
		want bool
	}{
		{"chuỗi dương", bson.M{"parts": bson.A{bson.M{"discount": "0.00"}, bson.M{"discount": "5.00"}}}, true},
		{"số dương", bson.M{"parts": bson.A{bson.M{"discount": int32(3)}}}, true},
		{"toàn số 0", bson.M{"parts": bson.A{bson.M{"discount": "0.00"}, bson.M{"discount": 0.0}}}, false},
		{"chuỗi không phải số", bson.M{"parts": bson.A{bson.M{"discount": "abc"}}}, false},
		{"thiếu field", bson.M{"parts": bson.A{bson.M{}}}, false},
		{"không có mảng", bson.M{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.doc, anyPart))
		})
	}

	scalar := bson.M{"$expr": positive("$price.discount")}
	assert.True(t, Match(bson.M{"price": bson.M{"discount": " 2.50 "}}, scalar))
	assert.False(t, Match(bson.M{"price": bson.M{"discount": ""}}, scalar))
	assert.False(t, Match(bson.M{}, scalar))
}

func TestSeedDocs_KeepsRawValues(t *testing.T) {
	s := NewMemStore[bson.M]()
	ids := s.SeedDocs(bson.M{"price": bson.M{"discount": "2.00"}})
	require.Len(t, ids, 1)

	raw, ok := s.Raw(ids[0])
	require.True(t, ok)
	price, ok := asMap(raw["price"])
	require.True(t, ok)
	assert.Equal(t, "2.00", price["discount"])
}
