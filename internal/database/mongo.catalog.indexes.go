package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// catalogProductIndexSpecs trả về các index trên field lồng nhau của products
// (title.<lang>, prices.price) không khai báo được bằng tag.
func catalogProductIndexSpecs(languages []string) []indexSpec {
	specs := []indexSpec{
		{
			Name:    "product_prices_price",
			Keys:    bson.D{{Key: "prices.price", Value: 1}},
			Options: options.Index().SetName("product_prices_price"),
		},
		{
			Name:    "product_status_categories",
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "categories", Value: 1}},
			Options: options.Index().SetName("product_status_categories"),
		},
	}
	for _, lang := range languages {
		name := "product_title_" + lang
		specs = append(specs, indexSpec{
			Name:    name,
			Keys:    bson.D{{Key: "title." + lang, Value: 1}},
			Options: options.Index().SetName(name),
		})
	}
	return specs
}

// CreateCatalogAdditionalIndexes tạo các index bổ sung cho products. Gọi sau CreateIndexes.
func CreateCatalogAdditionalIndexes(ctx context.Context, products *mongo.Collection, languages []string) error {
	return ensureIndexes(ctx, products, catalogProductIndexSpecs(languages))
}
