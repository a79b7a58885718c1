// Script xuất dữ liệu mẫu của catalog từ MongoDB ra thư mục sample-data.
// Chạy: go run scripts/export_catalog_sample.go
// Xuất tối đa 20 document từ mỗi collection, kèm báo cáo sản phẩm trỏ tới category không tồn tại.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Danh sách collections cần xuất (theo cmd/server/init.go)
var collections = []string{"catalog_products", "catalog_categories"}

const limitPerCollection = 20
const outputDir = "sample-data"

func loadEnv() {
	tryPaths := []string{".env", "config/env/development.env"}
	cwd, _ := os.Getwd()
	for _, p := range tryPaths {
		full := filepath.Join(cwd, p)
		if _, err := os.Stat(full); err == nil {
			_ = godotenv.Load(full)
			break
		}
		parent := filepath.Dir(cwd)
		if _, err := os.Stat(filepath.Join(parent, p)); err == nil {
			_ = godotenv.Load(filepath.Join(parent, p))
			break
		}
	}
}

// convertBSONToJSON chuyển document BSON sang JSON, ObjectID thành hex string
func convertBSONToJSON(doc bson.M) (map[string]interface{}, error) {
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func exportCollection(ctx context.Context, db *mongo.Database, colName string) (int, error) {
	cur, err := db.Collection(colName).Find(ctx, bson.M{}, options.Find().SetLimit(int64(limitPerCollection)))
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return 0, err
	}

	jsonDocs := make([]map[string]interface{}, 0, len(docs))
	for _, d := range docs {
		j, err := convertBSONToJSON(d)
		if err != nil {
			continue
		}
		jsonDocs = append(jsonDocs, j)
	}

	f, err := os.Create(filepath.Join(outputDir, colName+".json"))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return len(jsonDocs), enc.Encode(jsonDocs)
}

// writeDanglingReport liệt kê sản phẩm có category chính không còn trong catalog_categories
func writeDanglingReport(ctx context.Context, db *mongo.Database) error {
	ids, err := db.Collection("catalog_categories").Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return err
	}
	known := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := id.(primitive.ObjectID); ok {
			known = append(known, oid)
		}
	}

	filter := bson.M{"category": bson.M{"$exists": true, "$nin": known}}
	cur, err := db.Collection("catalog_products").Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1, "slug": 1, "category": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var lines []string
	for cur.Next(ctx) {
		var p struct {
			ID       primitive.ObjectID `bson:"_id"`
			Slug     string             `bson:"slug"`
			Category primitive.ObjectID `bson:"category"`
		}
		if err := cur.Decode(&p); err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %s |", p.ID.Hex(), p.Slug, p.Category.Hex()))
	}

	report := "# Sản Phẩm Có Category Không Tồn Tại\n\n| _id | slug | category |\n|-----|------|----------|\n" + strings.Join(lines, "\n") + "\n"
	return os.WriteFile(filepath.Join(outputDir, "_DANGLING_CATEGORIES.md"), []byte(report), 0644)
}

func main() {
	loadEnv()
	uri := os.Getenv("MONGODB_CONNECTION_URI")
	dbName := os.Getenv("MONGODB_DBNAME_CATALOG")
	if uri == "" || dbName == "" {
		log.Fatal("Cần MONGODB_CONNECTION_URI và MONGODB_DBNAME_CATALOG trong .env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Kết nối MongoDB lỗi: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Tạo thư mục output lỗi: %v", err)
	}

	db := client.Database(dbName)
	success := 0
	for _, colName := range collections {
		n, err := exportCollection(ctx, db, colName)
		if err != nil {
			log.Printf("  [SKIP] %s: %v", colName, err)
			continue
		}
		log.Printf("  [OK] %s: %d documents", colName, n)
		success++
	}

	if err := writeDanglingReport(ctx, db); err != nil {
		log.Printf("  [WARN] Không ghi _DANGLING_CATEGORIES.md: %v", err)
	}
	log.Printf("Hoàn thành: %d/%d collections. Output: %s", success, len(collections), outputDir)
}
