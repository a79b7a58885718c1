package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"catalog_commerce/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollections tạo các collection còn thiếu trong db.
// MongoDB tự tạo database khi collection đầu tiên được tạo.
func EnsureCollections(ctx context.Context, db *mongo.Database, names []string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range names {
		if name == "" || have[name] {
			continue
		}
		logger.GetAppLogger().Infof("Collection %s does not exist, creating", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	logger.GetAppLogger().Infof("Collections are ensured in database: %s", db.Name())
	return nil
}

// indexSpec là một index suy ra từ struct tag `index`
type indexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// parseOrder trích xuất thứ tự sắp xếp từ tag (1 hoặc -1)
func parseOrder(tag string) int {
	if strings.Contains(tag, "order:-1") {
		return -1
	}
	return 1
}

// parseIndexTag phân tách tag dạng "single:1;compound:group_name,order:-1" thành danh sách cấu hình
func parseIndexTag(tag string) []map[string]string {
	result := []map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			kv := strings.SplitN(subPart, ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

// indexSpecsFromModel đọc tag `index` trên các field của model.
// Hỗ trợ: text, single, unique (kèm sparse), ttl:<giây>, compound:<tên nhóm>.
func indexSpecsFromModel(model any) ([]indexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []indexSpec
	var groupOrder []string
	groups := map[string]bson.D{}
	groupSparse := map[string]bool{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			if _, ok := cfg["text"]; ok {
				name := bsonField + "_text"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: "text"}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["single"]; ok {
				name := bsonField + "_single"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: parseOrder(tag)}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				if _, sparse := cfg["sparse"]; sparse {
					opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, opts})
			}
			if ttlValue, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("invalid ttl on field %s: %w", field.Name, err)
				}
				name := bsonField + "_ttl"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))})
			}
			if group, ok := cfg["compound"]; ok {
				if _, seen := groups[group]; !seen {
					groupOrder = append(groupOrder, group)
				}
				groups[group] = append(groups[group], bson.E{Key: bsonField, Value: parseOrder(tag)})
				if _, sparse := cfg["sparse"]; sparse {
					groupSparse[group] = true
				}
			}
		}
	}

	for _, group := range groupOrder {
		opts := options.Index().SetName(group)
		if strings.Contains(group, "_unique") {
			opts.SetUnique(true)
		}
		if groupSparse[group] {
			opts.SetSparse(true)
		}
		specs = append(specs, indexSpec{group, groups[group], opts})
	}
	return specs, nil
}

// CreateIndexes tạo các index khai báo bằng tag `index` trên model.
// Index cùng tên nhưng khác cấu hình sẽ bị drop và tạo lại.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model any) error {
	specs, err := indexSpecsFromModel(model)
	if err != nil {
		return err
	}
	return ensureIndexes(ctx, collection, specs)
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection, specs []indexSpec) error {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes of %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("failed to decode index info: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}

	for _, spec := range specs {
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec); err != nil {
			return err
		}
	}
	return nil
}

// compareIndex so sánh index hiện có với cấu hình mới (keys, unique, ttl)
func compareIndex(existingIndex bson.M, keys bson.D, opts *options.IndexOptions) bool {
	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok || len(existingKeys) != len(keys) {
		return false
	}

	for _, key := range keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists {
			return false
		}
		if newVal, isInt := key.Value.(int); isInt {
			switch ev := existingValue.(type) {
			case int32:
				if int(ev) != newVal {
					return false
				}
			case int64:
				if int(ev) != newVal {
					return false
				}
			case float64:
				if int(ev) != newVal {
					return false
				}
			default:
				return false
			}
		} else if existingValue != key.Value {
			return false
		}
	}

	wantUnique := opts.Unique != nil && *opts.Unique
	haveUnique, _ := existingIndex["unique"].(bool)
	if wantUnique != haveUnique {
		return false
	}

	if opts.ExpireAfterSeconds != nil {
		ttl, ok := existingIndex["expireAfterSeconds"].(int32)
		if !ok || ttl != *opts.ExpireAfterSeconds {
			return false
		}
	}
	return true
}

func checkAndReplaceIndex(ctx context.Context, collection *mongo.Collection, existingIndexes map[string]bson.M, spec indexSpec) error {
	log := logger.GetAppLogger().WithFields(logrus.Fields{
		"collection": collection.Name(),
		"index":      spec.Name,
	})

	if existingIndex, exists := existingIndexes[spec.Name]; exists {
		if compareIndex(existingIndex, spec.Keys, spec.Options) {
			log.Debug("Index already up to date")
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
			return fmt.Errorf("failed to drop index %s: %w", spec.Name, err)
		}
		log.Info("Dropped outdated index")
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    spec.Keys,
		Options: spec.Options,
	}); err != nil {
		return fmt.Errorf("failed to create index %s: %w", spec.Name, err)
	}
	log.Info("Created index")
	return nil
}
