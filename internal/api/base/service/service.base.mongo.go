// package basesvc cung cấp các service cơ bản cho việc tương tác với MongoDB
package basesvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "catalog_commerce/internal/api/base/models"
	"catalog_commerce/internal/common"
	"catalog_commerce/internal/utility"
)

// UpdateData định nghĩa kiểu dữ liệu cho partial update
type UpdateData struct {
	Set   map[string]interface{} `bson:"$set,omitempty"`   // Các trường cần update
	Unset map[string]interface{} `bson:"$unset,omitempty"` // Các trường cần xóa
}

// ToUpdateData chuyển đổi interface{} thành UpdateData.
// Map/struct không chứa operator được bọc trong $set.
func ToUpdateData(data interface{}) (*UpdateData, error) {
	if update, ok := data.(*UpdateData); ok {
		return update, nil
	}
	if update, ok := data.(UpdateData); ok {
		return &update, nil
	}

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return nil, err
	}

	_, hasSet := dataMap["$set"]
	_, hasUnset := dataMap["$unset"]
	if hasSet || hasUnset {
		update := &UpdateData{}
		if setVal, ok := dataMap["$set"].(map[string]interface{}); ok {
			update.Set = setVal
		}
		if unsetVal, ok := dataMap["$unset"].(map[string]interface{}); ok {
			update.Unset = unsetVal
		}
		return update, nil
	}

	return &UpdateData{Set: dataMap}, nil
}

// ====================================
// INTERFACE VÀ STRUCT
// ====================================

// BaseServiceMongo định nghĩa các thao tác cơ bản trên một collection.
// Type Parameters:
//   - Model: Kiểu dữ liệu của model
type BaseServiceMongo[Model any] interface {
	// Insert
	InsertOne(ctx context.Context, data Model) (Model, error)
	InsertMany(ctx context.Context, data []Model) ([]Model, error)

	// Find
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)

	// Update
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (Model, error)

	// Delete
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
}

// BaseServiceMongoImpl triển khai BaseServiceMongo trên một *mongo.Collection
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection MongoDB
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// prepareInsert chuyển model thành map và gắn timestamps.
// createdAt/updatedAt đã có giá trị (ví dụ dữ liệu import) được giữ nguyên.
func prepareInsert(data interface{}, now int64) (map[string]interface{}, error) {
	dataMap, err := utility.ToMap(data)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, err)
	}

	// Sparse index chỉ bỏ qua field không tồn tại, không bỏ qua empty string
	for key, value := range dataMap {
		if strValue, ok := value.(string); ok && strValue == "" {
			delete(dataMap, key)
		}
	}

	if !isSetTimestamp(dataMap["createdAt"]) {
		dataMap["createdAt"] = now
	}
	if !isSetTimestamp(dataMap["updatedAt"]) {
		dataMap["updatedAt"] = now
	}
	return dataMap, nil
}

func isSetTimestamp(v interface{}) bool {
	switch t := v.(type) {
	case int64:
		return t > 0
	case int32:
		return t > 0
	}
	return false
}

// ====================================
// INSERT
// ====================================

// InsertOne tạo mới một bản ghi và trả về bản ghi đã lưu
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := prepareInsert(data, utility.CurrentTimeInMilli())
	if err != nil {
		return zero, err
	}

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// InsertMany tạo nhiều bản ghi. Danh sách rỗng là no-op.
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}

	now := utility.CurrentTimeInMilli()
	documents := make([]interface{}, 0, len(data))
	for _, item := range data {
		dataMap, err := prepareInsert(item, now)
		if err != nil {
			return nil, err
		}
		documents = append(documents, dataMap)
	}

	result, err := s.collection.InsertMany(ctx, documents)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return s.Find(ctx, bson.M{"_id": bson.M{"$in": result.InsertedIDs}}, nil)
}

// ====================================
// FIND
// ====================================

// FindOne tìm một document theo điều kiện lọc, không có thì trả về common.ErrNotFound
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	var result T

	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	findResult := s.collection.FindOne(ctx, filter, opts)
	if err := findResult.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	if err := findResult.Decode(&result); err != nil {
		return zero, common.NewError(
			common.ErrCodeValidationFormat,
			err.Error(),
			common.StatusBadRequest,
			err,
		)
	}
	return result, nil
}

// Find tìm tất cả bản ghi theo điều kiện lọc. Luôn trả về slice khác nil.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindOneById tìm một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// CountDocuments đếm số lượng document
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}

	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// FindWithPagination đếm tổng số bản ghi khớp filter rồi lấy một trang.
// Sort trong opts được giữ nguyên, skip/limit bị ghi đè theo page/limit.
func FindWithPagination[T any](ctx context.Context, svc BaseServiceMongo[T], filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if opts == nil {
		opts = options.Find()
	}
	page, limit, skip, err := basemodels.Pagination(page, limit)
	if err != nil {
		return nil, err
	}
	opts.SetSkip(skip)
	opts.SetLimit(limit)

	total, err := svc.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := svc.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &basemodels.PaginateResult[T]{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// ====================================
// UPDATE
// ====================================

func withUpdatedAt(update interface{}) (*UpdateData, error) {
	updateData, err := ToUpdateData(update)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, err)
	}
	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}
	updateData.Set["updatedAt"] = utility.CurrentTimeInMilli()
	return updateData, nil
}

// UpdateOne cập nhật document đầu tiên khớp filter, trả về số document khớp.
// Không khớp document nào không phải là lỗi.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	updateData, err := withUpdatedAt(update)
	if err != nil {
		return 0, err
	}

	result, err := s.collection.UpdateOne(ctx, filter, updateData, options.Update().SetUpsert(false))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.MatchedCount, nil
}

// UpdateMany cập nhật mọi document khớp filter trong một lệnh, trả về số document khớp
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	updateData, err := withUpdatedAt(update)
	if err != nil {
		return 0, err
	}

	result, err := s.collection.UpdateMany(ctx, filter, updateData, options.Update().SetUpsert(false))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.MatchedCount, nil
}

// UpdateById cập nhật một document theo ObjectId và trả về bản sau khi cập nhật.
// Không tìm thấy trả về common.ErrNotFound.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (T, error) {
	var zero T

	updateData, err := withUpdatedAt(update)
	if err != nil {
		return zero, err
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(false).
		SetReturnDocument(options.After)

	var updated T
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, updateData, opts).Decode(&updated)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return updated, nil
}

// ====================================
// DELETE
// ====================================

// DeleteOne xóa document đầu tiên khớp filter, trả về số document đã xóa (0 không phải lỗi)
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	result, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// DeleteMany xóa mọi document khớp filter, trả về số document đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}
