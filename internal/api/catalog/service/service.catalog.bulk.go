package catalogsvc

import (
	"fmt"

	"catalog_commerce/internal/common"
	"catalog_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildBulkSet lọc body của bulk update thành $set.
// Bỏ qua: key "ids", literal "[]", null, chuỗi/object/mảng rỗng, số và boolean.
// "category" được ép sang ObjectID, "categories" sang mảng ObjectID.
func BuildBulkSet(body map[string]interface{}) (map[string]interface{}, error) {
	set := make(map[string]interface{}, len(body))
	for key, value := range body {
		if key == "ids" || !hasEntries(value) {
			continue
		}

		switch key {
		case "category":
			id, err := objectIDFromValue(key, value)
			if err != nil {
				return nil, err
			}
			set[key] = id
		case "categories":
			ids, err := objectIDsFromBody(value)
			if err != nil {
				return nil, err
			}
			set[key] = ids
		default:
			set[key] = value
		}
	}
	return set, nil
}

// hasEntries cho biết value có nội dung để ghi hay không
func hasEntries(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != "" && v != "[]"
	case map[string]interface{}:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	}
	// số, boolean
	return false
}

func objectIDFromValue(key string, value interface{}) (primitive.ObjectID, error) {
	s, ok := value.(string)
	if !ok {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("%s must be an id string", key),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.ParseObjectID(s)
}

// objectIDsFromBody đọc mảng id dạng chuỗi từ body JSON đã decode
func objectIDsFromBody(raw interface{}) ([]primitive.ObjectID, error) {
	if raw == nil {
		return nil, fmt.Errorf("ids: %w", common.ErrRequiredField)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, common.NewError(common.ErrCodeValidationFormat, "ids must be an array", common.StatusBadRequest, nil)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, common.NewError(common.ErrCodeValidationFormat, "ids must contain id strings", common.StatusBadRequest, nil)
		}
		ids = append(ids, s)
	}
	return utility.StringArray2ObjectIDArray(ids)
}
