package utility

import (
	"fmt"

	"catalog_commerce/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID chuyển đổi chuỗi thành ObjectID, chuỗi sai định dạng trả về NilObjectID
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ParseObjectID giống String2ObjectID nhưng trả về lỗi 400 khi chuỗi không phải ObjectID hex
func ParseObjectID(id string) (primitive.ObjectID, error) {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("invalid id %q", id),
			common.StatusBadRequest,
			err,
		)
	}
	return objectId, nil
}

// StringArray2ObjectIDArray chuyển đổi mảng chuỗi thành mảng ObjectID.
// Dừng ở phần tử sai định dạng đầu tiên.
func StringArray2ObjectIDArray(ids []string) ([]primitive.ObjectID, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ParseObjectID(id)
		if err != nil {
			return nil, err
		}
		objectIDs = append(objectIDs, oid)
	}
	return objectIDs, nil
}

// ObjectIDArray2StringArray chuyển mảng ObjectID thành mảng hex
func ObjectIDArray2StringArray(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
