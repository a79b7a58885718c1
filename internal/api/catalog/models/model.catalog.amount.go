package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount là giá trị tiền (giá, giảm giá). Khi ghi luôn là số; khi đọc chấp nhận
// số (double, int32, int64, decimal128) hoặc chuỗi như "2.00" của dữ liệu cũ.
type Amount float64

// UnmarshalBSONValue đọc Amount từ số hoặc chuỗi.
// Chuỗi rỗng hoặc không phải số là 0, giống onError/onNull của $convert trong các truy vấn giảm giá.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDouble:
		*a = Amount(rv.Double())
	case bson.TypeInt32:
		*a = Amount(rv.Int32())
	case bson.TypeInt64:
		*a = Amount(rv.Int64())
	case bson.TypeDecimal128:
		f, err := strconv.ParseFloat(rv.Decimal128().String(), 64)
		if err != nil {
			return fmt.Errorf("cannot decode decimal128 %s into Amount: %w", rv.Decimal128(), err)
		}
		*a = Amount(f)
	case bson.TypeString:
		f, err := parseAmount(rv.StringValue())
		if err != nil {
			f = 0
		}
		*a = Amount(f)
	case bson.TypeNull, bson.TypeUndefined:
		*a = 0
	default:
		return fmt.Errorf("cannot decode %s into Amount", t)
	}
	return nil
}

// UnmarshalJSON nhận số hoặc chuỗi số; chuỗi không phải số là lỗi của client
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := parseAmount(s)
		if err != nil {
			return fmt.Errorf("invalid amount %q", s)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
