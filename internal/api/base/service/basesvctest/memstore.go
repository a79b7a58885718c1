// Package basesvctest cung cấp MemStore: một basesvc.BaseServiceMongo chạy trong bộ nhớ
// để test service/handler mà không cần MongoDB.
//
// MemStore hiểu tập con các toán tử mà catalog dùng: so khớp bằng (kể cả phần tử mảng),
// $in, $gt, $lt, $regex/$options, $elemMatch, $or, $and,
// $expr ($gt, $lt, $toDouble, $convert, $ifNull, $map, $anyElementTrue)
// cùng sort/skip/limit trong FindOptions và $set/$unset khi update.
package basesvctest

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	basesvc "catalog_commerce/internal/api/base/service"
	"catalog_commerce/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ basesvc.BaseServiceMongo[struct{}] = (*MemStore[struct{}])(nil)

// MemStore lưu document dưới dạng bson.M theo thứ tự insert (natural order)
type MemStore[T any] struct {
	mu   sync.Mutex
	docs []bson.M

	// Calls đếm số lần gọi theo tên method
	Calls map[string]int
	// FailOn cho phép giả lập lỗi store theo tên method
	FailOn map[string]error
}

// NewMemStore tạo store rỗng
func NewMemStore[T any]() *MemStore[T] {
	return &MemStore[T]{
		Calls:  map[string]int{},
		FailOn: map[string]error{},
	}
}

// Seed insert trực tiếp các document (không stamp timestamps, giữ nguyên _id nếu có)
func (s *MemStore[T]) Seed(items ...T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(items))
	for _, item := range items {
		doc := mustToDoc(item)
		if _, ok := doc["_id"]; !ok {
			doc["_id"] = primitive.NewObjectID()
		}
		s.docs = append(s.docs, doc)
		out = append(out, mustFromDoc[T](doc))
	}
	return out
}

// SeedDocs insert document thô, dùng cho dữ liệu không tạo được từ T (ví dụ số lưu dạng chuỗi)
func (s *MemStore[T]) SeedDocs(docs ...bson.M) []primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		doc := cloneDoc(d)
		if _, ok := doc["_id"]; !ok {
			doc["_id"] = primitive.NewObjectID()
		}
		s.docs = append(s.docs, doc)
		id, _ := doc["_id"].(primitive.ObjectID)
		ids = append(ids, id)
	}
	return ids
}

// All trả về toàn bộ document theo natural order
func (s *MemStore[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, mustFromDoc[T](doc))
	}
	return out
}

// Raw trả về bản sao document thô theo _id
func (s *MemStore[T]) Raw(id primitive.ObjectID) (bson.M, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc["_id"] == id {
			return cloneDoc(doc), true
		}
	}
	return nil, false
}

func (s *MemStore[T]) enter(method string) error {
	s.Calls[method]++
	return s.FailOn[method]
}

// InsertOne thêm document, sinh _id và timestamps khi thiếu
func (s *MemStore[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InsertOne"); err != nil {
		return zero, err
	}
	doc := s.prepare(data, time.Now().UnixMilli())
	s.docs = append(s.docs, doc)
	return mustFromDoc[T](doc), nil
}

// InsertMany thêm nhiều document; danh sách rỗng là no-op
func (s *MemStore[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InsertMany"); err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	out := make([]T, 0, len(data))
	for _, item := range data {
		doc := s.prepare(item, now)
		s.docs = append(s.docs, doc)
		out = append(out, mustFromDoc[T](doc))
	}
	return out, nil
}

func (s *MemStore[T]) prepare(data T, now int64) bson.M {
	doc := mustToDoc(data)
	for k, v := range doc {
		if str, ok := v.(string); ok && str == "" {
			delete(doc, k)
		}
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	if n, ok := toFloat(doc["createdAt"]); !ok || n <= 0 {
		doc["createdAt"] = now
	}
	if n, ok := toFloat(doc["updatedAt"]); !ok || n <= 0 {
		doc["updatedAt"] = now
	}
	return doc
}

// FindOne trả về document đầu tiên khớp filter, không có thì common.ErrNotFound
func (s *MemStore[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FindOne"); err != nil {
		return zero, err
	}
	f := normalizeFilter(filter)
	for _, doc := range s.docs {
		if Match(doc, f) {
			return mustFromDoc[T](doc), nil
		}
	}
	return zero, common.ErrNotFound
}

// Find trả về các document khớp filter, áp dụng sort/skip/limit của opts
func (s *MemStore[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("Find"); err != nil {
		return nil, err
	}
	f := normalizeFilter(filter)
	var matched []bson.M
	for _, doc := range s.docs {
		if Match(doc, f) {
			matched = append(matched, doc)
		}
	}

	if opts != nil {
		if opts.Sort != nil {
			sortDocs(matched, toSortSpec(opts.Sort))
		}
		if opts.Skip != nil {
			skip := int(*opts.Skip)
			if skip >= len(matched) {
				matched = nil
			} else if skip > 0 {
				matched = matched[skip:]
			}
		}
		if opts.Limit != nil && *opts.Limit > 0 && int(*opts.Limit) < len(matched) {
			matched = matched[:*opts.Limit]
		}
	}

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		out = append(out, mustFromDoc[T](doc))
	}
	return out, nil
}

// FindOneById tìm theo _id
func (s *MemStore[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// CountDocuments đếm số document khớp filter
func (s *MemStore[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CountDocuments"); err != nil {
		return 0, err
	}
	f := normalizeFilter(filter)
	var n int64
	for _, doc := range s.docs {
		if Match(doc, f) {
			n++
		}
	}
	return n, nil
}

// UpdateOne áp dụng update cho document đầu tiên khớp filter
func (s *MemStore[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateOne"); err != nil {
		return 0, err
	}
	f := normalizeFilter(filter)
	for _, doc := range s.docs {
		if Match(doc, f) {
			if err := applyUpdate(doc, update); err != nil {
				return 0, err
			}
			return 1, nil
		}
	}
	return 0, nil
}

// UpdateMany áp dụng update cho mọi document khớp filter
func (s *MemStore[T]) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateMany"); err != nil {
		return 0, err
	}
	f := normalizeFilter(filter)
	var n int64
	for _, doc := range s.docs {
		if Match(doc, f) {
			if err := applyUpdate(doc, update); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// UpdateById cập nhật theo _id và trả về bản sau cập nhật
func (s *MemStore[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateById"); err != nil {
		return zero, err
	}
	for _, doc := range s.docs {
		if doc["_id"] == id {
			if err := applyUpdate(doc, update); err != nil {
				return zero, err
			}
			return mustFromDoc[T](doc), nil
		}
	}
	return zero, common.ErrNotFound
}

// DeleteOne xóa document đầu tiên khớp filter
func (s *MemStore[T]) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteOne"); err != nil {
		return 0, err
	}
	f := normalizeFilter(filter)
	for i, doc := range s.docs {
		if Match(doc, f) {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// DeleteMany xóa mọi document khớp filter
func (s *MemStore[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteMany"); err != nil {
		return 0, err
	}
	f := normalizeFilter(filter)
	kept := s.docs[:0]
	var n int64
	for _, doc := range s.docs {
		if Match(doc, f) {
			n++
			continue
		}
		kept = append(kept, doc)
	}
	s.docs = kept
	return n, nil
}

// ====================================
// BSON HELPERS
// ====================================

func mustToDoc(v interface{}) bson.M {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("basesvctest: marshal %T: %v", v, err))
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("basesvctest: unmarshal: %v", err))
	}
	return doc
}

func mustFromDoc[T any](doc bson.M) T {
	var out T
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("basesvctest: marshal doc: %v", err))
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("basesvctest: decode into %T: %v", out, err))
	}
	return out
}

func cloneDoc(doc bson.M) bson.M {
	return mustToDoc(doc)
}

// normalizeFilter chuyển filter (bson.M, bson.D, struct, nil) về bson.M
// bằng một vòng marshal/unmarshal để các kiểu slice trở thành primitive.A
func normalizeFilter(filter interface{}) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return mustToDoc(filter)
}

func asMap(v interface{}) (bson.M, bool) {
	switch t := v.(type) {
	case bson.M:
		return t, true
	case map[string]interface{}:
		return bson.M(t), true
	case bson.D:
		m := bson.M{}
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return m, true
	}
	return nil, false
}

func asArray(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case bson.A:
		return t, true
	case []interface{}:
		return t, true
	case []bson.M:
		out := make([]interface{}, 0, len(t))
		for _, m := range t {
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}

// lookup lấy giá trị theo đường dẫn có dấu chấm ("prices.discount")
func lookup(doc bson.M, path string) (interface{}, bool) {
	var cur interface{} = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ====================================
// FILTER EVALUATION
// ====================================

// Match trả về true khi doc thỏa filter
func Match(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		switch key {
		case "$or":
			subs, _ := asArray(cond)
			ok := false
			for _, sub := range subs {
				if m, isMap := asMap(sub); isMap && Match(doc, m) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		case "$and":
			subs, _ := asArray(cond)
			for _, sub := range subs {
				if m, isMap := asMap(sub); !isMap || !Match(doc, m) {
					return false
				}
			}
		case "$expr":
			if !truthy(evalExpr(doc, cond)) {
				return false
			}
		default:
			value, exists := lookup(doc, key)
			if !matchField(value, exists, cond) {
				return false
			}
		}
	}
	return true
}

func isOperatorMap(m bson.M) bool {
	if len(m) == 0 {
		return false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return false
		}
	}
	return true
}

func matchField(value interface{}, exists bool, cond interface{}) bool {
	condMap, isMap := asMap(cond)
	if !isMap || !isOperatorMap(condMap) {
		return exists && matchesEqual(value, cond)
	}

	for op, arg := range condMap {
		switch op {
		case "$in":
			list, _ := asArray(arg)
			found := false
			for _, candidate := range list {
				if exists && matchesEqual(value, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "$gt", "$lt", "$gte", "$lte":
			if !exists || !matchesCompare(value, op, arg) {
				return false
			}
		case "$regex":
			pattern, _ := arg.(string)
			if opt, _ := condMap["$options"].(string); strings.Contains(opt, "i") {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil || !exists || !matchesRegex(value, re) {
				return false
			}
		case "$options":
		case "$elemMatch":
			sub, _ := asMap(arg)
			elems, _ := asArray(value)
			found := false
			for _, el := range elems {
				if m, ok := asMap(el); ok && Match(m, sub) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			panic("basesvctest: unsupported operator " + op)
		}
	}
	return true
}

// matchesEqual so sánh bằng; nếu value là mảng thì khớp khi có phần tử bằng target
func matchesEqual(value, target interface{}) bool {
	if equalValues(value, target) {
		return true
	}
	if arr, ok := asArray(value); ok {
		for _, el := range arr {
			if equalValues(el, target) {
				return true
			}
		}
	}
	return false
}

func equalValues(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	switch av := a.(type) {
	case primitive.ObjectID:
		bv, ok := b.(primitive.ObjectID)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return false
}

func matchesCompare(value interface{}, op string, arg interface{}) bool {
	if arr, ok := asArray(value); ok {
		for _, el := range arr {
			if matchesCompare(el, op, arg) {
				return true
			}
		}
		return false
	}
	c, ok := compareValues(value, arg)
	if !ok {
		return false
	}
	switch op {
	case "$gt":
		return c > 0
	case "$lt":
		return c < 0
	case "$gte":
		return c >= 0
	case "$lte":
		return c <= 0
	}
	return false
}

func matchesRegex(value interface{}, re *regexp.Regexp) bool {
	if str, ok := value.(string); ok {
		return re.MatchString(str)
	}
	if arr, ok := asArray(value); ok {
		for _, el := range arr {
			if str, ok := el.(string); ok && re.MatchString(str) {
				return true
			}
		}
	}
	return false
}

// compareValues so sánh hai giá trị cùng loại (số, chuỗi, ObjectID)
func compareValues(a, b interface{}) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case primitive.ObjectID:
		bv, ok := b.(primitive.ObjectID)
		if !ok {
			return 0, false
		}
		return bytes.Compare(av[:], bv[:]), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// evalExpr hỗ trợ {$gt/$lt: [a, b]}, {$toDouble: x}, {$convert: {input, to: "double", onError, onNull}},
// {$ifNull: [a, b]}, {$map: {input, as, in}}, {$anyElementTrue: [arr]}, "$field", "$$var.field" và literal
func evalExpr(doc bson.M, expr interface{}) interface{} {
	return evalExprVars(doc, nil, expr)
}

func evalExprVars(doc bson.M, vars bson.M, expr interface{}) interface{} {
	if str, ok := expr.(string); ok {
		switch {
		case strings.HasPrefix(str, "$$"):
			name, path, _ := strings.Cut(strings.TrimPrefix(str, "$$"), ".")
			v, exists := vars[name]
			if !exists || path == "" {
				return v
			}
			m, ok := asMap(v)
			if !ok {
				return nil
			}
			v, _ = lookup(m, path)
			return v
		case strings.HasPrefix(str, "$"):
			v, _ := lookup(doc, strings.TrimPrefix(str, "$"))
			return v
		}
		return str
	}
	if arr, ok := asArray(expr); ok {
		out := make([]interface{}, 0, len(arr))
		for _, el := range arr {
			out = append(out, evalExprVars(doc, vars, el))
		}
		return out
	}
	m, ok := asMap(expr)
	if !ok {
		return expr
	}
	for op, arg := range m {
		switch op {
		case "$toDouble":
			f, ok := toDouble(evalExprVars(doc, vars, arg))
			if !ok {
				return nil
			}
			return f
		case "$convert":
			spec, _ := asMap(arg)
			if to, _ := spec["to"].(string); to != "double" {
				panic("basesvctest: unsupported $convert target " + fmt.Sprint(spec["to"]))
			}
			v := evalExprVars(doc, vars, spec["input"])
			if v == nil {
				return evalExprVars(doc, vars, spec["onNull"])
			}
			f, ok := toDouble(v)
			if !ok {
				return evalExprVars(doc, vars, spec["onError"])
			}
			return f
		case "$ifNull":
			args, _ := asArray(arg)
			for _, a := range args {
				if v := evalExprVars(doc, vars, a); v != nil {
					return v
				}
			}
			return nil
		case "$map":
			spec, _ := asMap(arg)
			items, _ := asArray(evalExprVars(doc, vars, spec["input"]))
			name, _ := spec["as"].(string)
			out := make([]interface{}, 0, len(items))
			for _, item := range items {
				scoped := bson.M{}
				for k, v := range vars {
					scoped[k] = v
				}
				scoped[name] = item
				out = append(out, evalExprVars(doc, scoped, spec["in"]))
			}
			return out
		case "$anyElementTrue":
			args, _ := asArray(arg)
			if len(args) != 1 {
				return false
			}
			items, _ := asArray(evalExprVars(doc, vars, args[0]))
			for _, item := range items {
				if truthy(item) {
					return true
				}
			}
			return false
		case "$gt", "$lt":
			args, _ := asArray(arg)
			if len(args) != 2 {
				return false
			}
			c, ok := compareValues(evalExprVars(doc, vars, args[0]), evalExprVars(doc, vars, args[1]))
			if !ok {
				return false
			}
			if op == "$gt" {
				return c > 0
			}
			return c < 0
		default:
			panic("basesvctest: unsupported expression " + op)
		}
	}
	return nil
}

// toDouble ép số hoặc chuỗi số sang float64 như $toDouble
func toDouble(v interface{}) (float64, bool) {
	if f, ok := toFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func truthy(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

// ====================================
// SORT & UPDATE
// ====================================

func toSortSpec(sortOpt interface{}) bson.D {
	switch s := sortOpt.(type) {
	case bson.D:
		return s
	case bson.M:
		// bson.M không giữ thứ tự, chỉ dùng cho sort một khóa
		d := bson.D{}
		for k, v := range s {
			d = append(d, bson.E{Key: k, Value: v})
		}
		return d
	}
	return nil
}

func sortDocs(docs []bson.M, spec bson.D) {
	if len(spec) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, e := range spec {
			dir, _ := toFloat(e.Value)
			vi, _ := lookup(docs[i], e.Key)
			vj, _ := lookup(docs[j], e.Key)
			c := compareForSort(vi, vj)
			if c == 0 {
				continue
			}
			if dir < 0 {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareForSort đặt giá trị thiếu/không so sánh được lên trước (giống MongoDB với null)
func compareForSort(a, b interface{}) int {
	if c, ok := compareValues(a, b); ok {
		return c
	}
	switch {
	case a == nil && b != nil:
		return -1
	case a != nil && b == nil:
		return 1
	}
	return 0
}

func applyUpdate(doc bson.M, update interface{}) error {
	u, err := basesvc.ToUpdateData(update)
	if err != nil {
		return err
	}
	if len(u.Set) > 0 {
		set := mustToDoc(bson.M(u.Set))
		for k, v := range set {
			setPath(doc, k, v)
		}
	}
	for k := range u.Unset {
		unsetPath(doc, k)
	}
	return nil
}

func setPath(doc bson.M, path string, value interface{}) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			next = bson.M{}
		}
		cur[part] = next
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

func unsetPath(doc bson.M, path string) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, parts[len(parts)-1])
}
