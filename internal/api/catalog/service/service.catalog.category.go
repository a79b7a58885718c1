package catalogsvc

import (
	"context"
	"fmt"

	basesvc "catalog_commerce/internal/api/base/service"
	catalogdto "catalog_commerce/internal/api/catalog/dto"
	catalogmodels "catalog_commerce/internal/api/catalog/models"
	"catalog_commerce/internal/common"
	"catalog_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryService đọc cây danh mục: mở rộng cây con và populate tên danh mục cho sản phẩm
type CategoryService struct {
	store basesvc.BaseServiceMongo[catalogmodels.Category]
}

// NewCategoryService tạo CategoryService trên collection categories đã đăng ký
func NewCategoryService() (*CategoryService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %w", common.ErrNotFound)
	}
	return NewCategoryServiceWithStore(basesvc.NewBaseServiceMongo[catalogmodels.Category](collection)), nil
}

// NewCategoryServiceWithStore tạo CategoryService trên một store bất kỳ
func NewCategoryServiceWithStore(store basesvc.BaseServiceMongo[catalogmodels.Category]) *CategoryService {
	return &CategoryService{store: store}
}

// ResolveDescendants trả về id của mọi danh mục nằm dưới categoryID (không gồm chính nó),
// duyệt theo chiều rộng qua parentId. Mỗi id trong hàng đợi tốn một lần truy vấn.
// Tập visited đảm bảo dừng và không trùng lặp kể cả khi dữ liệu có chu trình.
func (s *CategoryService) ResolveDescendants(ctx context.Context, categoryID string) ([]string, error) {
	visited := map[string]bool{categoryID: true}
	queue := []string{categoryID}
	var descendants []string

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.store.Find(ctx, bson.M{"parentId": current}, opts)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			id := child.ID.Hex()
			if visited[id] {
				continue
			}
			visited[id] = true
			descendants = append(descendants, id)
			queue = append(queue, id)
		}
	}
	return descendants, nil
}

// ExpandCategory trả về categoryID cùng toàn bộ danh mục con cháu của nó
func (s *CategoryService) ExpandCategory(ctx context.Context, categoryID string) ([]string, error) {
	descendants, err := s.ResolveDescendants(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return append([]string{categoryID}, descendants...), nil
}

// LookupRefs lấy {_id, name} của các danh mục theo id, trả về map theo id.
// Id không tồn tại không có trong map.
func (s *CategoryService) LookupRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]catalogdto.CategoryRef, error) {
	refs := make(map[primitive.ObjectID]catalogdto.CategoryRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "name": 1})
	categories, err := s.store.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		refs[category.ID] = catalogdto.CategoryRef{ID: category.ID, Name: category.Name}
	}
	return refs, nil
}
