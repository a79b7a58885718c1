package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	basesvc "catalog_commerce/internal/api/base/service"
	catalogdto "catalog_commerce/internal/api/catalog/dto"
	catalogmodels "catalog_commerce/internal/api/catalog/models"
	"catalog_commerce/internal/common"
	"catalog_commerce/internal/global"
	"catalog_commerce/internal/logger"
	"catalog_commerce/internal/utility"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Các message trả về cho client
const (
	MsgProductNotFound      = "Product Not Found!"
	MsgProductsReplaced     = "Product Added successfully!"
	MsgProductUpdated       = "Product updated successfully!"
	MsgProductsUpdated      = "Products update successfully!"
	MsgProductDeleted       = "Product Deleted Successfully!"
	MsgProductsDeleted      = "Products Delete Successfully!"
	msgProductStatusUpdated = "Product %s Successfully!"
)

// Giới hạn số bản ghi của storefront listing
const (
	storeListLimit    = 100
	storeCuratedLimit = 20
)

// ErrProductNotFound là lỗi 404 khi sản phẩm không tồn tại
var ErrProductNotFound = common.NewError(common.ErrCodeDatabaseQuery, MsgProductNotFound, common.StatusNotFound, nil)

// StatusUpdatedMessage trả về message của thao tác đổi trạng thái
func StatusUpdatedMessage(status string) string {
	return fmt.Sprintf(msgProductStatusUpdated, status)
}

// ProductService chứa các thao tác đọc/ghi sản phẩm của catalog
type ProductService struct {
	store      basesvc.BaseServiceMongo[catalogmodels.Product]
	categories *CategoryService
	languages  []string
}

// NewProductService tạo ProductService trên các collection đã đăng ký trong global.RegistryCollections
func NewProductService() (*ProductService, error) {
	collection, err := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Products)
	if err != nil {
		return nil, err
	}
	categories, err := NewCategoryService()
	if err != nil {
		return nil, err
	}
	return NewProductServiceWithStore(
		basesvc.NewBaseServiceMongo[catalogmodels.Product](collection),
		categories,
		global.LanguageCodes,
	), nil
}

// NewProductServiceWithStore tạo ProductService với store và danh sách ngôn ngữ cho trước
func NewProductServiceWithStore(store basesvc.BaseServiceMongo[catalogmodels.Product], categories *CategoryService, languages []string) *ProductService {
	return &ProductService{
		store:      store,
		categories: categories,
		languages:  languages,
	}
}

// ====================================
// LISTING
// ====================================

// ListProducts là admin listing: đếm tổng số bản ghi khớp filter (bỏ qua phân trang)
// rồi lấy một trang, populate category và categories.
func (s *ProductService) ListProducts(ctx context.Context, params catalogdto.ProductListQuery) (*catalogdto.ProductListResult, error) {
	query, err := BuildProductQuery(params, s.languages)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if len(query.Sort) > 0 {
		opts.SetSort(query.Sort)
	}
	page, err := basesvc.FindWithPagination(ctx, s.store, query.Filter, query.Page, query.Limit, opts)
	if err != nil {
		return nil, err
	}

	views, err := s.populateDetail(ctx, page.Items)
	if err != nil {
		return nil, err
	}

	return &catalogdto.ProductListResult{
		Products: views,
		TotalDoc: page.Total,
		Limits:   page.Limit,
		Pages:    page.Page,
	}, nil
}

// ListShowingProducts trả về toàn bộ sản phẩm đang hiển thị, mới nhất trước
func (s *ProductService) ListShowingProducts(ctx context.Context) ([]catalogmodels.Product, error) {
	return s.store.Find(ctx, bson.M{"status": catalogmodels.ProductStatusShow}, options.Find().SetSort(newestFirst()))
}

// ListStoreProducts là storefront listing. Ưu tiên slug, sau đó title/category,
// không có filter nào thì trả về tập popular và discounted.
// Response luôn có đủ 4 slot, slot không dùng là mảng rỗng.
func (s *ProductService) ListStoreProducts(ctx context.Context, params catalogdto.StoreProductQuery) (*catalogdto.StoreProductsResult, error) {
	result := &catalogdto.StoreProductsResult{
		Products:           []catalogdto.ProductView{},
		PopularProducts:    []catalogdto.ProductView{},
		RelatedProducts:    []catalogdto.ProductView{},
		DiscountedProducts: []catalogdto.ProductView{},
	}

	filter := bson.M{"status": catalogmodels.ProductStatusShow}
	if params.Category != "" {
		if _, err := utility.ParseObjectID(params.Category); err != nil {
			return nil, err
		}
		expanded, err := s.categories.ExpandCategory(ctx, params.Category)
		if err != nil {
			return nil, err
		}
		categoryIDs, err := utility.StringArray2ObjectIDArray(expanded)
		if err != nil {
			return nil, err
		}
		filter["categories"] = bson.M{"$in": categoryIDs}
	}
	if params.Title != "" {
		filter["$or"] = titleFilter(params.Title, s.languages)
	}
	if params.Slug != "" {
		filter["slug"] = bson.M{"$regex": regexp.QuoteMeta(params.Slug), "$options": "i"}
	}

	listOpts := options.Find().SetSort(newestFirst()).SetLimit(storeListLimit)

	switch {
	case params.Slug != "":
		products, err := s.store.Find(ctx, filter, listOpts)
		if err != nil {
			return nil, err
		}
		if result.Products, err = s.populate(ctx, products); err != nil {
			return nil, err
		}

		if len(products) > 0 && products[0].Category != nil {
			// Related lấy mọi sản phẩm cùng category, không giới hạn, không lọc status, không sort
			related, err := s.store.Find(ctx, bson.M{"category": *products[0].Category}, nil)
			if err != nil {
				return nil, err
			}
			if result.RelatedProducts, err = s.populate(ctx, related); err != nil {
				return nil, err
			}
		}

	case params.Title != "" || params.Category != "":
		products, err := s.store.Find(ctx, filter, listOpts)
		if err != nil {
			return nil, err
		}
		if result.Products, err = s.populate(ctx, products); err != nil {
			return nil, err
		}

	default:
		popular, err := s.store.Find(ctx,
			bson.M{"status": catalogmodels.ProductStatusShow},
			options.Find().SetSort(bson.D{{Key: "sales", Value: -1}}).SetLimit(storeCuratedLimit),
		)
		if err != nil {
			return nil, err
		}
		if result.PopularProducts, err = s.populate(ctx, popular); err != nil {
			return nil, err
		}

		discounted, err := s.store.Find(ctx,
			discountedFilter(),
			options.Find().SetSort(newestFirst()).SetLimit(storeCuratedLimit),
		)
		if err != nil {
			return nil, err
		}
		if result.DiscountedProducts, err = s.populate(ctx, discounted); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// discountedFilter khớp sản phẩm đang hiển thị có giảm giá:
// combination product có ít nhất một variant discount > 0,
// hoặc sản phẩm thường có prices.discount > 0.
// Discount có thể được lưu dạng chuỗi ("2.00") nên cả hai nhánh đều ép sang số trước khi so sánh.
func discountedFilter() bson.M {
	return bson.M{
		"status": catalogmodels.ProductStatusShow,
		"$or": []bson.M{
			{
				"isCombination": true,
				"$expr": bson.M{"$anyElementTrue": bson.A{
					bson.M{"$map": bson.M{
						"input": bson.M{"$ifNull": bson.A{"$variants", bson.A{}}},
						"as":    "v",
						"in":    positiveNumber("$$v.discount"),
					}},
				}},
			},
			{
				"isCombination": false,
				"$expr":         positiveNumber("$prices.discount"),
			},
		},
	}
}

// positiveNumber là biểu thức $expr: field ép sang double > 0.
// Giá trị thiếu, null hoặc chuỗi không phải số được coi là 0.
func positiveNumber(field string) bson.M {
	return bson.M{"$gt": bson.A{
		bson.M{"$convert": bson.M{"input": field, "to": "double", "onError": 0, "onNull": 0}},
		0,
	}}
}

// GetProductByID trả về sản phẩm đã populate category/categories.
// Id sai định dạng hoặc không tồn tại đều là ErrProductNotFound.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*catalogdto.ProductDetailView, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product, err := s.store.FindOneById(ctx, objectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	views, err := s.populateDetail(ctx, []catalogmodels.Product{product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetProductBySlug tìm theo slug chính xác. Không có thì trả về (nil, nil).
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*catalogmodels.Product, error) {
	product, err := s.store.FindOne(ctx, bson.M{"slug": slug}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ====================================
// MUTATION
// ====================================

// CreateProduct lưu sản phẩm mới. productId được sinh khi client không gửi.
// Không kiểm tra trùng slug/sku.
func (s *ProductService) CreateProduct(ctx context.Context, input catalogdto.ProductCreateInput) (catalogmodels.Product, error) {
	product := input.ToModel()
	if product.ProductID == "" {
		product.ProductID = primitive.NewObjectID().Hex()
	}
	return s.store.InsertOne(ctx, product)
}

// ReplaceAllProducts xóa toàn bộ sản phẩm rồi insert danh sách mới.
// Hai bước không nằm trong transaction: lỗi ở bước insert để lại collection rỗng hoặc thiếu.
func (s *ProductService) ReplaceAllProducts(ctx context.Context, inputs []catalogdto.ProductCreateInput) error {
	products := make([]catalogmodels.Product, 0, len(inputs))
	for i := range inputs {
		products = append(products, inputs[i].ToModel())
	}

	deleted, err := s.store.DeleteMany(ctx, bson.D{})
	if err != nil {
		return err
	}
	if _, err := s.store.InsertMany(ctx, products); err != nil {
		logger.WithModule("catalog").WithFields(logrus.Fields{
			"deleted":  deleted,
			"expected": len(products),
		}).WithError(err).Error("Bulk replace failed after delete, product collection needs manual recovery")
		return err
	}
	return nil
}

// UpdateProduct merge title/description theo từng ngôn ngữ và ghi đè các field còn lại.
// Field vắng mặt trong input bị $unset.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input catalogdto.ProductUpdateInput) (*catalogdto.UpdateProductResult, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.store.FindOneById(ctx, objectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	update := BuildProductUpdate(existing, input)
	updated, err := s.store.UpdateById(ctx, objectID, update)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return &catalogdto.UpdateProductResult{Data: updated, Message: MsgProductUpdated}, nil
}

// BuildProductUpdate dựng $set/$unset cho UpdateProduct từ bản hiện tại và input
func BuildProductUpdate(existing catalogmodels.Product, input catalogdto.ProductUpdateInput) *basesvc.UpdateData {
	update := &basesvc.UpdateData{
		Set:   map[string]interface{}{},
		Unset: map[string]interface{}{},
	}

	update.Set["title"] = mergeLocalized(existing.Title, input.Title)
	update.Set["description"] = mergeLocalized(existing.Description, input.Description)

	assign := func(field string, present bool, value interface{}) {
		if present {
			update.Set[field] = value
		} else {
			update.Unset[field] = ""
		}
	}
	assign("productId", input.ProductID != nil, deref(input.ProductID))
	assign("sku", input.SKU != nil, deref(input.SKU))
	assign("barcode", input.Barcode != nil, deref(input.Barcode))
	assign("slug", input.Slug != nil, deref(input.Slug))
	assign("categories", input.Categories != nil, input.Categories)
	assign("category", input.Category != nil, deref(input.Category))
	assign("show", input.Show != nil, input.Show)
	assign("isCombination", input.IsCombination != nil, deref(input.IsCombination))
	assign("variants", input.Variants != nil, input.Variants)
	assign("stock", input.Stock != nil, deref(input.Stock))
	assign("prices", input.Prices != nil, deref(input.Prices))
	assign("image", input.Image != nil, input.Image)
	assign("tag", input.Tag != nil, input.Tag)
	assign("commission", input.Commission != nil, deref(input.Commission))

	return update
}

func deref[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// mergeLocalized ghi đè/bổ sung từng ngôn ngữ của patch lên current, giữ nguyên ngôn ngữ không có trong patch
func mergeLocalized(current, patch map[string]string) map[string]string {
	merged := make(map[string]string, len(current)+len(patch))
	for lang, text := range current {
		merged[lang] = text
	}
	for lang, text := range patch {
		merged[lang] = text
	}
	return merged
}

// UpdateManyProducts áp dụng $set (đã lọc bởi BuildBulkSet) lên mọi sản phẩm có _id trong body["ids"]
func (s *ProductService) UpdateManyProducts(ctx context.Context, body map[string]interface{}) (int64, error) {
	ids, err := objectIDsFromBody(body["ids"])
	if err != nil {
		return 0, err
	}

	set, err := BuildBulkSet(body)
	if err != nil {
		return 0, err
	}

	return s.store.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, &basesvc.UpdateData{Set: set})
}

// UpdateStatus đặt status cho một sản phẩm; giá trị không được kiểm tra.
// Id không tồn tại là no-op.
func (s *ProductService) UpdateStatus(ctx context.Context, id string, status string) (string, error) {
	objectID, err := utility.ParseObjectID(id)
	if err != nil {
		return "", err
	}
	if _, err := s.store.UpdateOne(ctx, bson.M{"_id": objectID}, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": status},
	}); err != nil {
		return "", err
	}
	return StatusUpdatedMessage(status), nil
}

// DeleteProduct xóa một sản phẩm; id không tồn tại là no-op
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (int64, error) {
	objectID, err := utility.ParseObjectID(id)
	if err != nil {
		return 0, err
	}
	return s.store.DeleteOne(ctx, bson.M{"_id": objectID})
}

// DeleteManyProducts xóa các sản phẩm theo danh sách id; id không tồn tại bị bỏ qua
func (s *ProductService) DeleteManyProducts(ctx context.Context, ids []string) (int64, error) {
	objectIDs, err := utility.StringArray2ObjectIDArray(ids)
	if err != nil {
		return 0, err
	}
	return s.store.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
}

// ====================================
// POPULATE
// ====================================

// populate gắn {_id, name} của category cho từng sản phẩm bằng một truy vấn categories
func (s *ProductService) populate(ctx context.Context, products []catalogmodels.Product) ([]catalogdto.ProductView, error) {
	var ids []primitive.ObjectID
	for _, p := range products {
		if p.Category != nil {
			ids = append(ids, *p.Category)
		}
	}
	refs, err := s.categories.LookupRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]catalogdto.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p, refs))
	}
	return views, nil
}

// populateDetail giống populate nhưng populate thêm categories
func (s *ProductService) populateDetail(ctx context.Context, products []catalogmodels.Product) ([]catalogdto.ProductDetailView, error) {
	var ids []primitive.ObjectID
	for _, p := range products {
		if p.Category != nil {
			ids = append(ids, *p.Category)
		}
		ids = append(ids, p.Categories...)
	}
	refs, err := s.categories.LookupRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]catalogdto.ProductDetailView, 0, len(products))
	for _, p := range products {
		categories := make([]catalogdto.CategoryRef, 0, len(p.Categories))
		for _, id := range p.Categories {
			if ref, ok := refs[id]; ok {
				categories = append(categories, ref)
			}
		}
		views = append(views, catalogdto.ProductDetailView{
			ProductView: toProductView(p, refs),
			Categories:  categories,
		})
	}
	return views, nil
}

func toProductView(p catalogmodels.Product, refs map[primitive.ObjectID]catalogdto.CategoryRef) catalogdto.ProductView {
	view := catalogdto.ProductView{Product: p}
	if p.Category != nil {
		if ref, ok := refs[*p.Category]; ok {
			view.Category = &ref
		}
	}
	return view
}
