package catalogsvc

import (
	"regexp"

	catalogdto "catalog_commerce/internal/api/catalog/dto"
	basemodels "catalog_commerce/internal/api/base/models"
	catalogmodels "catalog_commerce/internal/api/catalog/models"
	"catalog_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
)

// PriceDirective là giá trị đã parse của query param "price".
// Mỗi directive hoặc thêm đúng một sort, hoặc thêm đúng một filter, không bao giờ cả hai.
type PriceDirective int

const (
	DefaultOrder PriceDirective = iota
	SortPriceAsc
	SortPriceDesc
	FilterPublished
	FilterUnpublished
	FilterSelling
	FilterOutOfStock
	SortCreatedAsc
	SortCreatedDesc
	SortUpdatedAsc
	SortUpdatedDesc
)

var priceDirectives = map[string]PriceDirective{
	"low":                 SortPriceAsc,
	"high":                SortPriceDesc,
	"published":           FilterPublished,
	"unPublished":         FilterUnpublished,
	"status-selling":      FilterSelling,
	"status-out-of-stock": FilterOutOfStock,
	"date-added-asc":      SortCreatedAsc,
	"date-added-desc":     SortCreatedDesc,
	"date-updated-asc":    SortUpdatedAsc,
	"date-updated-desc":   SortUpdatedDesc,
}

// ParsePriceDirective chuyển literal của query param thành PriceDirective.
// Giá trị rỗng hoặc không nhận diện được là DefaultOrder.
func ParsePriceDirective(raw string) PriceDirective {
	if d, ok := priceDirectives[raw]; ok {
		return d
	}
	return DefaultOrder
}

// IsFilter cho biết directive là filter (không đóng góp sort)
func (d PriceDirective) IsFilter() bool {
	switch d {
	case FilterPublished, FilterUnpublished, FilterSelling, FilterOutOfStock:
		return true
	}
	return false
}

// apply ghi filter hoặc trả về sort của directive
func (d PriceDirective) apply(filter bson.M) bson.D {
	switch d {
	case SortPriceAsc:
		return bson.D{{Key: "prices.originalPrice", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "prices.originalPrice", Value: -1}}
	case FilterPublished:
		filter["status"] = catalogmodels.ProductStatusShow
	case FilterUnpublished:
		filter["status"] = catalogmodels.ProductStatusHide
	case FilterSelling:
		filter["stock"] = bson.M{"$gt": 0}
	case FilterOutOfStock:
		filter["stock"] = bson.M{"$lt": 1}
	case SortCreatedAsc:
		return bson.D{{Key: "createdAt", Value: 1}}
	case SortCreatedDesc:
		return bson.D{{Key: "createdAt", Value: -1}}
	case SortUpdatedAsc:
		return bson.D{{Key: "updatedAt", Value: 1}}
	case SortUpdatedDesc:
		return bson.D{{Key: "updatedAt", Value: -1}}
	default:
		return newestFirst()
	}
	// Filter directive: không sort, giữ natural order
	return bson.D{}
}

func newestFirst() bson.D {
	return bson.D{{Key: "_id", Value: -1}}
}

// ProductQuery là kết quả của BuildProductQuery
type ProductQuery struct {
	Filter bson.M
	Sort   bson.D
	Page   int64
	Limit  int64
	Skip   int64
}

// titleFilter khớp khi title ở BẤT KỲ ngôn ngữ nào chứa text (không phân biệt hoa thường).
// text được escape nên luôn là so khớp chuỗi con, không phải regex.
func titleFilter(text string, languages []string) []bson.M {
	pattern := regexp.QuoteMeta(text)
	or := make([]bson.M, 0, len(languages))
	for _, lang := range languages {
		or = append(or, bson.M{
			"title." + lang: bson.M{"$regex": pattern, "$options": "i"},
		})
	}
	return or
}

// BuildProductQuery dựng filter/sort/phân trang của admin listing.
// Category ở đây là so khớp đúng một id trong categories, không mở rộng cây danh mục.
func BuildProductQuery(params catalogdto.ProductListQuery, languages []string) (ProductQuery, error) {
	filter := bson.M{}

	if params.Title != "" {
		filter["$or"] = titleFilter(params.Title, languages)
	}
	if params.SKU != "" {
		filter["sku"] = params.SKU
	}

	sort := ParsePriceDirective(params.Price).apply(filter)

	if params.Category != "" {
		categoryID, err := utility.ParseObjectID(params.Category)
		if err != nil {
			return ProductQuery{}, err
		}
		filter["categories"] = categoryID
	}

	page, limit, skip, err := basemodels.Pagination(params.Page, params.Limit)
	if err != nil {
		return ProductQuery{}, err
	}
	return ProductQuery{
		Filter: filter,
		Sort:   sort,
		Page:   page,
		Limit:  limit,
		Skip:   skip,
	}, nil
}
