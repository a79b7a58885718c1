package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catalog_commerce/internal/api/base/service/basesvctest"
	catalogdto "catalog_commerce/internal/api/catalog/dto"
	catalogmodels "catalog_commerce/internal/api/catalog/models"
	"catalog_commerce/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productFixture struct {
	svc        *ProductService
	products   *basesvctest.MemStore[catalogmodels.Product]
	categories *basesvctest.MemStore[catalogmodels.Category]
	tree       categoryTree
}

func newProductFixture() *productFixture {
	products := basesvctest.NewMemStore[catalogmodels.Product]()
	categories := basesvctest.NewMemStore[catalogmodels.Category]()
	tree := seedCategoryTree(categories)
	return &productFixture{
		svc:        NewProductServiceWithStore(products, NewCategoryServiceWithStore(categories), testLanguages),
		products:   products,
		categories: categories,
		tree:       tree,
	}
}

func shown(title string) catalogmodels.Product {
	return catalogmodels.Product{
		ID:     primitive.NewObjectID(),
		Title:  map[string]string{"en": title},
		Status: catalogmodels.ProductStatusShow,
	}
}

func titles(views []catalogdto.ProductView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Title["en"])
	}
	return out
}

func ptr[T any](v T) *T { return &v }

// ====================================
// LISTING
// ====================================

func TestListProducts_PopulatesAndCounts(t *testing.T) {
	f := newProductFixture()
	p := shown("Blue Shirt")
	p.Category = &f.tree.child
	p.Categories = []primitive.ObjectID{f.tree.root, f.tree.child, primitive.NewObjectID()}
	f.products.Seed(p, shown("Red Shirt"), shown("Pants"))

	result, err := f.svc.ListProducts(context.Background(), catalogdto.ProductListQuery{Title: "shirt"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, result.TotalDoc)
	assert.EqualValues(t, 10, result.Limits)
	assert.EqualValues(t, 1, result.Pages)
	require.Len(t, result.Products, 2)

	// mặc định mới nhất trước
	assert.Equal(t, "Red Shirt", result.Products[0].Title["en"])
	blue := result.Products[1]
	require.NotNil(t, blue.Category)
	assert.Equal(t, "Shirts", blue.Category.Name["en"])
	require.Len(t, blue.Categories, 2, "tham chiếu tới danh mục không tồn tại bị bỏ qua")
	assert.Equal(t, f.tree.root, blue.Categories[0].ID)
	assert.Nil(t, result.Products[0].Category)
}

func TestListProducts_Pagination(t *testing.T) {
	f := newProductFixture()
	for i := 1; i <= 25; i++ {
		f.products.Seed(shown(fmt.Sprintf("P%02d", i)))
	}

	result, err := f.svc.ListProducts(context.Background(), catalogdto.ProductListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.EqualValues(t, 25, result.TotalDoc)
	assert.EqualValues(t, 2, result.Pages)
	require.Len(t, result.Products, 10)
	// _id giảm dần: trang 1 là P25..P16, trang 2 là P15..P06
	assert.Equal(t, "P15", result.Products[0].Title["en"])
	assert.Equal(t, "P06", result.Products[9].Title["en"])
}

func TestListProducts_SortByPrice(t *testing.T) {
	f := newProductFixture()
	for _, price := range []catalogmodels.Amount{30, 10, 20} {
		p := shown(fmt.Sprintf("%.0f", price))
		p.Prices = &catalogmodels.Prices{OriginalPrice: price, Price: price}
		f.products.Seed(p)
	}

	result, err := f.svc.ListProducts(context.Background(), catalogdto.ProductListQuery{Price: "low"})
	require.NoError(t, err)
	require.Len(t, result.Products, 3)
	assert.Equal(t, "10", result.Products[0].Title["en"])
	assert.Equal(t, "30", result.Products[2].Title["en"])
}

func TestListProducts_StockFilter(t *testing.T) {
	f := newProductFixture()
	inStock := shown("In stock")
	inStock.Stock = 3
	f.products.Seed(inStock, shown("Sold out"))

	result, err := f.svc.ListProducts(context.Background(), catalogdto.ProductListQuery{Price: "status-out-of-stock"})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Sold out", result.Products[0].Title["en"])
	assert.EqualValues(t, 1, result.TotalDoc)
}

func TestListProducts_StoreError(t *testing.T) {
	f := newProductFixture()
	f.products.FailOn["CountDocuments"] = errors.New("count failed")

	_, err := f.svc.ListProducts(context.Background(), catalogdto.ProductListQuery{})
	assert.EqualError(t, err, "count failed")
}

func TestListShowingProducts(t *testing.T) {
	f := newProductFixture()
	hidden := shown("Hidden")
	hidden.Status = catalogmodels.ProductStatusHide
	f.products.Seed(shown("Old"), hidden, shown("New"))

	products, err := f.svc.ListShowingProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "New", products[0].Title["en"])
	assert.Equal(t, "Old", products[1].Title["en"])
}

func TestListStoreProducts_CategoryIncludesSubtree(t *testing.T) {
	f := newProductFixture()
	tagged := shown("Tee")
	tagged.Categories = []primitive.ObjectID{f.tree.grandchild}
	elsewhere := shown("Robot")
	elsewhere.Categories = []primitive.ObjectID{f.tree.other}
	hidden := shown("Hidden tee")
	hidden.Status = catalogmodels.ProductStatusHide
	hidden.Categories = []primitive.ObjectID{f.tree.grandchild}
	f.products.Seed(tagged, elsewhere, hidden)

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{Category: f.tree.root.Hex()})
	require.NoError(t, err)

	assert.Equal(t, []string{"Tee"}, titles(result.Products))
	assert.Empty(t, result.PopularProducts)
	assert.Empty(t, result.RelatedProducts)
	assert.Empty(t, result.DiscountedProducts)
	assert.NotNil(t, result.PopularProducts)
}

func TestListStoreProducts_InvalidCategory(t *testing.T) {
	f := newProductFixture()
	_, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{Category: "xyz"})
	require.Error(t, err)
	assert.Equal(t, common.StatusBadRequest, common.StatusCodeOf(err))
}

func TestListStoreProducts_Title(t *testing.T) {
	f := newProductFixture()
	f.products.Seed(shown("Blue Shirt"), shown("Pants"))

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{Title: "SHIRT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Blue Shirt"}, titles(result.Products))
}

func TestListStoreProducts_SlugWithRelated(t *testing.T) {
	f := newProductFixture()
	target := shown("Blue Shirt")
	target.Slug = "blue-shirt"
	target.Category = &f.tree.child
	sibling := shown("Green Shirt")
	sibling.Slug = "green-shirt"
	sibling.Category = &f.tree.child
	unrelated := shown("Robot")
	unrelated.Category = &f.tree.other
	f.products.Seed(target, sibling, unrelated)

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{Slug: "Blue-Shirt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Blue Shirt"}, titles(result.Products))
	assert.ElementsMatch(t, []string{"Blue Shirt", "Green Shirt"}, titles(result.RelatedProducts))
	require.NotNil(t, result.Products[0].Category)
	assert.Equal(t, "Shirts", result.Products[0].Category.Name["en"])
	assert.Empty(t, result.PopularProducts)
	assert.Empty(t, result.DiscountedProducts)
}

func TestListStoreProducts_RelatedIsUnfiltered(t *testing.T) {
	f := newProductFixture()
	target := shown("Blue Shirt")
	target.Slug = "blue-shirt"
	target.Category = &f.tree.child
	hidden := shown("Hidden Shirt")
	hidden.Status = catalogmodels.ProductStatusHide
	hidden.Category = &f.tree.child
	f.products.Seed(target, hidden)
	for i := 0; i < storeListLimit+5; i++ {
		p := shown(fmt.Sprintf("Shirt %03d", i))
		p.Category = &f.tree.child
		f.products.Seed(p)
	}

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{Slug: "blue-shirt"})
	require.NoError(t, err)
	assert.Len(t, result.RelatedProducts, storeListLimit+7)
	assert.Contains(t, titles(result.RelatedProducts), "Hidden Shirt")
	assert.Equal(t, "Blue Shirt", result.RelatedProducts[0].Title["en"], "giữ natural order của store")
}

func TestListStoreProducts_SlugWithoutResult(t *testing.T) {
	f := newProductFixture()
	f.products.Seed(shown("Blue Shirt"))

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{Slug: "missing"})
	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.NotNil(t, result.RelatedProducts)
	assert.Empty(t, result.RelatedProducts)
}

func TestListStoreProducts_Curated(t *testing.T) {
	f := newProductFixture()

	var seeded []catalogmodels.Product
	for i, sales := range []int64{5, 50, 0, 20} {
		p := shown(fmt.Sprintf("sales-%d", i))
		p.Sales = sales
		p.Prices = &catalogmodels.Prices{OriginalPrice: 10, Price: 10}
		seeded = append(seeded, p)
	}

	discounted := shown("Discounted")
	discounted.Prices = &catalogmodels.Prices{OriginalPrice: 10, Price: 8, Discount: 2}

	variantDeal := shown("Variant deal")
	variantDeal.IsCombination = true
	variantDeal.Variants = []catalogmodels.Variant{{Price: 10}, {Price: 9, Discount: 1}}

	variantNoDeal := shown("Variant no deal")
	variantNoDeal.IsCombination = true
	variantNoDeal.Variants = []catalogmodels.Variant{{Price: 10}}
	// prices.discount bị bỏ qua với combination product
	variantNoDeal.Prices = &catalogmodels.Prices{Discount: 5}

	hiddenDeal := shown("Hidden deal")
	hiddenDeal.Status = catalogmodels.ProductStatusHide
	hiddenDeal.Sales = 1000
	hiddenDeal.Prices = &catalogmodels.Prices{Discount: 3}

	seeded = append(seeded, discounted, variantDeal, variantNoDeal, hiddenDeal)
	f.products.Seed(seeded...)

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{})
	require.NoError(t, err)

	assert.Empty(t, result.Products)
	assert.Empty(t, result.RelatedProducts)

	require.NotEmpty(t, result.PopularProducts)
	assert.NotContains(t, titles(result.PopularProducts), "Hidden deal")
	for i := 1; i < len(result.PopularProducts); i++ {
		assert.GreaterOrEqual(t, result.PopularProducts[i-1].Sales, result.PopularProducts[i].Sales)
	}
	assert.Equal(t, "sales-1", result.PopularProducts[0].Title["en"])

	assert.Equal(t, []string{"Variant deal", "Discounted"}, titles(result.DiscountedProducts))
}

// rawShown là document sản phẩm đang hiển thị ở dạng thô, giá trị trong extra được giữ nguyên kiểu
func rawShown(title string, extra bson.M) bson.M {
	doc := bson.M{
		"_id":           primitive.NewObjectID(),
		"title":         bson.M{"en": title},
		"status":        catalogmodels.ProductStatusShow,
		"isCombination": false,
		"stock":         int64(1),
		"sales":         int64(0),
	}
	for k, v := range extra {
		doc[k] = v
	}
	return doc
}

func TestListStoreProducts_CuratedWithStringDiscounts(t *testing.T) {
	f := newProductFixture()
	f.products.SeedDocs(
		rawShown("Scalar string", bson.M{"prices": bson.M{"originalPrice": "10.00", "price": "8.00", "discount": "2.00"}}),
		rawShown("Scalar zero", bson.M{"prices": bson.M{"originalPrice": "10.00", "price": "10.00", "discount": "0.00"}}),
		rawShown("Scalar garbage", bson.M{"prices": bson.M{"discount": "n/a"}}),
		rawShown("Variant string", bson.M{
			"isCombination": true,
			"variants":      bson.A{bson.M{"price": "10.00", "discount": "0.00"}, bson.M{"price": "5.00", "discount": "5.00"}},
		}),
		rawShown("Variant zero", bson.M{
			"isCombination": true,
			"variants":      bson.A{bson.M{"price": "10.00", "discount": "0.00"}},
		}),
		rawShown("Variant mixed", bson.M{
			"isCombination": true,
			"variants":      bson.A{bson.M{"discount": int32(0)}, bson.M{"discount": 1.5}},
		}),
	)

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{})
	require.NoError(t, err)
	assert.Len(t, result.PopularProducts, 6, "dữ liệu giá dạng chuỗi vẫn decode được")
	assert.Equal(t, []string{"Variant mixed", "Variant string", "Scalar string"}, titles(result.DiscountedProducts))

	byTitle := map[string]catalogdto.ProductView{}
	for _, v := range result.DiscountedProducts {
		byTitle[v.Title["en"]] = v
	}
	require.NotNil(t, byTitle["Scalar string"].Prices)
	assert.EqualValues(t, 2, byTitle["Scalar string"].Prices.Discount)
	assert.EqualValues(t, 8, byTitle["Scalar string"].Prices.Price)
	require.Len(t, byTitle["Variant string"].Variants, 2)
	assert.EqualValues(t, 5, byTitle["Variant string"].Variants[1].Discount)
}

func TestDiscountedFilter(t *testing.T) {
	filter := toDoc(t, discountedFilter())
	tests := []struct {
		name string
		doc  bson.M
		want bool
	}{
		{"scalar số", rawShown("a", bson.M{"prices": bson.M{"discount": 2.0}}), true},
		{"scalar chuỗi", rawShown("a", bson.M{"prices": bson.M{"discount": "2.00"}}), true},
		{"scalar 0", rawShown("a", bson.M{"prices": bson.M{"discount": "0.00"}}), false},
		{"không có prices", rawShown("a", nil), false},
		{"variant chuỗi", rawShown("a", bson.M{"isCombination": true, "variants": bson.A{bson.M{"discount": "5.00"}}}), true},
		{"variant số", rawShown("a", bson.M{"isCombination": true, "variants": bson.A{bson.M{"discount": int64(1)}}}), true},
		{"variant 0", rawShown("a", bson.M{"isCombination": true, "variants": bson.A{bson.M{"discount": "0.00"}}}), false},
		{"combination không có variants", rawShown("a", bson.M{"isCombination": true, "prices": bson.M{"discount": "3"}}), false},
		{"đang ẩn", rawShown("a", bson.M{"status": catalogmodels.ProductStatusHide, "prices": bson.M{"discount": "2"}}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, basesvctest.Match(tt.doc, filter))
		})
	}
}

func TestListStoreProducts_CuratedLimit(t *testing.T) {
	f := newProductFixture()
	for i := 0; i < 30; i++ {
		p := shown(fmt.Sprintf("P%02d", i))
		p.Sales = int64(i)
		p.Prices = &catalogmodels.Prices{Discount: 1}
		f.products.Seed(p)
	}

	result, err := f.svc.ListStoreProducts(context.Background(), catalogdto.StoreProductQuery{})
	require.NoError(t, err)
	assert.Len(t, result.PopularProducts, storeCuratedLimit)
	assert.Len(t, result.DiscountedProducts, storeCuratedLimit)
	assert.Equal(t, "P29", result.PopularProducts[0].Title["en"])
}

func TestGetProductByID(t *testing.T) {
	f := newProductFixture()
	p := shown("Blue Shirt")
	p.Category = &f.tree.child
	p.Categories = []primitive.ObjectID{f.tree.child}
	f.products.Seed(p)

	view, err := f.svc.GetProductByID(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, p.ID, view.ID)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Shirts", view.Category.Name["en"])
	require.Len(t, view.Categories, 1)

	for _, id := range []string{primitive.NewObjectID().Hex(), "bad-id"} {
		_, err := f.svc.GetProductByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Equal(t, common.StatusNotFound, common.StatusCodeOf(err))
		assert.EqualError(t, err, MsgProductNotFound)
	}
}

func TestGetProductBySlug(t *testing.T) {
	f := newProductFixture()
	p := shown("Blue Shirt")
	p.Slug = "blue-shirt"
	f.products.Seed(p)

	found, err := f.svc.GetProductBySlug(context.Background(), "blue-shirt")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, p.ID, found.ID)

	// so khớp chính xác, không phải chuỗi con
	missing, err := f.svc.GetProductBySlug(context.Background(), "blue")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ====================================
// MUTATION
// ====================================

func TestCreateProduct_GeneratesIDs(t *testing.T) {
	f := newProductFixture()
	existing := f.products.Seed(shown("Existing"))[0]

	created, err := f.svc.CreateProduct(context.Background(), catalogdto.ProductCreateInput{
		Title: map[string]string{"en": "New"},
	})
	require.NoError(t, err)

	assert.False(t, created.ID.IsZero())
	assert.NotEqual(t, existing.ID, created.ID)
	assert.NotEmpty(t, created.ProductID)
	assert.Equal(t, catalogmodels.ProductStatusShow, created.Status)
	assert.NotZero(t, created.CreatedAt)
	assert.Len(t, f.products.All(), 2)
}

func TestCreateProduct_KeepsClientProductID(t *testing.T) {
	f := newProductFixture()
	created, err := f.svc.CreateProduct(context.Background(), catalogdto.ProductCreateInput{
		ProductID: "ext-42",
		Title:     map[string]string{"en": "New"},
		Status:    catalogmodels.ProductStatusHide,
	})
	require.NoError(t, err)
	assert.Equal(t, "ext-42", created.ProductID)
	assert.Equal(t, catalogmodels.ProductStatusHide, created.Status)
}

func TestReplaceAllProducts(t *testing.T) {
	f := newProductFixture()
	f.products.Seed(shown("Old 1"), shown("Old 2"))

	err := f.svc.ReplaceAllProducts(context.Background(), []catalogdto.ProductCreateInput{
		{Title: map[string]string{"en": "New 1"}},
		{Title: map[string]string{"en": "New 2"}},
		{Title: map[string]string{"en": "New 3"}},
	})
	require.NoError(t, err)

	all := f.products.All()
	require.Len(t, all, 3)
	assert.Equal(t, "New 1", all[0].Title["en"])
}

func TestReplaceAllProducts_EmptyList(t *testing.T) {
	f := newProductFixture()
	f.products.Seed(shown("Old 1"), shown("Old 2"))

	err := f.svc.ReplaceAllProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, f.products.All())
}

func TestReplaceAllProducts_InsertFailureLeavesStoreEmpty(t *testing.T) {
	f := newProductFixture()
	f.products.Seed(shown("Old"))
	f.products.FailOn["InsertMany"] = errors.New("insert failed")

	err := f.svc.ReplaceAllProducts(context.Background(), []catalogdto.ProductCreateInput{
		{Title: map[string]string{"en": "New"}},
	})
	assert.EqualError(t, err, "insert failed")
	assert.Empty(t, f.products.All())
}

func TestUpdateProduct_MergesLocalizedFields(t *testing.T) {
	f := newProductFixture()
	p := shown("Old")
	p.Title["fr"] = "Vieux"
	p.Description = map[string]string{"en": "Desc", "fr": "Déscription"}
	f.products.Seed(p)

	result, err := f.svc.UpdateProduct(context.Background(), p.ID.Hex(), catalogdto.ProductUpdateInput{
		Title:       map[string]string{"en": "New Name"},
		Description: map[string]string{"de": "Beschreibung"},
	})
	require.NoError(t, err)

	assert.Equal(t, MsgProductUpdated, result.Message)
	assert.Equal(t, map[string]string{"en": "New Name", "fr": "Vieux"}, result.Data.Title)
	assert.Equal(t, map[string]string{"en": "Desc", "fr": "Déscription", "de": "Beschreibung"}, result.Data.Description)
}

func TestUpdateProduct_OverwritesAndClearsOmittedFields(t *testing.T) {
	f := newProductFixture()
	p := shown("Shirt")
	p.SKU = "SKU-OLD"
	p.Slug = "shirt"
	p.Stock = 7
	p.Tag = []string{"summer"}
	p.Category = &f.tree.child
	f.products.Seed(p)

	result, err := f.svc.UpdateProduct(context.Background(), p.ID.Hex(), catalogdto.ProductUpdateInput{
		SKU:    ptr("SKU-NEW"),
		Prices: &catalogmodels.Prices{OriginalPrice: 20, Price: 15, Discount: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, "SKU-NEW", result.Data.SKU)
	require.NotNil(t, result.Data.Prices)
	assert.EqualValues(t, 5, result.Data.Prices.Discount)

	raw, ok := f.products.Raw(p.ID)
	require.True(t, ok)
	for _, field := range []string{"slug", "stock", "tag", "category"} {
		assert.NotContains(t, raw, field, "field vắng mặt trong input phải bị xóa")
	}
	assert.Equal(t, "show", raw["status"], "status không thuộc tập field bị ghi đè")
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newProductFixture()
	for _, id := range []string{primitive.NewObjectID().Hex(), "bad-id"} {
		_, err := f.svc.UpdateProduct(context.Background(), id, catalogdto.ProductUpdateInput{})
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Equal(t, common.StatusNotFound, common.StatusCodeOf(err))
	}
}

func TestBuildProductUpdate(t *testing.T) {
	existing := catalogmodels.Product{Title: map[string]string{"en": "Old"}}
	update := BuildProductUpdate(existing, catalogdto.ProductUpdateInput{
		Stock: ptr(int64(0)),
		Show:  []string{"en"},
	})

	assert.Equal(t, int64(0), update.Set["stock"], "giá trị 0 vẫn là có mặt")
	assert.Equal(t, []string{"en"}, update.Set["show"])
	assert.Equal(t, map[string]string{"en": "Old"}, update.Set["title"])
	assert.Contains(t, update.Unset, "sku")
	assert.NotContains(t, update.Unset, "stock")
	assert.NotContains(t, update.Unset, "title")
}

func TestUpdateManyProducts(t *testing.T) {
	f := newProductFixture()
	a, b, c := shown("A"), shown("B"), shown("C")
	f.products.Seed(a, b, c)

	body := decodeBody(t, fmt.Sprintf(`{"color":"red","ids":[%q,%q],"note":{}}`, a.ID.Hex(), b.ID.Hex()))
	matched, err := f.svc.UpdateManyProducts(context.Background(), body)
	require.NoError(t, err)
	assert.EqualValues(t, 2, matched)

	for _, id := range []primitive.ObjectID{a.ID, b.ID} {
		raw, _ := f.products.Raw(id)
		assert.Equal(t, "red", raw["color"])
		assert.NotContains(t, raw, "note")
		assert.NotContains(t, raw, "ids")
	}
	rawC, _ := f.products.Raw(c.ID)
	assert.NotContains(t, rawC, "color")
}

func TestUpdateManyProducts_InvalidIDs(t *testing.T) {
	f := newProductFixture()
	_, err := f.svc.UpdateManyProducts(context.Background(), decodeBody(t, `{"ids":["bad"],"slug":"x"}`))
	require.Error(t, err)
	assert.Equal(t, common.StatusBadRequest, common.StatusCodeOf(err))
	assert.Zero(t, f.products.Calls["UpdateMany"])
}

func TestUpdateStatus(t *testing.T) {
	f := newProductFixture()
	p := shown("Shirt")
	f.products.Seed(p)

	msg, err := f.svc.UpdateStatus(context.Background(), p.ID.Hex(), catalogmodels.ProductStatusHide)
	require.NoError(t, err)
	assert.Equal(t, "Product hide Successfully!", msg)

	raw, _ := f.products.Raw(p.ID)
	assert.Equal(t, "hide", raw["status"])

	// id không tồn tại vẫn thành công
	msg, err = f.svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "archived")
	require.NoError(t, err)
	assert.Equal(t, "Product archived Successfully!", msg)
}

func TestDeleteProduct(t *testing.T) {
	f := newProductFixture()
	p := shown("Shirt")
	f.products.Seed(p, shown("Other"))

	deleted, err := f.svc.DeleteProduct(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.Len(t, f.products.All(), 1)

	deleted, err = f.svc.DeleteProduct(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	assert.Zero(t, deleted)

	_, err = f.svc.DeleteProduct(context.Background(), "bad-id")
	assert.Equal(t, common.StatusBadRequest, common.StatusCodeOf(err))
}

func TestDeleteManyProducts(t *testing.T) {
	f := newProductFixture()
	a, b, c := shown("A"), shown("B"), shown("C")
	f.products.Seed(a, b, c)

	deleted, err := f.svc.DeleteManyProducts(context.Background(), []string{a.ID.Hex(), c.ID.Hex(), primitive.NewObjectID().Hex()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	remaining := f.products.All()
	require.Len(t, remaining, 1)
	assert.Equal(t, b.ID, remaining[0].ID)
}
