package global

import (
	"catalog_commerce/config"
	"catalog_commerce/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Catalog_CollectionName chứa tên các collection của catalog
type MongoDB_Catalog_CollectionName struct {
	Products   string // Tên collection cho sản phẩm
	Categories string // Tên collection cho danh mục (chỉ đọc, dùng để mở rộng cây và populate)
}

// Các biến toàn cục
var Validate *validator.Validate                         // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                        // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration           // Cấu hình của server
var MongoDB_ColNames = MongoDB_Catalog_CollectionName{} // Tên các collection
var LanguageCodes []string                               // Các mã ngôn ngữ của title/description

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
