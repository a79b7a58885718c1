package main

import (
	"context"
	"time"

	"catalog_commerce/config"
	catalogmodels "catalog_commerce/internal/api/catalog/models"
	"catalog_commerce/internal/database"
	"catalog_commerce/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Products = "catalog_products"
	global.MongoDB_ColNames.Categories = "catalog_categories"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (đăng ký custom validators: no_xss, objectid)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	global.LanguageCodes = cfg.Languages()
	logrus.WithField("languages", global.LanguageCodes).Info("Initialized server config")
}

// Hàm khởi tạo kết nối database, collections và index
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName_Catalog)
	colNames := []string{global.MongoDB_ColNames.Products, global.MongoDB_ColNames.Categories}
	if err := database.EnsureCollections(ctx, db, colNames); err != nil {
		logrus.Fatalf("Failed to ensure collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Lỗi tạo index không chặn khởi động, chỉ ghi log
	products := db.Collection(global.MongoDB_ColNames.Products)
	if err := database.CreateIndexes(ctx, products, catalogmodels.Product{}); err != nil {
		logrus.WithError(err).Error("Failed to create product indexes")
	}
	if err := database.CreateCatalogAdditionalIndexes(ctx, products, global.LanguageCodes); err != nil {
		logrus.WithError(err).Error("Failed to create additional product indexes")
	}
	if err := database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Categories), catalogmodels.Category{}); err != nil {
		logrus.WithError(err).Error("Failed to create category indexes")
	}
}
