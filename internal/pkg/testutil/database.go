package testutil

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 基于内存 SQLite 的测试库，所有集成测试共用
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Member{},
		&model.MemberThumbnail{},
		&model.Post{},
		&model.TemporaryPost{},
		&model.Series{},
		&model.Tag{},
		&model.PostTag{},
		&model.Love{},
		&model.Look{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// SetupTestConfig 填充拼接公共 URL 等逻辑依赖的全局配置
func SetupTestConfig(t *testing.T) {
	t.Helper()

	config.Cfg = &config.Config{
		MinIO: config.MinIOConfig{
			ExternalEndpoint: "files.test.local",
			Bucket:           "inkstone-test",
		},
		OAuth: config.OAuthConfig{
			Providers: map[string]config.OAuthProvider{},
		},
	}
}

// CleanupTestDB 关闭测试库连接
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("Failed to get database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}
