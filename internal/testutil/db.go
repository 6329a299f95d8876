package testutil

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/pkg/database"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB 打开内存 SQLite 并自动迁移所有表。
// 内存库每个连接是独立的，连接池限制为 1 保证并发测试看到同一份数据。
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return prepare(t, db, 1)
}

// OpenFileTestDB 打开临时目录下的 WAL SQLite，允许 conns 个并发连接，
// 用于需要真实并发写入的测试。
func OpenFileTestDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "ledger.db"),
	}, logger.Silent)
	if err != nil {
		t.Fatalf("open file test db: %v", err)
	}
	return prepare(t, db, conns)
}

func prepare(t *testing.T, db *gorm.DB, conns int) *gorm.DB {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// ForceVersionConflicts 在 users 表的前 times 次 UPDATE 之前，于同一事务内把 version 加一，
// 使乐观锁条件落空。返回已触发次数的计数器。
func ForceVersionConflicts(t *testing.T, db *gorm.DB, times int) *atomic.Int32 {
	t.Helper()

	fired := &atomic.Int32{}
	err := db.Callback().Update().Before("gorm:update").Register("testutil:bump_user_version", func(tx *gorm.DB) {
		if tx.Statement.Table != "users" || int(fired.Load()) >= times {
			return
		}
		fired.Add(1)
		if err := tx.Session(&gorm.Session{NewDB: true}).Exec("UPDATE users SET version = version + 1").Error; err != nil {
			_ = tx.AddError(err)
		}
	})
	if err != nil {
		t.Fatalf("register conflict callback: %v", err)
	}
	return fired
}
