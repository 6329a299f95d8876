package database

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/model"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open 按驱动建立连接，不做迁移
func Open(cfg *config.DatabaseConfig, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	switch cfg.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		// WAL + busy_timeout，活动记录的并发写入依赖乐观锁重试
		dsn := cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
		return gorm.Open(sqlite.Open(dsn), gcfg)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return gorm.Open(mysql.Open(dsn), gcfg)
	}
}

// Migrate 建表与索引，(user_id, date) 与 (user_id, name_key) 唯一索引在这里创建
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserSkill{},
		&model.ActivityDay{},
		&model.ActivityEntry{},
	)
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := Open(&cfg.Database, logLevel)
	if err != nil {
		return nil, err
	}

	// release 模式默认不自动迁移，需显式 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return db, nil
}
