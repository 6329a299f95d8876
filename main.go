
// @title Career Coach 后端 API
// @version 1.0
// @description 职业成长平台的后端服务：活动积分、连续天数、等级与岗位匹配度。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"career_coach_backend/internal/app"
	"career_coach_backend/internal/config"
	"career_coach_backend/pkg/database"
	"career_coach_backend/pkg/logger"
	"flag"
	"log"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	// 迁移完成后直接退出
	if *migrateOnly {
		logger.InitLogger(cfg)
		defer logger.Log.Sync()
		if _, err := database.InitDB(cfg); err != nil {
			logger.Log.Fatal("数据库迁移失败", zap.Error(err))
		}
		logger.Log.Info("数据库迁移完成，退出程序")
		return
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
