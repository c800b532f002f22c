// @title ProctorGuard 后端 API
// @version 1.0
// @description 在线考试监考服务：摄像头帧分析、违规告警与取证、交卷记录。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /

package main

import (
	"flag"
	"log"
	"proctor_guard_backend/internal/app"
	"proctor_guard_backend/internal/config"
	"proctor_guard_backend/pkg/configwatcher"
	"proctor_guard_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 考试中途可以改配置文件调日志级别，不用重启
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Config reloaded", zap.String("log_level", newCfg.Logging.Level))
	})

	application.Run()
}
