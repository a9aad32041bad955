package database

import (
	"fmt"
	"log"
	"os"

	"github.com/SlpAus/anything-tier-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是本地持久化镜像使用的SQLite连接
// 它是投票数据在主存储不可用时的权威后备
var DB *gorm.DB

// InitDB 初始化本地镜像数据库连接
func InitDB(cfg config.SqliteConfig) error {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	path := cfg.Path
	if path == "" {
		path = "mirror.db"
	}

	// 连接到SQLite数据库
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return fmt.Errorf("连接本地镜像数据库失败: %w", err)
	}

	fmt.Println("本地镜像数据库连接成功！")
	return nil
}
