package tournament

import (
	"fmt"

	"github.com/SlpAus/anything-tier-backend/internal/platform/database"
)

// InitializeMirror 建立本地镜像表结构。应在应用启动时调用一次。
func InitializeMirror() error {
	if database.DB == nil {
		return fmt.Errorf("本地镜像数据库尚未初始化")
	}
	if err := database.DB.AutoMigrate(&MirrorRecord{}); err != nil {
		return fmt.Errorf("无法迁移本地镜像表: %w", err)
	}
	return nil
}
