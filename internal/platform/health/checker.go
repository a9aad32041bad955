package health

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/anything-tier-backend/internal/platform/database"
	"github.com/SlpAus/anything-tier-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// PerformCheck 执行一次健康检查并更新主存储的可用状态。
// 主存储未配置时什么都不做：不存在"恢复"的可能。
func PerformCheck() {
	if database.RDB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()

	if _, err := database.RDB.Ping(ctx).Result(); err != nil {
		database.UpdateStatus(false)
		return
	}
	database.UpdateStatus(true)
}

// StartRedisHealthCheck 在后台Goroutine中定期执行健康检查。
// 存储适配器通过database.IsRedisAvailable()读取检查结果，
// 在不可用期间直接走降级路径，避免每个请求都撞超时。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()

	if database.RDB == nil {
		fmt.Println("健康检查器: 主存储未配置，检查器退出。")
		return
	}

	fmt.Println("Redis健康检查器已启动。")
	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
		PerformCheck()
	}
}
