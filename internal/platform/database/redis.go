package database

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/anything-tier-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是一个全局的Redis客户端实例，作为锦标赛数据的主存储
// 当Redis未配置时，RDB保持为nil，所有存储操作降级到本地镜像
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

const initPingTimeout = 3 * time.Second

// InitRedis 初始化与Redis数据库的连接
// 与传统做法不同，这里连接失败不会panic：主存储是可选的，
// 缺失或不可达时应用依然要能以降级模式提供服务
func InitRedis(cfg config.RedisConfig) {
	if cfg.Address == "" {
		fmt.Println("警告: 未配置Redis地址，主存储不可用，将以纯本地镜像模式运行。")
		UpdateStatus(false)
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	ctx, cancel := context.WithTimeout(Ctx, initPingTimeout)
	defer cancel()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		// 启动时连不上也只是降级，由健康检查器负责探测恢复
		fmt.Printf("警告: 无法连接到Redis (%v)，暂以降级模式运行。\n", err)
		UpdateStatus(false)
		return
	}

	UpdateStatus(true)
	fmt.Println("Redis 连接成功！")
}

// IsRedisAvailable 返回主存储当前是否可用
// 未配置(RDB == nil)和健康检查失败都视为不可用
func IsRedisAvailable() bool {
	return RDB != nil && IsRedisHealthy()
}
