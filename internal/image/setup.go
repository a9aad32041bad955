package image

import (
	"context"
	"time"

	"github.com/SlpAus/anything-tier-backend/internal/platform/config"
)

// globalResolver 是整个进程共享的解析器实例，保证备忘缓存全局生效
var globalResolver = NewResolver()

// defaultConcurrency 批量解析的默认并发数
var defaultConcurrency = 4

// Initialize 用配置初始化全局解析器。应在应用启动时调用一次。
func Initialize(cfg config.ImageConfig) {
	if cfg.TimeoutMs > 0 {
		globalResolver.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	}
	if cfg.Concurrency > 0 {
		defaultConcurrency = cfg.Concurrency
	}
	globalResolver.PollinationsKey = cfg.PollinationsAPIKey
}

// Resolve 使用全局解析器解析单个名字的图片。
func Resolve(ctx context.Context, name, topic string) Resolved {
	return globalResolver.Resolve(ctx, name, topic)
}

// ResolveMany 使用全局解析器按默认并发数批量解析。
func ResolveMany(ctx context.Context, topic string, names []string) []Resolved {
	return globalResolver.ResolveMany(ctx, topic, names, defaultConcurrency)
}
