package contender

import (
	"context"
	"fmt"

	"github.com/SlpAus/anything-tier-backend/internal/platform/config"
)

// Seed 是生成链产出的单个候选者
type Seed struct {
	ID        string
	Name      string
	ImageURL  string
	Source    string
	SourceURL string
}

// rosterSize 每份自动生成的名单固定16个候选者
const rosterSize = 16

// Generate 为一个主题生成候选者名单，永不失败：
// 先尝试语言模型生成（带Google图片搜索），任何一环缺失或出错
// 都降级到按主题匹配的静态名单，最后兜底到通用名单。
// 这是和图片解析链同构的又一条降级链。
func Generate(ctx context.Context, topic string) []Seed {
	if config.Cfg != nil && config.Cfg.Generator.OpenAIAPIKey != "" {
		seeds, err := generateWithAI(ctx, topic, config.Cfg.Generator)
		if err == nil && len(seeds) > 0 {
			return seeds
		}
		fmt.Printf("警告: 语言模型生成名单失败 (%v)，降级到静态名单。\n", err)
	}

	return defaultContenders(topic)
}
