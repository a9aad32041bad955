package tournament

import (
	"context"
	"sort"
	"strings"

	"github.com/SlpAus/anything-tier-backend/internal/image"
)

// --- Service-Level Data Transfer Objects (DTOs) ---

// CreateResultDTO 是创建锦标赛服务返回给控制器的数据包
type CreateResultDTO struct {
	Tournament *Tournament
	// Persisted 标记主存储写入是否成功；false时数据仅存在于本地镜像
	Persisted bool
}

// --- Service Functions ---

// CreateTournament 是创建锦标赛的核心业务逻辑。
// enrich为真时（自动生成的名单）为缺图的候选者走图片解析链；
// 用户自带图片URL的名单绝不做解析。创建本身永不失败：
// 主存储写不进去就降级为仅镜像持久化。
func CreateTournament(ctx context.Context, topic string, seeds []Seed, enrich bool) *CreateResultDTO {
	if enrich {
		seeds = enrichSeeds(ctx, topic, seeds)
	}

	// 1. 构造并尽力写入主存储
	t, persisted := Create(topic, seeds)

	// 2. 无论主存储结果如何，同步写入本地镜像
	SaveToMirror(t)

	return &CreateResultDTO{Tournament: t, Persisted: persisted}
}

// enrichSeeds 用图片解析链为缺少图片的候选者补全图片和出处。
// 已经带图的候选者（静态名单的存量图、语言模型路径搜到的图）原样保留，
// 只有没有图片URL的候选者才走解析链。
func enrichSeeds(ctx context.Context, topic string, seeds []Seed) []Seed {
	missing := make([]int, 0, len(seeds))
	names := make([]string, 0, len(seeds))
	for i, seed := range seeds {
		if strings.TrimSpace(seed.ImageURL) == "" {
			missing = append(missing, i)
			names = append(names, seed.Name)
		}
	}
	if len(missing) == 0 {
		return seeds
	}

	resolved := image.ResolveMany(ctx, topic, names)
	for j, i := range missing {
		seeds[i].ImageURL = resolved[j].ImageURL
		seeds[i].ImageSource = ImageSource(resolved[j].Source)
		seeds[i].ImageSourceURL = resolved[j].SourceURL
	}
	return seeds
}

// GetTournament 读取一个锦标赛的当前状态。
// 先查主存储，再查本地镜像，用Reconcile选出更完整的一份；
// 两边都没有时返回nil（"不存在"与"存储不可用"在此合并）。
func GetTournament(id string) *Tournament {
	remote := Fetch(id)
	local := GetFromMirror(id)
	return Reconcile(remote, local)
}

// GetLeaderboard 返回按评分从高到低排序的候选者列表。
func GetLeaderboard(id string) []Item {
	t := GetTournament(id)
	if t == nil {
		return nil
	}

	items := make([]Item, len(t.Items))
	copy(items, t.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Rating > items[j].Rating
	})
	return items
}
