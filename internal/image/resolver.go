package image

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// --- 图片来源常量 ---
// 记录每张图片由哪个上游服务提供，用于前端署名展示

const (
	SourceWikipedia    = "wikipedia"
	SourceCommons      = "commons"
	SourcePollinations = "pollinations"
	SourceUnsplash     = "unsplash"
	SourceGoogle       = "google"
	SourcePlaceholder  = "placeholder"
	SourceUnknown      = "unknown"
)

// Resolved 是图片解析链的输出：一个可用的图片URL及其来源信息
type Resolved struct {
	ImageURL  string `json:"imageUrl"`
	Source    string `json:"imageSource"`
	SourceURL string `json:"imageSourceUrl,omitempty"`
}

// Resolver 实现逐级降级的图片解析链：
// 维基百科词条图 -> Wikidata/Commons规范图 -> Pollinations生成图。
// 解析永远不会失败：链的最后一级只做URL拼接。
type Resolver struct {
	Client           *http.Client
	Timeout          time.Duration
	UserAgent        string
	WikipediaAPI     string
	WikidataAPI      string
	CommonsBase      string
	PollinationsBase string
	PollinationsKey  string

	// 进程生命周期内的备忘缓存，按(name, topic)去重，只增不减
	cacheMu sync.Mutex
	cache   map[string]Resolved
}

// NewResolver 创建一个使用默认公共端点的解析器。
func NewResolver() *Resolver {
	return &Resolver{
		Client:           &http.Client{},
		Timeout:          6500 * time.Millisecond,
		UserAgent:        "anything-tier-backend/1.0",
		WikipediaAPI:     "https://en.wikipedia.org/w/api.php",
		WikidataAPI:      "https://www.wikidata.org/w/api.php",
		CommonsBase:      "https://commons.wikimedia.org",
		PollinationsBase: "https://image.pollinations.ai",
		cache:            make(map[string]Resolved),
	}
}

// resolveQuery 在链的各级之间传递输入和中间产物
// （第一级发现的wikibase编号可以免去第二级的一次搜索）
type resolveQuery struct {
	name       string
	topic      string
	wikidataID string
}

// provider 是链上单个解析步骤的统一签名：命中返回结果，未命中返回nil。
type provider func(ctx context.Context, q *resolveQuery) *Resolved

// Resolve 为一个名字解析图片。无论上游如何失败，总会返回可用的结果。
func (r *Resolver) Resolve(ctx context.Context, name, topic string) Resolved {
	cacheKey := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(topic))

	r.cacheMu.Lock()
	if cached, ok := r.cache[cacheKey]; ok {
		r.cacheMu.Unlock()
		return cached
	}
	r.cacheMu.Unlock()

	q := &resolveQuery{name: name, topic: topic}

	// 按固定顺序尝试各级，第一个命中的结果即为最终结果
	providers := []provider{
		r.fromWikipedia,
		r.fromCommons,
		r.fromPollinations,
	}

	var resolved Resolved
	for _, p := range providers {
		if result := p(ctx, q); result != nil {
			resolved = *result
			break
		}
	}

	r.cacheMu.Lock()
	r.cache[cacheKey] = resolved
	r.cacheMu.Unlock()
	return resolved
}

// uniqQueries 去除空白和大小写意义上的重复查询词，保持原有顺序。
func uniqQueries(values ...string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool)
	for _, v := range values {
		s := strings.TrimSpace(v)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}
