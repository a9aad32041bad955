package contender

import (
	"context"
	"strings"
	"testing"

	"github.com/SlpAus/anything-tier-backend/internal/image"
	"github.com/SlpAus/anything-tier-backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 没有配置任何密钥时走静态名单，生成永不失败。

func withoutAPIKeys(t *testing.T) {
	t.Helper()
	prev := config.Cfg
	config.Cfg = nil
	t.Cleanup(func() { config.Cfg = prev })
}

// 主题里含snack/office时命中零食名单
func TestGenerateOfficeSnacks(t *testing.T) {
	withoutAPIKeys(t)

	seeds := Generate(context.Background(), "Best Office Snacks")
	require.Len(t, seeds, rosterSize)

	names := make(map[string]bool)
	for _, seed := range seeds {
		names[seed.Name] = true
		assert.NotEmpty(t, seed.ID)
		assert.NotEmpty(t, seed.ImageURL)
		assert.Equal(t, image.SourceUnsplash, seed.Source)
	}
	assert.True(t, names["Potato Chips"])
	assert.True(t, names["Popcorn"])
}

// 主题里含movie/film时命中电影名单
func TestGenerateMovies(t *testing.T) {
	withoutAPIKeys(t)

	seeds := Generate(context.Background(), "greatest films of all time")
	require.Len(t, seeds, rosterSize)

	names := make(map[string]bool)
	for _, seed := range seeds {
		names[seed.Name] = true
	}
	assert.True(t, names["The Godfather"])
	assert.True(t, names["Inception"])
}

// 未命中任何关键词时退到通用名单：主题+序号，ID两两不同。
// 通用名单不带图片，留给图片解析链补全
func TestGenerateGenericFallback(t *testing.T) {
	withoutAPIKeys(t)

	seeds := Generate(context.Background(), "Programming Languages")
	require.Len(t, seeds, rosterSize)

	ids := make(map[string]bool)
	for i, seed := range seeds {
		ids[seed.ID] = true
		assert.Contains(t, seed.Name, "Programming Languages")
		assert.Empty(t, seed.ImageURL, "下标 %d", i)
	}
	assert.Len(t, ids, rosterSize)
}

// 关键词匹配不分大小写
func TestGenerateTopicMatchingCaseInsensitive(t *testing.T) {
	withoutAPIKeys(t)

	upper := Generate(context.Background(), "OFFICE SNACKS")
	lower := Generate(context.Background(), "office snacks")
	require.Len(t, upper, rosterSize)
	require.Len(t, lower, rosterSize)
	for i := range upper {
		assert.Equal(t, lower[i].Name, upper[i].Name)
	}
}

// 配置存在但没有OpenAI密钥时同样走静态名单
func TestGenerateEmptyKeyConfig(t *testing.T) {
	prev := config.Cfg
	config.Cfg = &config.Config{}
	t.Cleanup(func() { config.Cfg = prev })

	seeds := Generate(context.Background(), "movie night")
	require.Len(t, seeds, rosterSize)
	assert.True(t, strings.EqualFold(seeds[0].Name, "The Shawshank Redemption"))
}
