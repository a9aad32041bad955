package image

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestResolver 把解析器的所有上游端点指向测试服务器。
func newTestResolver(wikipediaURL, wikidataURL string) *Resolver {
	r := NewResolver()
	r.Client = &http.Client{}
	r.Timeout = 2 * time.Second
	r.WikipediaAPI = wikipediaURL
	r.WikidataAPI = wikidataURL
	return r
}

// failingServer 对所有请求返回500，并记录调用次数。
func failingServer(t *testing.T, calls *int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// 维基百科命中词条图时，链在第一级就结束，不再访问Wikidata
func TestResolveWikipediaHit(t *testing.T) {
	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[{
			"pageid":1,"title":"Tokyo",
			"fullurl":"https://en.wikipedia.org/wiki/Tokyo",
			"original":{"source":"https://upload.wikimedia.org/tokyo.jpg"},
			"thumbnail":{"source":"https://upload.wikimedia.org/tokyo-thumb.jpg"}
		}]}}`)
	}))
	t.Cleanup(wiki.Close)

	var wikidataCalls int64
	wikidata := failingServer(t, &wikidataCalls)

	r := newTestResolver(wiki.URL, wikidata.URL)
	got := r.Resolve(context.Background(), "Tokyo", "cities")

	assert.Equal(t, "https://upload.wikimedia.org/tokyo.jpg", got.ImageURL)
	assert.Equal(t, SourceWikipedia, got.Source)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Tokyo", got.SourceURL)
	assert.EqualValues(t, 0, atomic.LoadInt64(&wikidataCalls))
}

// API没有词条图但有文章URL时，退而抓取文章页的og:image
func TestResolveWikipediaOGImageFallback(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"query":{"pages":[{
			"pageid":1,"title":"Obscure Thing",
			"fullurl":"%s/wiki/Obscure_Thing"
		}]}}`, srv.URL)
	})
	mux.HandleFunc("/wiki/Obscure_Thing", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:image" content="https://upload.wikimedia.org/og.jpg"/></head><body></body></html>`)
	})

	var wikidataCalls int64
	wikidata := failingServer(t, &wikidataCalls)

	r := newTestResolver(srv.URL+"/w/api.php", wikidata.URL)
	got := r.Resolve(context.Background(), "Obscure Thing", "")

	assert.Equal(t, "https://upload.wikimedia.org/og.jpg", got.ImageURL)
	assert.Equal(t, SourceWikipedia, got.Source)
	assert.Equal(t, srv.URL+"/wiki/Obscure_Thing", got.SourceURL)
}

// 维基百科全部落空时，降级到Wikidata P18指向的Commons规范图
func TestResolveFallsBackToCommons(t *testing.T) {
	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[]}}`)
	}))
	t.Cleanup(wiki.Close)

	wikidata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "wbsearchentities":
			fmt.Fprint(w, `{"search":[{"id":"Q42"}]}`)
		case "wbgetentities":
			assert.Equal(t, "Q42", r.URL.Query().Get("ids"))
			fmt.Fprint(w, `{"entities":{"Q42":{"id":"Q42","claims":{"P18":[
				{"mainsnak":{"datavalue":{"value":"Douglas Adams portrait.jpg"}}}
			]}}}}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(wikidata.Close)

	r := newTestResolver(wiki.URL, wikidata.URL)
	got := r.Resolve(context.Background(), "Douglas Adams", "authors")

	assert.Equal(t, SourceCommons, got.Source)
	// Commons约定：文件名里的空格换成下划线
	assert.Contains(t, got.ImageURL, "Special:FilePath/Douglas_Adams_portrait.jpg")
	assert.Contains(t, got.ImageURL, "width=800")
	assert.Contains(t, got.SourceURL, "File:Douglas_Adams_portrait.jpg")
}

// 所有上游都失败时，最后一级用提示词拼出生成图URL，解析永不失败
func TestResolvePollinationsLastResort(t *testing.T) {
	var calls int64
	broken := failingServer(t, &calls)

	r := newTestResolver(broken.URL, broken.URL)
	got := r.Resolve(context.Background(), "Mystery Item", "things")

	assert.Equal(t, SourcePollinations, got.Source)
	assert.NotEmpty(t, got.ImageURL)
	// 提示词在路径段里，空格必须编码成%20而不是+
	assert.Contains(t, got.ImageURL, "/prompt/Mystery%20Item")
	assert.Contains(t, got.ImageURL, "width=1024")
}

// 提示词走路径编码，密钥走查询串编码
func TestBuildPollinationsURLEncoding(t *testing.T) {
	r := NewResolver()
	u := r.BuildPollinationsURL("Potato Chips")
	assert.Contains(t, u, "/prompt/Potato%20Chips?")
	assert.NotContains(t, u, "+")

	r.PollinationsKey = "se cret"
	u = r.BuildPollinationsURL("x")
	assert.Contains(t, u, "apikey=se+cret")
	assert.Contains(t, u, "key=se+cret")
}

// 同一个(名字, 主题)只解析一次；大小写和首尾空白不影响缓存命中
func TestResolveMemoization(t *testing.T) {
	var wikiCalls int64
	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&wikiCalls, 1)
		fmt.Fprint(w, `{"query":{"pages":[{
			"pageid":1,"title":"Tokyo",
			"fullurl":"https://en.wikipedia.org/wiki/Tokyo",
			"original":{"source":"https://upload.wikimedia.org/tokyo.jpg"}
		}]}}`)
	}))
	t.Cleanup(wiki.Close)

	var wikidataCalls int64
	wikidata := failingServer(t, &wikidataCalls)

	r := newTestResolver(wiki.URL, wikidata.URL)
	first := r.Resolve(context.Background(), "Tokyo", "cities")
	callsAfterFirst := atomic.LoadInt64(&wikiCalls)

	second := r.Resolve(context.Background(), "Tokyo", "cities")
	third := r.Resolve(context.Background(), "  tokyo ", "Cities")

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Equal(t, callsAfterFirst, atomic.LoadInt64(&wikiCalls))
}

// 批量解析的输出顺序与输入名字一一对应，与完成顺序无关
func TestResolveManyPreservesOrder(t *testing.T) {
	var calls int64
	broken := failingServer(t, &calls)

	r := newTestResolver(broken.URL, broken.URL)

	names := make([]string, 10)
	for i := range names {
		names[i] = fmt.Sprintf("Contender %d", i+1)
	}

	results := r.ResolveMany(context.Background(), "things", names, 4)
	require.Len(t, results, len(names))
	for i, name := range names {
		assert.Contains(t, results[i].ImageURL, url.PathEscape(name), "下标 %d", i)
	}
}

// 空名单和非法并发数都不应崩溃
func TestResolveManyEdgeCases(t *testing.T) {
	var calls int64
	broken := failingServer(t, &calls)
	r := newTestResolver(broken.URL, broken.URL)

	assert.Empty(t, r.ResolveMany(context.Background(), "t", nil, 4))

	results := r.ResolveMany(context.Background(), "t", []string{"One"}, 0)
	require.Len(t, results, 1)
	assert.Equal(t, SourcePollinations, results[0].Source)
}
