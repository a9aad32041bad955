package image

import (
	"context"
	"net/url"
	"strings"
)

// BuildPollinationsURL 构造提示词生成图URL。
// 这一步只做字符串拼接，结构上永远成功——图片本身能否加载由前端兜底。
func (r *Resolver) BuildPollinationsURL(prompt string) string {
	q := strings.TrimSpace(prompt)
	if q == "" {
		q = "image"
	}
	u := r.PollinationsBase + "/prompt/" + url.PathEscape(q) + "?width=1024&height=1024&nologo=true"
	if key := strings.TrimSpace(r.PollinationsKey); key != "" {
		u += "&apikey=" + url.QueryEscape(key) + "&key=" + url.QueryEscape(key)
	}
	return u
}

// fromPollinations 是解析链的最后一级，必定命中。
func (r *Resolver) fromPollinations(_ context.Context, q *resolveQuery) *Resolved {
	return &Resolved{
		ImageURL:  r.BuildPollinationsURL(q.name),
		Source:    SourcePollinations,
		SourceURL: r.PollinationsBase + "/",
	}
}
