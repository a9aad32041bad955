package image

import (
	"context"
	"net/url"
)

// wikipediaPage 是Action API generator=search响应中单个页面的结构
type wikipediaPage struct {
	PageID    int    `json:"pageid"`
	Title     string `json:"title"`
	FullURL   string `json:"fullurl"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	Original *struct {
		Source string `json:"source"`
	} `json:"original"`
	PageProps *struct {
		WikibaseItem string `json:"wikibase_item"`
	} `json:"pageprops"`
}

type wikipediaQueryResponse struct {
	Query struct {
		Pages []wikipediaPage `json:"pages"`
	} `json:"query"`
}

// searchWikipedia 用一个查询词搜索维基百科，返回最佳命中页面。
// 任何网络或解析错误都吞掉并返回nil，由调用方降级到下一步。
func (r *Resolver) searchWikipedia(ctx context.Context, query string) *wikipediaPage {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"generator":     {"search"},
		"gsrsearch":     {query},
		"gsrlimit":      {"1"},
		"redirects":     {"1"},
		"prop":          {"pageimages|info|pageprops"},
		"inprop":        {"url"},
		"piprop":        {"thumbnail|original"},
		"pithumbsize":   {"800"},
	}

	var data wikipediaQueryResponse
	if err := r.fetchJSON(ctx, r.WikipediaAPI+"?"+params.Encode(), &data); err != nil {
		return nil
	}
	if len(data.Query.Pages) == 0 {
		return nil
	}
	return &data.Query.Pages[0]
}

// pageImageURL 返回页面携带的词条图URL（优先原图，其次缩略图）。
func (p *wikipediaPage) pageImageURL() string {
	if p.Original != nil && p.Original.Source != "" {
		return p.Original.Source
	}
	if p.Thumbnail != nil && p.Thumbnail.Source != "" {
		return p.Thumbnail.Source
	}
	return ""
}

// fromWikipedia 是解析链的第一级：维基百科词条图。
// 先用名字本身搜索，命中但没有词条图时再用"名字 主题"重试；
// 两次都没有直接图片但拿到了文章URL时，退而抓取文章页的og:image。
// 途中发现的wikibase编号会记录在查询状态里，供下一级使用。
func (r *Resolver) fromWikipedia(ctx context.Context, q *resolveQuery) *Resolved {
	var bestHit *wikipediaPage

	for _, query := range uniqQueries(q.name, q.name+" "+q.topic) {
		page := r.searchWikipedia(ctx, query)
		if page == nil {
			continue
		}
		if bestHit == nil {
			bestHit = page
		}
		if page.PageProps != nil && q.wikidataID == "" {
			q.wikidataID = page.PageProps.WikibaseItem
		}

		if imageURL := page.pageImageURL(); imageURL != "" {
			return &Resolved{
				ImageURL:  imageURL,
				Source:    SourceWikipedia,
				SourceURL: page.FullURL,
			}
		}
	}

	// 命中了词条但API没有给出页面图，尝试从文章HTML里捞og:image
	if bestHit != nil && bestHit.FullURL != "" {
		if ogImage := r.scrapeOGImage(ctx, bestHit.FullURL); ogImage != "" {
			return &Resolved{
				ImageURL:  ogImage,
				Source:    SourceWikipedia,
				SourceURL: bestHit.FullURL,
			}
		}
	}

	return nil
}

// scrapeOGImage 抓取文章页并解析og:image元信息，失败时返回空串。
func (r *Resolver) scrapeOGImage(ctx context.Context, pageURL string) string {
	doc, err := r.fetchDocument(ctx, pageURL)
	if err != nil {
		return ""
	}
	content, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	return content
}
