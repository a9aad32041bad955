package image

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type wikidataSearchResponse struct {
	Search []struct {
		ID string `json:"id"`
	} `json:"search"`
}

type wikidataEntitiesResponse struct {
	Entities map[string]wikidataEntity `json:"entities"`
}

type wikidataEntity struct {
	ID     string `json:"id"`
	Claims map[string][]struct {
		MainSnak struct {
			DataValue struct {
				Value interface{} `json:"value"`
			} `json:"datavalue"`
		} `json:"mainsnak"`
	} `json:"claims"`
}

// searchWikidataID 用wbsearchentities按名称搜索一个wikibase编号。
func (r *Resolver) searchWikidataID(ctx context.Context, query string) string {
	params := url.Values{
		"action":   {"wbsearchentities"},
		"format":   {"json"},
		"language": {"en"},
		"uselang":  {"en"},
		"search":   {query},
		"limit":    {"1"},
	}

	var data wikidataSearchResponse
	if err := r.fetchJSON(ctx, r.WikidataAPI+"?"+params.Encode(), &data); err != nil {
		return ""
	}
	if len(data.Search) == 0 {
		return ""
	}
	return data.Search[0].ID
}

// fetchP18FileName 查询实体的P18（规范图片文件）声明。
func (r *Resolver) fetchP18FileName(ctx context.Context, wikidataID string) string {
	params := url.Values{
		"action": {"wbgetentities"},
		"format": {"json"},
		"ids":    {wikidataID},
		"props":  {"claims"},
	}

	var data wikidataEntitiesResponse
	if err := r.fetchJSON(ctx, r.WikidataAPI+"?"+params.Encode(), &data); err != nil {
		return ""
	}
	entity, ok := data.Entities[wikidataID]
	if !ok {
		return ""
	}
	p18 := entity.Claims["P18"]
	if len(p18) == 0 {
		return ""
	}
	fileName, ok := p18[0].MainSnak.DataValue.Value.(string)
	if !ok || strings.TrimSpace(fileName) == "" {
		return ""
	}
	return fileName
}

// normalizeFileName Commons文件名约定使用下划线代替空格。
func normalizeFileName(fileName string) string {
	return strings.ReplaceAll(fileName, " ", "_")
}

// buildCommonsImageURL 通过Special:FilePath构造可直接引用的图片URL。
func (r *Resolver) buildCommonsImageURL(fileName string, width int) string {
	return fmt.Sprintf("%s/wiki/Special:FilePath/%s?width=%d",
		r.CommonsBase, url.PathEscape(normalizeFileName(fileName)), width)
}

// buildCommonsFilePageURL 构造文件描述页URL，作为署名出处。
func (r *Resolver) buildCommonsFilePageURL(fileName string) string {
	return fmt.Sprintf("%s/wiki/File:%s",
		r.CommonsBase, url.PathEscape(normalizeFileName(fileName)))
}

// fromCommons 是解析链的第二级：Wikidata P18声明指向的Commons规范图。
// wikibase编号优先复用第一级的发现，否则按名称、再按"名称 主题"搜索。
func (r *Resolver) fromCommons(ctx context.Context, q *resolveQuery) *Resolved {
	wikidataID := q.wikidataID
	if wikidataID == "" {
		wikidataID = r.searchWikidataID(ctx, q.name)
	}
	if wikidataID == "" && strings.TrimSpace(q.topic) != "" {
		wikidataID = r.searchWikidataID(ctx, q.name+" "+q.topic)
	}
	if wikidataID == "" {
		return nil
	}

	fileName := r.fetchP18FileName(ctx, wikidataID)
	if fileName == "" {
		return nil
	}

	return &Resolved{
		ImageURL:  r.buildCommonsImageURL(fileName, 800),
		Source:    SourceCommons,
		SourceURL: r.buildCommonsFilePageURL(fileName),
	}
}
