package contender

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/SlpAus/anything-tier-backend/internal/image"
	"github.com/SlpAus/anything-tier-backend/internal/platform/config"
	openai "github.com/sashabaranov/go-openai"
)

const (
	aiRequestTimeout     = 30 * time.Second
	googleSearchTimeout  = 6500 * time.Millisecond
	googleSearchEndpoint = "https://www.googleapis.com/customsearch/v1"
)

// aiItem 是语言模型按约定输出的单个候选者
type aiItem struct {
	Name        string `json:"name"`
	SearchQuery string `json:"searchQuery"`
}

type aiRoster struct {
	Items []aiItem `json:"items"`
}

const aiSystemPrompt = `You are a tournament organizer.
Output valid JSON only.
Root object must have an 'items' array.
Each item has 'name' and 'searchQuery'.
'searchQuery' should be the best Google Image search term for that item (e.g. 'Darth Vader movie still').`

// generateWithAI 让语言模型生成候选者名单，并为每个候选者并行抓取一张图片。
func generateWithAI(ctx context.Context, topic string, cfg config.GeneratorConfig) ([]Seed, error) {
	client := openai.NewClient(cfg.OpenAIAPIKey)

	ctx, cancel := context.WithTimeout(ctx, aiRequestTimeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: cfg.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: aiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Generate %d contenders for: %q.", rosterSize, topic)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("语言模型调用失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("语言模型没有返回内容")
	}

	var roster aiRoster
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &roster); err != nil {
		return nil, fmt.Errorf("无法解析语言模型输出: %w", err)
	}
	if len(roster.Items) == 0 {
		return nil, fmt.Errorf("语言模型返回了空名单")
	}

	// 并行抓取所有图片，逐项失败降级为占位图
	seeds := make([]Seed, len(roster.Items))
	now := time.Now().Unix()
	var wg sync.WaitGroup
	wg.Add(len(roster.Items))
	for i, item := range roster.Items {
		go func(i int, item aiItem) {
			defer wg.Done()
			imageURL, source := fetchGoogleImage(ctx, item.SearchQuery, cfg)
			seeds[i] = Seed{
				ID:       fmt.Sprintf("ai-%d-%d", i, now),
				Name:     item.Name,
				ImageURL: imageURL,
				Source:   source,
			}
		}(i, item)
	}
	wg.Wait()

	return seeds, nil
}

type googleSearchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// fetchGoogleImage 用Google自定义搜索为一个查询词找一张图，
// 密钥缺失或任何失败都降级为占位图URL，绝不报错。
func fetchGoogleImage(ctx context.Context, query string, cfg config.GeneratorConfig) (string, string) {
	placeholder := "https://via.placeholder.com/400?text=" + url.QueryEscape(query)
	if cfg.GoogleAPIKey == "" || cfg.GoogleEngineID == "" {
		return placeholder, image.SourcePlaceholder
	}

	params := url.Values{
		"q":          {query},
		"cx":         {cfg.GoogleEngineID},
		"key":        {cfg.GoogleAPIKey},
		"searchType": {"image"},
		"num":        {"1"},
		"safe":       {"high"},
	}

	ctx, cancel := context.WithTimeout(ctx, googleSearchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleSearchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return placeholder, image.SourcePlaceholder
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return placeholder, image.SourcePlaceholder
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return placeholder, image.SourcePlaceholder
	}

	var data googleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || len(data.Items) == 0 || data.Items[0].Link == "" {
		return placeholder, image.SourcePlaceholder
	}
	return data.Items[0].Link, image.SourceGoogle
}
