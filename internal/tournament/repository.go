package tournament

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SlpAus/anything-tier-backend/internal/platform/database"
	"github.com/google/uuid"
)

// --- Redis-specific Definitions ---

const (
	// tournamentKeyPrefix 每个锦标赛在主存储中占一个键，值为完整JSON快照
	tournamentKeyPrefix = "tournament:"
	// opTimeout 单次主存储操作的超时
	opTimeout = 3 * time.Second
)

func tournamentKey(id string) string {
	return tournamentKeyPrefix + id
}

// --- Store Adapter ---
// 主存储适配器对调用方只承诺"尽力而为"：
// Redis未配置或不可达时，所有操作降级而不是报错。

// Create 构造一个全新的锦标赛并尽力持久化。
// 返回的second值标记持久化是否成功；失败时依然返回构造好的对象，
// 由调用方落入本地镜像（降级而非失败的契约）。
func Create(topic string, seeds []Seed) (*Tournament, bool) {
	items := make([]Item, 0, len(seeds))
	for _, seed := range seeds {
		source := seed.ImageSource
		if source == "" {
			source = ImageSourceUnknown
		}
		items = append(items, Item{
			ID:             seed.ID,
			Name:           seed.Name,
			ImageURL:       seed.ImageURL,
			ImageSource:    source,
			ImageSourceURL: seed.ImageSourceURL,
			Rating:         InitialRating,
			Wins:           0,
			Losses:         0,
		})
	}

	t := &Tournament{
		ID:         uuid.New().String(),
		Topic:      topic,
		Items:      items,
		CreatedAt:  time.Now(),
		TotalVotes: 0,
	}

	if !database.IsRedisAvailable() {
		fmt.Println("警告: 主存储不可用，新建锦标赛未持久化，仅写入本地镜像。")
		return t, false
	}

	if err := persist(t); err != nil {
		fmt.Printf("警告: 锦标赛 %s 持久化失败 (%v)，仅写入本地镜像。\n", t.ID, err)
		return t, false
	}
	return t, true
}

// Fetch 按ID从主存储读取锦标赛。
// "记录不存在"和"存储不可用"都返回nil——调用方无法也不需要区分这两种情况。
func Fetch(id string) *Tournament {
	if !database.IsRedisAvailable() {
		return nil
	}

	ctx, cancel := context.WithTimeout(database.Ctx, opTimeout)
	defer cancel()

	raw, err := database.RDB.Get(ctx, tournamentKey(id)).Result()
	if err != nil {
		// redis.Nil与网络错误在这里殊途同归
		return nil
	}

	var t Tournament
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		fmt.Printf("警告: 锦标赛 %s 的主存储快照无法解析: %v\n", id, err)
		return nil
	}
	return &t
}

// RecordVote 把一次对决的结果写回主存储：读出快照、应用变更、整体写回。
// 锦标赛或参与者找不到、存储不可用时静默跳过。
// 注意这是不带CAS的读改写，并发投票可能互相覆盖——已知且接受的限制，
// 本地镜像和最终一致的使用场景使它不构成问题。
func RecordVote(tournamentID, winnerID, loserID string, winnerNewRating, loserNewRating int) {
	t := Fetch(tournamentID)
	if t == nil {
		return
	}

	winner := t.FindItem(winnerID)
	loser := t.FindItem(loserID)
	if winner == nil || loser == nil {
		return
	}

	winner.Rating = winnerNewRating
	winner.Wins++
	loser.Rating = loserNewRating
	loser.Losses++
	t.TotalVotes++

	if err := persist(t); err != nil {
		fmt.Printf("警告: 锦标赛 %s 的投票结果写回主存储失败: %v\n", tournamentID, err)
	}
}

// persist 将完整快照序列化后写入主存储。
func persist(t *Tournament) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("无法序列化锦标赛快照: %w", err)
	}

	ctx, cancel := context.WithTimeout(database.Ctx, opTimeout)
	defer cancel()

	if err := database.RDB.Set(ctx, tournamentKey(t.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("无法写入主存储: %w", err)
	}
	return nil
}
