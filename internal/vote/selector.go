package vote

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/SlpAus/anything-tier-backend/internal/tournament"
)

// ErrNoPairPossible 名单中可用候选者不足两个，无法组成对决。
// 这是可上报的非致命状态：投票停摆，锦标赛本身不受影响。
var ErrNoPairPossible = errors.New("候选者数量不足，无法组成对决")

// 默认随机源。math/rand的Rand不是并发安全的，用锁保护；
// 测试可以通过SelectPairWithRand注入种子固定的随机源。
var (
	defaultRandMu sync.Mutex
	defaultRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// SelectPair 从名单中随机挑选两个不同的候选者作为下一场对决。
// exclude中的ID（通常是上一场的两位）在剩余数量足够时会被避开，
// 不够时回退到整个名单采样——排除只是降低立刻重复的概率，不是硬约束。
func SelectPair(items []tournament.Item, exclude map[string]bool) (tournament.Item, tournament.Item, error) {
	defaultRandMu.Lock()
	defer defaultRandMu.Unlock()
	return SelectPairWithRand(items, exclude, defaultRand)
}

// SelectPairWithRand 与SelectPair相同，但使用调用方提供的随机源。
func SelectPairWithRand(items []tournament.Item, exclude map[string]bool, rng *rand.Rand) (tournament.Item, tournament.Item, error) {
	if len(items) < 2 {
		return tournament.Item{}, tournament.Item{}, ErrNoPairPossible
	}

	// 1. 建立可抽样下标列表，优先排除指定候选者
	selectable := make([]int, 0, len(items))
	for i := range items {
		if !exclude[items[i].ID] {
			selectable = append(selectable, i)
		}
	}
	// 排除后不足两个时，回退到整个名单
	if len(selectable) < 2 {
		selectable = selectable[:0]
		for i := range items {
			selectable = append(selectable, i)
		}
	}

	// 2. 简单随机抽样：打乱列表并取前两个
	rng.Shuffle(len(selectable), func(i, j int) {
		selectable[i], selectable[j] = selectable[j], selectable[i]
	})

	return items[selectable[0]], items[selectable[1]], nil
}
