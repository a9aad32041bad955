package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 两个1500分的候选者对战，胜者应得1516分，败者1484分
func TestCalculateEloEqualRatings(t *testing.T) {
	winner, loser := CalculateElo(1500, 1500)
	assert.Equal(t, 1516, winner)
	assert.Equal(t, 1484, loser)
}

// 同分对战时，胜者的涨幅和败者的跌幅应该对称
func TestCalculateEloSymmetryAtEqualRatings(t *testing.T) {
	for _, rating := range []int{800, 1200, 1500, 2000, 2400} {
		winner, loser := CalculateElo(rating, rating)
		assert.Equal(t, rating+16, winner, "rating=%d", rating)
		assert.Equal(t, rating-16, loser, "rating=%d", rating)
	}
}

// 低分战胜高分时变动更大，高分战胜低分时变动更小
func TestCalculateEloUpsetMovesMore(t *testing.T) {
	// 冷门：1200击败1800
	upsetWinner, upsetLoser := CalculateElo(1200, 1800)
	// 正常：1800击败1200
	favWinner, favLoser := CalculateElo(1800, 1200)

	upsetDelta := upsetWinner - 1200
	favDelta := favWinner - 1800
	assert.Greater(t, upsetDelta, favDelta)
	assert.Less(t, upsetLoser, 1800)
	assert.Less(t, favLoser, 1200)
}

// 对任意组合，胜者分数不降，败者分数不升
func TestCalculateEloMonotonicity(t *testing.T) {
	ratings := []int{100, 800, 1500, 1900, 2600, 3200}
	for _, w := range ratings {
		for _, l := range ratings {
			newW, newL := CalculateElo(w, l)
			assert.GreaterOrEqual(t, newW, w, "winner %d vs %d", w, l)
			assert.LessOrEqual(t, newL, l, "winner %d vs %d", w, l)
		}
	}
}

// 分数没有人为上下限：极端差距下的结果仍然有定义
func TestCalculateEloExtremeGap(t *testing.T) {
	newW, newL := CalculateElo(3000, 100)
	// 期望胜率接近1，分数几乎不变
	assert.Equal(t, 3000, newW)
	assert.Equal(t, 100, newL)

	newW, newL = CalculateElo(100, 3000)
	assert.Equal(t, 132, newW)
	assert.Equal(t, 2968, newL)
}
