package vote

import "math"

// eloKFactor 是ELO算法中的K值，它决定了每次对战后分数变化的大小。
// 所有对决使用同一个固定值，不做新手期/偏差调整。
const eloKFactor = 32

// expectedScore 计算a对b的期望胜率。
func expectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400.0))
}

// CalculateElo 计算对战后的新ELO分数。
// 评分是整数，在边界处做四舍五入（0.5向远离零方向取整）；
// 对任意有限输入都有定义，分数不设上下限。
func CalculateElo(winnerRating, loserRating int) (newWinnerRating, newLoserRating int) {
	w := float64(winnerRating)
	l := float64(loserRating)

	expectedWinner := expectedScore(w, l)
	expectedLoser := expectedScore(l, w)

	// 胜者实际得分为1，败者为0
	newWinnerRating = int(math.Round(w + eloKFactor*(1.0-expectedWinner)))
	newLoserRating = int(math.Round(l + eloKFactor*(0.0-expectedLoser)))
	return
}
