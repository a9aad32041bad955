package vote

// VoteResult 是一次对决结算产生的临时值。
// 它不会作为独立记录持久化，而是作为增量应用到锦标赛的候选者上。
type VoteResult struct {
	WinnerID       string `json:"winnerId"`
	LoserID        string `json:"loserId"`
	WinnerNewScore int    `json:"winnerNewScore"`
	LoserNewScore  int    `json:"loserNewScore"`
}
