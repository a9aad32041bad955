package vote

import (
	"errors"

	"github.com/SlpAus/anything-tier-backend/internal/tournament"
)

// ErrTournamentNotFound 主存储和本地镜像中都找不到该锦标赛
var ErrTournamentNotFound = errors.New("找不到该锦标赛")

// ErrItemNotInRoster 胜者或败者的ID不在该锦标赛的名单中
var ErrItemNotInRoster = errors.New("候选者不在该锦标赛的名单中")

// ProcessVote 结算一次对决：
// 读取合并后的最新状态、计算新评分，然后双写——
// 主存储尽力而为，本地镜像是权威后备。两个写入端互不依赖，
// 不做分布式事务，接受最终一致（对方缺席时各自照常工作）。
func ProcessVote(tournamentID, winnerID, loserID string) (*VoteResult, error) {
	// 1. 读取当前状态（主存储与本地镜像的合并结果）
	t := tournament.GetTournament(tournamentID)
	if t == nil {
		return nil, ErrTournamentNotFound
	}

	winner := t.FindItem(winnerID)
	loser := t.FindItem(loserID)
	if winner == nil || loser == nil || winnerID == loserID {
		return nil, ErrItemNotInRoster
	}

	// 2. 计算新评分
	winnerNew, loserNew := CalculateElo(winner.Rating, loser.Rating)

	result := &VoteResult{
		WinnerID:       winnerID,
		LoserID:        loserID,
		WinnerNewScore: winnerNew,
		LoserNewScore:  loserNew,
	}

	// 3. 尽力写回主存储（内部自己做读改写，失败静默降级）
	tournament.RecordVote(tournamentID, winnerID, loserID, winnerNew, loserNew)

	// 4. 把同一变更应用到本地副本并写入镜像
	// 评分/胜负/总票数必须在同一次更新中一起变化
	winner.Rating = winnerNew
	winner.Wins++
	loser.Rating = loserNew
	loser.Losses++
	t.TotalVotes++
	tournament.SaveToMirror(t)

	return result, nil
}
