package tournament

import (
	"encoding/json"
	"fmt"

	"github.com/SlpAus/anything-tier-backend/internal/platform/database"
	"gorm.io/gorm/clause"
)

// --- 本地持久化镜像 ---
// 镜像是主存储的本地后备：主存储缺失或故障时它是唯一的持久层，
// 主存储可用时它仍然在每次写入后同步更新，供读取路径做状态合并。
// 镜像的所有失败都被吞掉，降级为"没有缓存值"/"写入无效果"。

// MirrorStorageKey 所有锦标赛快照序列化成一个映射，存在这个众所周知的键下
const MirrorStorageKey = "blind_ranking_tournaments"

// MirrorRecord 是镜像表的行结构：键 -> 序列化的快照映射
type MirrorRecord struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

// TableName 指定镜像表名
func (MirrorRecord) TableName() string {
	return "tournament_mirror"
}

// loadMirrorMap 读出整个镜像映射。任何失败（表不存在、JSON损坏）都返回空映射。
func loadMirrorMap() map[string]*Tournament {
	tournaments := make(map[string]*Tournament)
	if database.DB == nil {
		return tournaments
	}

	var record MirrorRecord
	if err := database.DB.First(&record, "key = ?", MirrorStorageKey).Error; err != nil {
		return tournaments
	}
	if err := json.Unmarshal(record.Value, &tournaments); err != nil {
		fmt.Printf("警告: 本地镜像内容损坏，按空镜像处理: %v\n", err)
		return make(map[string]*Tournament)
	}
	return tournaments
}

// saveMirrorMap 整体写回镜像映射，失败时只记录日志。
func saveMirrorMap(tournaments map[string]*Tournament) {
	if database.DB == nil {
		return
	}

	raw, err := json.Marshal(tournaments)
	if err != nil {
		fmt.Printf("警告: 无法序列化本地镜像: %v\n", err)
		return
	}

	record := MirrorRecord{Key: MirrorStorageKey, Value: raw}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&record).Error; err != nil {
		fmt.Printf("警告: 本地镜像写入失败: %v\n", err)
	}
}

// SaveToMirror 把一个锦标赛快照写入（或覆盖）本地镜像。
func SaveToMirror(t *Tournament) {
	if t == nil {
		return
	}
	tournaments := loadMirrorMap()
	tournaments[t.ID] = t
	saveMirrorMap(tournaments)
}

// GetFromMirror 按ID从本地镜像读取快照，没有或读取失败时返回nil。
func GetFromMirror(id string) *Tournament {
	return loadMirrorMap()[id]
}

// Reconcile 在主存储副本和本地镜像副本之间选出"最完整"的一份。
// 本地TotalVotes严格大于远端时说明本地结算过远端没收到的投票，选本地；
// 否则有远端选远端，没有远端才用本地。
// 这是按投票计数的启发式规则而不是真正的向量钟合并：
// 平票时远端胜出，可能丢掉仅存在于本地的同数量投票——已知限制。
func Reconcile(remote, local *Tournament) *Tournament {
	if remote == nil {
		return local
	}
	if local != nil && local.TotalVotes > remote.TotalVotes {
		return local
	}
	return remote
}
