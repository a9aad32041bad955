package tournament

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/SlpAus/anything-tier-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestMirror 为单个测试准备一个独立的临时镜像数据库。
func setupTestMirror(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "mirror.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	require.NoError(t, InitializeMirror())
}

func mirrorTournament(id string, totalVotes int) *Tournament {
	return &Tournament{
		ID:        id,
		Topic:     "mirror test",
		CreatedAt: time.Now(),
		Items: []Item{
			{ID: "a", Name: "Alpha", Rating: InitialRating},
			{ID: "b", Name: "Beta", Rating: InitialRating},
		},
		TotalVotes: totalVotes,
	}
}

// 写入镜像后能按ID读回完整快照
func TestMirrorRoundTrip(t *testing.T) {
	setupTestMirror(t)

	original := mirrorTournament("t-1", 3)
	SaveToMirror(original)

	got := GetFromMirror("t-1")
	require.NotNil(t, got)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.Topic, got.Topic)
	assert.Equal(t, 3, got.TotalVotes)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Alpha", got.Items[0].Name)
}

// 同一个锦标赛重复写入是覆盖，不同锦标赛互不影响
func TestMirrorOverwriteAndIsolation(t *testing.T) {
	setupTestMirror(t)

	SaveToMirror(mirrorTournament("t-1", 1))
	SaveToMirror(mirrorTournament("t-2", 5))
	SaveToMirror(mirrorTournament("t-1", 2))

	assert.Equal(t, 2, GetFromMirror("t-1").TotalVotes)
	assert.Equal(t, 5, GetFromMirror("t-2").TotalVotes)
}

// 不存在的ID和尚未建表的镜像都返回nil
func TestMirrorMissing(t *testing.T) {
	setupTestMirror(t)
	assert.Nil(t, GetFromMirror("nope"))
}

// 镜像内容损坏时按空镜像处理，不影响后续写入
func TestMirrorCorruptBlob(t *testing.T) {
	setupTestMirror(t)

	require.NoError(t, database.DB.Create(&MirrorRecord{
		Key:   MirrorStorageKey,
		Value: []byte("{not json"),
	}).Error)

	assert.Nil(t, GetFromMirror("t-1"))

	// 损坏的内容被整体覆盖
	SaveToMirror(mirrorTournament("t-1", 1))
	require.NotNil(t, GetFromMirror("t-1"))
}

// 数据库未初始化时所有镜像操作降级为无效果
func TestMirrorWithoutDatabase(t *testing.T) {
	prev := database.DB
	database.DB = nil
	t.Cleanup(func() { database.DB = prev })

	assert.NotPanics(t, func() {
		SaveToMirror(mirrorTournament("t-1", 1))
	})
	assert.Nil(t, GetFromMirror("t-1"))
}

// Reconcile按总票数挑选更完整的一份快照
func TestReconcile(t *testing.T) {
	tests := []struct {
		name   string
		remote *Tournament
		local  *Tournament
		want   string // "remote" / "local" / "nil"
	}{
		{"两边都没有", nil, nil, "nil"},
		{"只有本地", nil, mirrorTournament("t", 2), "local"},
		{"只有远端", mirrorTournament("t", 2), nil, "remote"},
		{"本地票数更多", mirrorTournament("t", 3), mirrorTournament("t", 5), "local"},
		{"远端票数更多", mirrorTournament("t", 3), mirrorTournament("t", 2), "remote"},
		{"平票时远端胜出", mirrorTournament("t", 3), mirrorTournament("t", 3), "remote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.remote, tt.local)
			switch tt.want {
			case "nil":
				assert.Nil(t, got)
			case "local":
				assert.Same(t, tt.local, got)
			case "remote":
				assert.Same(t, tt.remote, got)
			}
		})
	}
}
