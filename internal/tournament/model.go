package tournament

import "time"

// ImageSource 标记候选者图片的来源服务，用于署名展示
type ImageSource string

const (
	ImageSourceWikipedia    ImageSource = "wikipedia"
	ImageSourceCommons      ImageSource = "commons"
	ImageSourcePollinations ImageSource = "pollinations"
	ImageSourceUnsplash     ImageSource = "unsplash"
	ImageSourceGoogle       ImageSource = "google"
	ImageSourcePlaceholder  ImageSource = "placeholder"
	ImageSourceUnknown      ImageSource = "unknown"
)

// InitialRating 是每个新建候选者的起始ELO分数
const InitialRating = 1500

// Item 是锦标赛中被排名的单个候选者
// Rating只由投票结算逻辑修改；Wins/Losses按参赛结果单调递增
type Item struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	ImageURL       string      `json:"imageUrl"`
	ImageSource    ImageSource `json:"imageSource"`
	ImageSourceURL string      `json:"imageSourceUrl,omitempty"`
	Rating         int         `json:"rating"`
	Wins           int         `json:"wins"`
	Losses         int         `json:"losses"`
}

// Tournament 是一组候选者及其当前评分状态的完整快照
// TotalVotes等于已结算的对决次数，与参与者字段在同一次更新中递增
type Tournament struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
	TotalVotes int       `json:"totalVotes"`
}

// Seed 是创建锦标赛时的初始候选者（尚未注入评分字段）
type Seed struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	ImageURL       string      `json:"imageUrl"`
	ImageSource    ImageSource `json:"imageSource,omitempty"`
	ImageSourceURL string      `json:"imageSourceUrl,omitempty"`
}

// FindItem 按ID在快照中查找候选者，返回可直接修改的指针。
func (t *Tournament) FindItem(id string) *Item {
	for i := range t.Items {
		if t.Items[i].ID == id {
			return &t.Items[i]
		}
	}
	return nil
}
