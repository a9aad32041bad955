package contender

import (
	"fmt"
	"strings"

	"github.com/SlpAus/anything-tier-backend/internal/image"
)

// 静态名单沿用Unsplash的固定图源，作为语言模型不可用时的后备。

var officeSnackNames = [rosterSize]struct {
	name  string
	photo string
}{
	{"Chocolate Chip Cookies", "photo-1499636136210-6f4ee915583e"},
	{"Potato Chips", "photo-1566478989037-eec170784d0b"},
	{"Granola Bars", "photo-1606312619070-d48b4cbc5b52"},
	{"Mixed Nuts", "photo-1599599810769-bcde5a160d32"},
	{"Fresh Fruit", "photo-1619566636858-adf3ef46400b"},
	{"Pretzels", "photo-1599490659213-e2b9527bd087"},
	{"Popcorn", "photo-1578849278619-e73505e9610f"},
	{"Trail Mix", "photo-1520967824495-b529aeba26df"},
	{"Protein Bars", "photo-1607623814075-e51df1bdc82f"},
	{"Crackers & Cheese", "photo-1452195100486-9cc805987862"},
	{"Yogurt", "photo-1488477181946-6428a0291777"},
	{"Candy Bars", "photo-1582058091505-f87a2e55a40f"},
	{"Rice Cakes", "photo-1586201375761-83865001e31c"},
	{"Beef Jerky", "photo-1603894584373-5ac82b2ae398"},
	{"Veggie Sticks", "photo-1566385101042-1a0aa0c1268c"},
	{"Cookies & Cream", "photo-1558961363-fa8fdf82db35"},
}

var movieNames = [rosterSize]struct {
	name  string
	photo string
}{
	{"The Shawshank Redemption", "photo-1536440136628-849c177e76a1"},
	{"The Godfather", "photo-1478720568477-152d9b164e26"},
	{"The Dark Knight", "photo-1509347528160-9a9e33742cdb"},
	{"Pulp Fiction", "photo-1594908900066-3f47337549d8"},
	{"Forrest Gump", "photo-1485846234645-a62644f84728"},
	{"Inception", "photo-1440404653325-ab127d49abc1"},
	{"The Matrix", "photo-1574267432644-f610a4ab5f6c"},
	{"Interstellar", "photo-1446776653964-20c1d3a81b06"},
	{"Fight Club", "photo-1489599849927-2ee91cede3ba"},
	{"Goodfellas", "photo-1489599849927-2ee91cede3ba"},
	{"The Silence of the Lambs", "photo-1518676590629-3dcbd9c5a5c9"},
	{"Saving Private Ryan", "photo-1478720568477-152d9b164e26"},
	{"The Green Mile", "photo-1489599849927-2ee91cede3ba"},
	{"Gladiator", "photo-1478720568477-152d9b164e26"},
	{"The Departed", "photo-1489599849927-2ee91cede3ba"},
	{"The Prestige", "photo-1489599849927-2ee91cede3ba"},
}

func unsplashURL(photo string) string {
	return "https://images.unsplash.com/" + photo + "?w=400"
}

// defaultContenders 按主题关键词匹配一份静态名单，没有命中时退到通用名单。
func defaultContenders(topic string) []Seed {
	topicLower := strings.ToLower(topic)

	if strings.Contains(topicLower, "snack") || strings.Contains(topicLower, "office") {
		seeds := make([]Seed, 0, rosterSize)
		for i, entry := range officeSnackNames {
			seeds = append(seeds, Seed{
				ID:       fmt.Sprintf("%d", i+1),
				Name:     entry.name,
				ImageURL: unsplashURL(entry.photo),
				Source:   image.SourceUnsplash,
			})
		}
		return seeds
	}

	if strings.Contains(topicLower, "movie") || strings.Contains(topicLower, "film") {
		seeds := make([]Seed, 0, rosterSize)
		for i, entry := range movieNames {
			seeds = append(seeds, Seed{
				ID:       fmt.Sprintf("%d", i+1),
				Name:     entry.name,
				ImageURL: unsplashURL(entry.photo),
				Source:   image.SourceUnsplash,
			})
		}
		return seeds
	}

	// 通用兜底：主题+序号，图片留空交给图片解析链补全
	seeds := make([]Seed, 0, rosterSize)
	for i := 0; i < rosterSize; i++ {
		seeds = append(seeds, Seed{
			ID:   fmt.Sprintf("%d", i+1),
			Name: fmt.Sprintf("%s Option %d", topic, i+1),
		})
	}
	return seeds
}
