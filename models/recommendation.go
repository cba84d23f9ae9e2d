package models

// 内容类型
const (
	ContentTypeVideo   = "video"
	ContentTypeMusic   = "music"
	ContentTypeArticle = "article"
)

// ContentItem 推荐内容条目，视频/音乐/文章共用
type ContentItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist,omitempty"`    // 仅音乐
	Thumbnail string `json:"thumbnail,omitempty"` // 缩略图地址
	URL       string `json:"url"`
	EmbedURL  string `json:"embed_url,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Views     string `json:"views,omitempty"`
	Snippet   string `json:"snippet,omitempty"` // 仅文章，摘要
	Source    string `json:"source"`            // YouTube / YouTube Music / 站点域名
	Type      string `json:"type"`              // video / music / article
	Category  string `json:"category,omitempty"`
}

// RecommendationBundle 一次推荐的完整结果，按缓存键存储
type RecommendationBundle struct {
	Videos   []ContentItem `json:"videos"`
	Music    []ContentItem `json:"music"`
	Articles []ContentItem `json:"articles"`
}

// Empty 判断推荐结果是否为空
func (b RecommendationBundle) Empty() bool {
	return len(b.Videos) == 0 && len(b.Music) == 0 && len(b.Articles) == 0
}

// CacheStats 缓存统计信息
type CacheStats struct {
	Size    int `json:"size"`
	MaxSize int `json:"maxsize"`
	TTL     int `json:"ttl"` // 秒
}
