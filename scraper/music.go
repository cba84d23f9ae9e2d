package scraper

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"serenity/logger"
	"serenity/models"
)

const (
	sourceMusic = "music"
	musicSource = "YouTube Music"
)

// musicQueryTable 查询词包含的压力类型对应的音乐搜索词，按顺序匹配
var musicQueryTable = []struct {
	stressType string
	query      string
}{
	{"exams", "study music concentration focus"},
	{"work", "office relaxation ambient music"},
	{"sleep", "sleep music deep relaxation"},
	{"anxiety", "calming music anxiety relief"},
	{"focus", "focus music no lyrics ambient"},
	{"default", "relaxing music stress relief"},
}

var videoIDPattern = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)

// MusicSource 通过YouTube搜索放松音乐
type MusicSource struct {
	baseURL string
	f       *fetcher
}

// NewMusicSource 创建音乐内容源
func NewMusicSource(baseURL string, opts Options) *MusicSource {
	return &MusicSource{baseURL: baseURL, f: newFetcher(sourceMusic, opts)}
}

// Name 内容源名称
func (s *MusicSource) Name() string { return sourceMusic }

// Fetch 搜索音乐，失败或没有结果时返回精选音乐
func (s *MusicSource) Fetch(ctx context.Context, query string, max int) []models.ContentItem {
	ctx, cancel := s.f.withTimeout(ctx)
	defer cancel()

	searchQuery := BuildMusicQuery(query)
	logger.Info("Scraping music", "query", searchQuery)

	items, err := s.search(ctx, searchQuery, max)
	if err != nil || len(items) == 0 {
		logger.Warn("Music scrape failed, using fallback music", "query", query, "error", err)
		s.f.metrics.SourceFetch(sourceMusic, true)
		return FallbackMusic(query, max)
	}
	s.f.metrics.SourceFetch(sourceMusic, false)
	return items
}

func (s *MusicSource) search(ctx context.Context, query string, max int) ([]models.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+url.Values{"search_query": {query}}.Encode(), nil)
	if err != nil {
		return nil, err
	}
	body, err := s.f.do(req)
	if err != nil {
		return nil, err
	}
	return ParseMusicResults(string(body), max), nil
}

// BuildMusicQuery 生成适合音乐搜索的查询词
func BuildMusicQuery(query string) string {
	lower := strings.ToLower(query)
	for _, m := range musicQueryTable {
		if strings.Contains(lower, m.stressType) {
			return m.query
		}
	}
	if !strings.Contains(lower, "music") {
		return query + " relaxing music"
	}
	return query
}

// ParseMusicResults 从搜索结果页提取去重后的视频ID和标题
func ParseMusicResults(page string, max int) []models.ContentItem {
	if max <= 0 {
		max = 3
	}

	var ids []string
	seen := make(map[string]bool)
	for _, m := range videoIDPattern.FindAllStringSubmatch(page, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
			if len(ids) == max {
				break
			}
		}
	}

	items := make([]models.ContentItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, models.ContentItem{
			ID:        id,
			Title:     musicTitle(page, id),
			Artist:    "Various Artists",
			Thumbnail: thumbnailURL(id),
			URL:       watchURL(id),
			EmbedURL:  embedURL(id),
			Duration:  notAvailable,
			Source:    musicSource,
			Type:      models.ContentTypeMusic,
		})
	}
	return items
}

// musicTitle 查找视频ID之后的第一个标题
func musicTitle(page, id string) string {
	pattern := regexp.MustCompile(`"videoId":"` + regexp.QuoteMeta(id) + `".*?"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)+)"`)
	m := pattern.FindStringSubmatch(page)
	if m == nil {
		return "Relaxing Music"
	}
	if unquoted, err := strconv.Unquote(`"` + m[1] + `"`); err == nil {
		return unquoted
	}
	return m[1]
}
