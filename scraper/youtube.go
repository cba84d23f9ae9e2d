package scraper

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"

	"serenity/logger"
	"serenity/models"
)

const (
	sourceVideo  = "video"
	notAvailable = "N/A"
)

var (
	ytInitialDataPattern = regexp.MustCompile(`(?s)var ytInitialData = (\{.*?\});`)
	watchIDPattern       = regexp.MustCompile(`v=([a-zA-Z0-9_-]{11})`)
)

func thumbnailURL(id string) string { return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg" }
func watchURL(id string) string { return "https://www.youtube.com/watch?v=" + id }
func embedURL(id string) string { return "https://www.youtube.com/embed/" + id }

// VideoSource YouTube视频搜索
type VideoSource struct {
	baseURL string
	f       *fetcher
}

// NewVideoSource 创建视频内容源，baseURL为YouTube搜索结果页地址
func NewVideoSource(baseURL string, opts Options) *VideoSource {
	return &VideoSource{baseURL: baseURL, f: newFetcher(sourceVideo, opts)}
}

// Name 内容源名称
func (s *VideoSource) Name() string { return sourceVideo }

// Fetch 搜索视频，失败或没有结果时返回精选视频
func (s *VideoSource) Fetch(ctx context.Context, query string, max int) []models.ContentItem {
	ctx, cancel := s.f.withTimeout(ctx)
	defer cancel()

	searchQuery := query + " stress relief"
	logger.Info("Scraping YouTube", "query", searchQuery)

	items, err := s.search(ctx, searchQuery, max)
	if err != nil || len(items) == 0 {
		logger.Warn("YouTube scrape failed, using fallback videos", "query", query, "error", err)
		s.f.metrics.SourceFetch(sourceVideo, true)
		return FallbackVideos(query, max)
	}
	s.f.metrics.SourceFetch(sourceVideo, false)
	return items
}

func (s *VideoSource) search(ctx context.Context, query string, max int) ([]models.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+url.Values{"search_query": {query}}.Encode(), nil)
	if err != nil {
		return nil, err
	}
	body, err := s.f.do(req)
	if err != nil {
		return nil, err
	}
	return ParseYouTubeResults(body, max), nil
}

// ParseYouTubeResults 从搜索结果页解析视频，优先使用ytInitialData，其次扫描watch链接
func ParseYouTubeResults(page []byte, max int) []models.ContentItem {
	if max <= 0 {
		max = 3
	}
	if videos := parseInitialData(page, max); len(videos) > 0 {
		return videos
	}
	return parseWatchLinks(page, max)
}

func parseInitialData(page []byte, max int) []models.ContentItem {
	m := ytInitialDataPattern.FindSubmatch(page)
	if m == nil || !gjson.ValidBytes(m[1]) {
		return nil
	}

	var videos []models.ContentItem
	sections := gjson.GetBytes(m[1], "contents.twoColumnSearchResultsRenderer.primaryContents.sectionListRenderer.contents")
	sections.ForEach(func(_, section gjson.Result) bool {
		section.Get("itemSectionRenderer.contents").ForEach(func(_, item gjson.Result) bool {
			renderer := item.Get("videoRenderer")
			id := renderer.Get("videoId").String()
			if id == "" {
				return true
			}

			title := renderer.Get("title.runs.0.text").String()
			if title == "" {
				title = "Untitled"
			}
			thumbnail := thumbnailURL(id)
			if thumbs := renderer.Get("thumbnail.thumbnails").Array(); len(thumbs) > 0 {
				if u := thumbs[len(thumbs)-1].Get("url").String(); u != "" {
					thumbnail = u
				}
			}

			videos = append(videos, models.ContentItem{
				ID:        id,
				Title:     title,
				Thumbnail: thumbnail,
				URL:       watchURL(id),
				EmbedURL:  embedURL(id),
				Duration:  orNA(renderer.Get("lengthText.simpleText").String()),
				Views:     orNA(renderer.Get("viewCountText.simpleText").String()),
				Source:    "YouTube",
				Type:      models.ContentTypeVideo,
			})
			return len(videos) < max
		})
		return len(videos) < max
	})
	return videos
}

// parseWatchLinks 扫描页面中的/watch?v=链接
func parseWatchLinks(page []byte, max int) []models.ContentItem {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil
	}

	var videos []models.ContentItem
	seen := make(map[string]bool)
	scanned := 0
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if strings.Contains(href, "/watch?v=") {
				scanned++
				if m := watchIDPattern.FindStringSubmatch(href); m != nil && !seen[m[1]] {
					seen[m[1]] = true
					title := attr(n, "title")
					if title == "" {
						title = "Stress Relief Video"
					}
					videos = append(videos, models.ContentItem{
						ID:        m[1],
						Title:     title,
						Thumbnail: thumbnailURL(m[1]),
						URL:       watchURL(m[1]),
						EmbedURL:  embedURL(m[1]),
						Duration:  notAvailable,
						Views:     notAvailable,
						Source:    "YouTube",
						Type:      models.ContentTypeVideo,
					})
				}
				if len(videos) >= max || scanned >= max*3 {
					return false
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)
	return videos
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
