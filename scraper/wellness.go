package scraper

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"serenity/logger"
	"serenity/models"
	"serenity/utils"
)

const (
	sourceArticle = "article"
	snippetLimit  = 200
	siteFilter    = " tips articles site:healthline.com OR site:verywellmind.com OR site:mindful.org"
)

// ArticleSource 通过DuckDuckGo HTML搜索健康类文章
type ArticleSource struct {
	searchURL string
	f         *fetcher
}

// NewArticleSource 创建文章内容源
func NewArticleSource(searchURL string, opts Options) *ArticleSource {
	return &ArticleSource{searchURL: searchURL, f: newFetcher(sourceArticle, opts)}
}

// Name 内容源名称
func (s *ArticleSource) Name() string { return sourceArticle }

// Fetch 搜索文章，失败或没有结果时返回精选文章
func (s *ArticleSource) Fetch(ctx context.Context, query string, max int) []models.ContentItem {
	ctx, cancel := s.f.withTimeout(ctx)
	defer cancel()

	logger.Info("Scraping articles", "query", query)

	items, err := s.search(ctx, query+siteFilter, max)
	if err != nil || len(items) == 0 {
		logger.Warn("Article scrape failed, using fallback articles", "query", query, "error", err)
		s.f.metrics.SourceFetch(sourceArticle, true)
		return FallbackArticles(query, max)
	}
	s.f.metrics.SourceFetch(sourceArticle, false)
	return items
}

func (s *ArticleSource) search(ctx context.Context, query string, max int) ([]models.ContentItem, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.searchURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := s.f.do(req)
	if err != nil {
		return nil, err
	}
	return ParseArticleResults(body, max)
}

// ParseArticleResults 解析DuckDuckGo结果页，只看前max个结果块
func ParseArticleResults(page []byte, max int) ([]models.ContentItem, error) {
	if max <= 0 {
		max = 2
	}
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	results := findAll(doc, "div", "result")
	if len(results) > max {
		results = results[:max]
	}

	var articles []models.ContentItem
	for _, r := range results {
		titleNode := findFirst(r, "a", "result__a")
		if titleNode == nil {
			continue
		}
		title := utils.CollapseSpaces(textContent(titleNode))
		link := resolveRedirect(attr(titleNode, "href"))
		if title == "" || link == "" {
			continue
		}

		snippet := ""
		if n := findFirst(r, "a", "result__snippet"); n != nil {
			snippet = utils.Truncate(utils.CollapseSpaces(textContent(n)), snippetLimit)
		}
		source := "Wellness Article"
		if n := findFirst(r, "span", "result__url"); n != nil {
			if text := utils.CollapseSpaces(textContent(n)); text != "" {
				source = text
			}
		}

		articles = append(articles, models.ContentItem{
			ID:      utils.ContentID(link),
			Title:   title,
			URL:     link,
			Snippet: snippet,
			Source:  source,
			Type:    models.ContentTypeArticle,
		})
	}
	return articles, nil
}

// resolveRedirect 取出DuckDuckGo跳转链接中的真实地址
func resolveRedirect(href string) string {
	if !strings.Contains(href, "duckduckgo.com/l/") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll 按文档顺序查找带指定class的元素，不进入已匹配元素内部
func findAll(root *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && hasClass(n, class) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func findFirst(root *html.Node, tag, class string) *html.Node {
	if all := findAll(root, tag, class); len(all) > 0 {
		return all[0]
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
