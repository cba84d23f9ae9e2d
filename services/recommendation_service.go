package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"serenity/config"
	"serenity/logger"
	"serenity/metrics"
	"serenity/models"
	"serenity/scraper"
)

// ErrEmptyMessage 消息为空
var ErrEmptyMessage = errors.New("message is empty")

// 表情识别结果对应的搜索词
var facialQueries = map[string]string{
	"happy":     "maintain positive mood mindfulness",
	"sad":       "mood boost uplifting meditation",
	"angry":     "anger management calm techniques",
	"fearful":   "anxiety relief calming exercises",
	"surprised": "stress relief relaxation",
	"disgusted": "emotional reset mindfulness",
	"neutral":   "general wellness relaxation",
}

const defaultFacialQuery = "stress relief meditation"

// Sources 三类内容来源
type Sources struct {
	Videos   ContentSource
	Music    ContentSource
	Articles ContentSource
}

// Limits 每类内容的返回条数
type Limits struct {
	Videos   int
	Music    int
	Articles int
}

// LimitsFromConfig 从配置读取返回条数
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		Videos:   cfg.Scraper.MaxVideos,
		Music:    cfg.Scraper.MaxMusic,
		Articles: cfg.Scraper.MaxArticles,
	}
}

// RecommendationService 推荐编排：关键词提取 → 缓存 → 内容来源 → 写回缓存
type RecommendationService struct {
	extractor *KeywordExtractor
	chatbot   *Chatbot
	cache     BundleCache
	sources   Sources
	limits    Limits
	metrics   *metrics.Metrics
}

// NewRecommendationService 创建推荐服务
func NewRecommendationService(extractor *KeywordExtractor, chatbot *Chatbot, cache BundleCache,
	sources Sources, limits Limits, m *metrics.Metrics) *RecommendationService {
	if limits.Videos <= 0 {
		limits.Videos = 3
	}
	if limits.Music <= 0 {
		limits.Music = 3
	}
	if limits.Articles <= 0 {
		limits.Articles = 2
	}
	return &RecommendationService{
		extractor: extractor,
		chatbot:   chatbot,
		cache:     cache,
		sources:   sources,
		limits:    limits,
		metrics:   m,
	}
}

// Handle 处理一条聊天消息，返回回复、推荐内容和识别出的分类
//
// emotion为空时使用session中设置的情绪，session可以为nil。
func (s *RecommendationService) Handle(ctx context.Context, message, emotion string, session *ChatSession) (*models.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if emotion == "" && session != nil {
		emotion = session.Emotion()
	}
	if session != nil {
		session.Record(models.RoleUser, message)
	}

	categories := s.extractor.Extract(message, emotion)
	label, intensity := s.extractor.AnalyzeSentiment(message)
	logger.Debug("Message analyzed", "categories", categories, "sentiment", label, "intensity", intensity)
	bundle := s.Recommend(ctx, categories)
	reply := s.chatbot.Response(message, emotion, categories)

	if session != nil {
		session.AddCategories(categories)
		session.Record(models.RoleBot, reply)
	}

	return &models.ChatReply{
		Message:         reply,
		Recommendations: bundle,
		Keywords:        categories,
		Sentiment:       models.Sentiment{Label: label, Intensity: intensity},
	}, nil
}

// SuggestedQueries 根据会话中出现过的分类给出可继续搜索的关键词
func (s *RecommendationService) SuggestedQueries(categories []string) []string {
	return s.extractor.AllQueries(categories)
}

// ClosingMessage 结束对话时的告别语
func (s *RecommendationService) ClosingMessage() string {
	return s.chatbot.ClosingMessage()
}

// Recommend 按分类获取推荐内容，优先使用缓存
func (s *RecommendationService) Recommend(ctx context.Context, categories []string) models.RecommendationBundle {
	key := s.extractor.CacheKey(categories)
	if bundle, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookup(true)
		logger.Info("Using cached recommendations", "key", key)
		return bundle
	}
	s.metrics.CacheLookup(false)

	logger.Info("Fetching recommendations", "categories", categories)
	videoQuery := s.extractor.BuildSearchQuery(categories)
	musicQuery := s.extractor.MusicQuery(categories)

	category := GeneralStress
	if len(categories) > 0 {
		category = categories[0]
	}

	bundle := s.fetch(ctx, videoQuery, musicQuery, videoQuery, category)
	if bundle.Empty() {
		logger.Warn("All sources returned nothing, using fallback bundle", "key", key)
		return s.FallbackBundle()
	}
	s.cache.Set(key, bundle)
	return bundle
}

// EmotionRecommendations 按表情识别结果获取推荐内容，不经过缓存
func (s *RecommendationService) EmotionRecommendations(ctx context.Context, emotion string) models.RecommendationBundle {
	query, ok := facialQueries[emotion]
	if !ok {
		query = defaultFacialQuery
	}
	return s.fetch(ctx, query, emotion+" calming music", query, "")
}

// Warm 预热单个分类的缓存，已有缓存时返回false
func (s *RecommendationService) Warm(ctx context.Context, category string) bool {
	categories := []string{category}
	if _, ok := s.cache.Get(s.extractor.CacheKey(categories)); ok {
		return false
	}
	s.Recommend(ctx, categories)
	return true
}

// WarmWithConcurrency 并发预热多个分类，返回实际刷新的分类数
func (s *RecommendationService) WarmWithConcurrency(ctx context.Context, categories []string, concurrency int) int {
	if concurrency <= 0 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	var mu sync.Mutex
	warmed := 0

loop:
	for _, category := range categories {
		if ctx.Err() != nil {
			logger.Warn("Cache warm-up cancelled", "error", ctx.Err())
			break
		}
		select {
		case <-ctx.Done():
			logger.Warn("Cache warm-up cancelled", "error", ctx.Err())
			break loop
		case semaphore <- struct{}{}:
		}
		wg.Add(1)

		go func(c string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if !s.Warm(ctx, c) {
				return
			}
			mu.Lock()
			warmed++
			mu.Unlock()
		}(category)
	}

	wg.Wait()
	logger.Info("Cache warm-up finished", "categories", len(categories), "warmed", warmed)
	return warmed
}

// Categories 可预热的分类
func (s *RecommendationService) Categories() []string {
	return s.extractor.Categories()
}

// FallbackBundle 备用推荐内容
func (s *RecommendationService) FallbackBundle() models.RecommendationBundle {
	return scraper.FallbackBundle()
}

// fetch 并发请求三类来源
func (s *RecommendationService) fetch(ctx context.Context, videoQuery, musicQuery, articleQuery, category string) models.RecommendationBundle {
	var bundle models.RecommendationBundle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bundle.Videos = withCategory(s.sources.Videos.Fetch(gctx, videoQuery, s.limits.Videos), category)
		return nil
	})
	g.Go(func() error {
		bundle.Music = withCategory(s.sources.Music.Fetch(gctx, musicQuery, s.limits.Music), category)
		return nil
	})
	g.Go(func() error {
		bundle.Articles = withCategory(s.sources.Articles.Fetch(gctx, articleQuery, s.limits.Articles), category)
		return nil
	})
	// 来源不返回错误
	_ = g.Wait()

	logger.Debug("Fetched recommendations",
		"videos", len(bundle.Videos),
		"music", len(bundle.Music),
		"articles", len(bundle.Articles))
	return bundle
}

// withCategory 为没有分类的条目补上分类
func withCategory(items []models.ContentItem, category string) []models.ContentItem {
	if category == "" {
		return items
	}
	for i := range items {
		if items[i].Category == "" {
			items[i].Category = category
		}
	}
	return items
}
