package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serenity/cache"
	"serenity/metrics"
	"serenity/models"
)

// fakeSource 记录查询词并返回固定条目
type fakeSource struct {
	name string

	mu      sync.Mutex
	queries []string
	empty   bool
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, query string, max int) []models.ContentItem {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.empty {
		return nil
	}
	items := make([]models.ContentItem, 0, max)
	for i := 0; i < max; i++ {
		items = append(items, models.ContentItem{
			ID:    fmt.Sprintf("%s-%d", f.name, i),
			Title: query,
			Type:  f.name,
		})
	}
	return items
}

func (f *fakeSource) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type recommendationFixture struct {
	svc      *RecommendationService
	cache    *cache.RecommendationCache
	videos   *fakeSource
	music    *fakeSource
	articles *fakeSource
	metrics  *metrics.Metrics
}

func newRecommendationFixture(t *testing.T) *recommendationFixture {
	t.Helper()
	f := &recommendationFixture{
		cache:    cache.New(10, time.Hour),
		videos:   &fakeSource{name: models.ContentTypeVideo},
		music:    &fakeSource{name: models.ContentTypeMusic},
		articles: &fakeSource{name: models.ContentTypeArticle},
		metrics:  metrics.New(prometheus.NewRegistry()),
	}
	f.svc = NewRecommendationService(
		NewKeywordExtractor(),
		NewChatbot(rand.NewPCG(1, 2)),
		f.cache,
		Sources{Videos: f.videos, Music: f.music, Articles: f.articles},
		Limits{Videos: 3, Music: 2, Articles: 1},
		f.metrics,
	)
	return f
}

func TestHandleRejectsBlankMessage(t *testing.T) {
	f := newRecommendationFixture(t)

	reply, err := f.svc.Handle(context.Background(), "   \n", "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Nil(t, reply)
	assert.Empty(t, f.videos.calls())
}

func TestHandleFetchesOnMissAndCaches(t *testing.T) {
	f := newRecommendationFixture(t)
	session := NewChatSession("s1", 10, 10)

	reply, err := f.svc.Handle(context.Background(), "I have finals next week", "", session)
	require.NoError(t, err)

	assert.Equal(t, []string{"exams"}, reply.Keywords)
	assert.Len(t, reply.Recommendations.Videos, 3)
	assert.Len(t, reply.Recommendations.Music, 2)
	assert.Len(t, reply.Recommendations.Articles, 1)
	assert.Equal(t, "exams", reply.Recommendations.Videos[0].Category)
	assert.True(t, strings.HasSuffix(reply.Message, resourcesIntro))

	assert.Equal(t, []string{"exam stress relief meditation"}, f.videos.calls())
	assert.Equal(t, []string{"study focus music concentration no lyrics"}, f.music.calls())
	assert.Equal(t, []string{"exam stress relief meditation"}, f.articles.calls())

	cached, ok := f.cache.Get("exams")
	require.True(t, ok)
	assert.Equal(t, reply.Recommendations, cached)

	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, "I have finals next week", history[0].Content)
	assert.Equal(t, models.RoleBot, history[1].Role)
	assert.Equal(t, reply.Message, history[1].Content)
	assert.Equal(t, []string{"exams"}, session.Categories())

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("miss")))
}

func TestHandleServesSecondRequestFromCache(t *testing.T) {
	f := newRecommendationFixture(t)

	first, err := f.svc.Handle(context.Background(), "exam tomorrow", "", nil)
	require.NoError(t, err)
	second, err := f.svc.Handle(context.Background(), "so much studying for this exam", "", nil)
	require.NoError(t, err)

	assert.Equal(t, first.Recommendations, second.Recommendations)
	assert.Len(t, f.videos.calls(), 1)
	assert.Len(t, f.music.calls(), 1)
	assert.Len(t, f.articles.calls(), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("hit")))
}

func TestHandleUsesSessionEmotion(t *testing.T) {
	f := newRecommendationFixture(t)
	session := NewChatSession("s2", 10, 10)
	session.SetEmotion("tired")

	reply, err := f.svc.Handle(context.Background(), "nothing specific", "", session)
	require.NoError(t, err)
	assert.Equal(t, []string{"sleep"}, reply.Keywords)
	assert.Equal(t, []string{"deep sleep music relaxing"}, f.music.calls())
}

func TestRecommendFallsBackWhenSourcesReturnNothing(t *testing.T) {
	f := newRecommendationFixture(t)
	f.videos.empty = true
	f.music.empty = true
	f.articles.empty = true

	bundle := f.svc.Recommend(context.Background(), []string{"anger"})
	assert.Equal(t, f.svc.FallbackBundle(), bundle)

	_, ok := f.cache.Get("anger")
	assert.False(t, ok)
}

func TestEmotionRecommendations(t *testing.T) {
	f := newRecommendationFixture(t)

	bundle := f.svc.EmotionRecommendations(context.Background(), "sad")
	assert.Len(t, bundle.Videos, 3)
	assert.Equal(t, []string{"mood boost uplifting meditation"}, f.videos.calls())
	assert.Equal(t, []string{"sad calming music"}, f.music.calls())
	assert.Equal(t, []string{"mood boost uplifting meditation"}, f.articles.calls())

	f.svc.EmotionRecommendations(context.Background(), "bewildered")
	assert.Equal(t, "stress relief meditation", f.videos.calls()[1])

	assert.Empty(t, f.cache.Keys())
}

func TestWarm(t *testing.T) {
	f := newRecommendationFixture(t)

	assert.True(t, f.svc.Warm(context.Background(), "sleep"))
	assert.False(t, f.svc.Warm(context.Background(), "sleep"))
	assert.Len(t, f.videos.calls(), 1)
	assert.Equal(t, "sleep meditation deep relaxation", f.videos.calls()[0])
}

func TestWarmWithConcurrency(t *testing.T) {
	f := newRecommendationFixture(t)

	warmed := f.svc.WarmWithConcurrency(context.Background(), f.svc.Categories(), 3)
	assert.Equal(t, 9, warmed)
	assert.Len(t, f.cache.Keys(), 9)

	assert.Equal(t, 0, f.svc.WarmWithConcurrency(context.Background(), f.svc.Categories(), 3))
}

func TestWarmWithConcurrencyStopsWhenCancelled(t *testing.T) {
	f := newRecommendationFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 0, f.svc.WarmWithConcurrency(ctx, f.svc.Categories(), 3))
	assert.Empty(t, f.cache.Keys())
	f.videos.mu.Lock()
	defer f.videos.mu.Unlock()
	assert.Empty(t, f.videos.queries)
}

func TestFallbackBundleShape(t *testing.T) {
	f := newRecommendationFixture(t)

	bundle := f.svc.FallbackBundle()
	assert.Len(t, bundle.Videos, 3)
	assert.Len(t, bundle.Music, 3)
	assert.Len(t, bundle.Articles, 1)
}
