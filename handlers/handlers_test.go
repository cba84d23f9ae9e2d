package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serenity/cache"
	"serenity/config"
	"serenity/metrics"
	"serenity/models"
	"serenity/services"
)

type stubSource struct {
	name  string
	items []models.ContentItem
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, query string, max int) []models.ContentItem {
	items := make([]models.ContentItem, 0, len(s.items))
	for _, it := range s.items {
		it.Title = it.Title + " " + query
		items = append(items, it)
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	return items
}

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, []byte) (models.EmotionVector, error) {
	return models.EmotionVector{"happy": 10, "sad": 20, "angry": 30, "fear": 20, "surprise": 5, "disgust": 5, "neutral": 10}, nil
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T, classifier services.EmotionClassifier) *Handler {
	t.Helper()
	cfg := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	sources := services.Sources{
		Videos:   &stubSource{name: "videos", items: []models.ContentItem{{ID: "v1", Title: "video", Type: models.ContentTypeVideo}}},
		Music:    &stubSource{name: "music", items: []models.ContentItem{{ID: "m1", Title: "music", Type: models.ContentTypeMusic}}},
		Articles: &stubSource{name: "articles", items: []models.ContentItem{{ID: "a1", Title: "article", Type: models.ContentTypeArticle}}},
	}
	m := metrics.New(prometheus.NewRegistry())
	rc := cache.New(cfg.Cache.MaxSize, time.Hour)
	recommender := services.NewRecommendationService(services.NewKeywordExtractor(), services.NewChatbot(nil),
		rc, sources, services.LimitsFromConfig(cfg), m)

	return NewHandler(Deps{
		Config:      cfg,
		Recommender: recommender,
		Classifier:  classifier,
		Wellness:    services.NewWellnessService(),
		Cache:       rc,
		Sources:     sources,
		Metrics:     m,
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func sessionCookieOf(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestHealthHandler(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))
	_, resp := doRequest(t, router, http.MethodGet, "/api/health", "")

	assert.Equal(t, models.CodeSuccess, resp.Code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, false, data["storage"])
}

func TestChatHandler(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))

	rec, resp := doRequest(t, router, http.MethodPost, "/api/chat",
		`{"message":"I have an exam tomorrow and I'm so anxious","emotion":"anxious"}`)
	require.Equal(t, models.CodeSuccess, resp.Code, resp.Message)
	assert.NotEmpty(t, rec.Header().Get(sessionHeader))

	var reply models.ChatReply
	require.NoError(t, json.Unmarshal(resp.Data, &reply))
	assert.NotEmpty(t, reply.Message)
	assert.Contains(t, reply.Keywords, "exams")
	assert.Contains(t, reply.Keywords, "anxiety")
	assert.Equal(t, "negative", reply.Sentiment.Label)
	require.Len(t, reply.Recommendations.Videos, 1)
	assert.Equal(t, "video anxiety relief breathing exercises", reply.Recommendations.Videos[0].Title)

	// 同一会话的对话记录
	cookie := sessionCookieOf(t, rec)
	_, resp = doRequest(t, router, http.MethodGet, "/api/chat/history", "", cookie)
	var history struct {
		Emotion          string            `json:"emotion"`
		Messages         []models.ChatTurn `json:"messages"`
		Categories       []string          `json:"categories"`
		SuggestedQueries []string          `json:"suggested_queries"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Equal(t, "anxious", history.Emotion)
	assert.Len(t, history.Messages, 2)
	assert.Contains(t, history.Categories, "exams")
	require.Len(t, history.SuggestedQueries, 4)
	assert.Equal(t, "anxiety relief breathing exercises", history.SuggestedQueries[0])
	assert.Equal(t, "exam stress relief meditation", history.SuggestedQueries[2])

	_, resp = doRequest(t, router, http.MethodDelete, "/api/chat/history", "", cookie)
	require.Equal(t, models.CodeSuccess, resp.Code)
	var closing map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &closing))
	assert.NotEmpty(t, closing["message"])

	_, resp = doRequest(t, router, http.MethodGet, "/api/chat/history", "", cookie)
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Empty(t, history.Messages)
}

func TestChatHandlerValidation(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))

	_, resp := doRequest(t, router, http.MethodPost, "/api/chat", `{"message":""}`)
	assert.Equal(t, models.CodeInvalidParams, resp.Code)

	_, resp = doRequest(t, router, http.MethodPost, "/api/chat", `{"message":"   "}`)
	assert.Equal(t, models.CodeMissingParams, resp.Code)

	_, resp = doRequest(t, router, http.MethodPost, "/api/chat", `{"message":"hi","emotion":"ecstatic"}`)
	assert.Equal(t, models.CodeInvalidParams, resp.Code)

	_, resp = doRequest(t, router, http.MethodPost, "/api/chat", `not json`)
	assert.Equal(t, models.CodeInvalidParams, resp.Code)
}

func TestStressDetectHandler(t *testing.T) {
	router := NewRouter(newTestHandler(t, stubClassifier{}))

	body, err := json.Marshal(models.StressDetectRequest{Image: pngDataURL(t)})
	require.NoError(t, err)
	rec, resp := doRequest(t, router, http.MethodPost, "/api/stress-detect", string(body))
	require.Equal(t, models.CodeSuccess, resp.Code, resp.Message)

	var result models.StressDetectResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "angry", result.DominantEmotion)
	assert.Equal(t, 1, result.ReadingCount)
	assert.NotEmpty(t, result.Stress.Level)
	assert.NotEmpty(t, result.MusicRecommendations)

	cookie := sessionCookieOf(t, rec)
	_, resp = doRequest(t, router, http.MethodGet, "/api/stress-detect/history", "", cookie)
	var history struct {
		Readings []models.StressReading `json:"readings"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Len(t, history.Readings, 1)

	_, resp = doRequest(t, router, http.MethodPost, "/api/stress-detect/reset", "", cookie)
	assert.Equal(t, models.CodeSuccess, resp.Code)
	_, resp = doRequest(t, router, http.MethodGet, "/api/stress-detect/history", "", cookie)
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Empty(t, history.Readings)
}

func TestStressDetectHandlerErrors(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))

	_, resp := doRequest(t, router, http.MethodPost, "/api/stress-detect", `{"image":"data:image/png;base64,bm90IGFuIGltYWdl"}`)
	assert.Equal(t, models.CodeInvalidImage, resp.Code)

	body, err := json.Marshal(models.StressDetectRequest{Image: pngDataURL(t)})
	require.NoError(t, err)
	_, resp = doRequest(t, router, http.MethodPost, "/api/stress-detect", string(body))
	assert.Equal(t, models.CodeThirdPartyAPIError, resp.Code)
}

func TestScrapeHandlersUseDefaultQuery(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))

	_, resp := doRequest(t, router, http.MethodGet, "/api/scrape/videos", "")
	var items []models.ContentItem
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "video stress relief", items[0].Title)

	_, resp = doRequest(t, router, http.MethodGet, "/api/scrape/music?q=rain+sounds", "")
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	assert.Equal(t, "music rain sounds", items[0].Title)
}

func TestCacheStatsAndClear(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))

	_, resp := doRequest(t, router, http.MethodPost, "/api/chat", `{"message":"I can't sleep at night"}`)
	require.Equal(t, models.CodeSuccess, resp.Code)

	_, resp = doRequest(t, router, http.MethodGet, "/api/cache/stats", "")
	var stats struct {
		Stats models.CacheStats `json:"stats"`
		Keys  []string          `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 1, stats.Stats.Size)
	assert.Len(t, stats.Keys, 1)

	_, resp = doRequest(t, router, http.MethodDelete, "/api/cache", "")
	var cleared models.CacheStats
	require.NoError(t, json.Unmarshal(resp.Data, &cleared))
	assert.Equal(t, 0, cleared.Size)
}

func TestWellnessWithoutStorage(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))

	_, resp := doRequest(t, router, http.MethodPost, "/api/mood", `{"mood_level":3,"mood_emoji":"😐"}`)
	assert.Equal(t, models.CodeStorageDisabled, resp.Code)

	_, resp = doRequest(t, router, http.MethodGet, "/api/streak", "")
	assert.Equal(t, models.CodeStorageDisabled, resp.Code)

	_, resp = doRequest(t, router, http.MethodPost, "/api/mood", `{"mood_level":9,"mood_emoji":"😐"}`)
	assert.Equal(t, models.CodeInvalidParams, resp.Code)
}

func TestJournalInvalidID(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil))

	_, resp := doRequest(t, router, http.MethodGet, "/api/journal/abc", "")
	assert.Equal(t, models.CodeInvalidParams, resp.Code)

	_, resp = doRequest(t, router, http.MethodDelete, "/api/journal/-4", "")
	assert.Equal(t, models.CodeInvalidParams, resp.Code)
}

func TestSessionIDFromHeader(t *testing.T) {
	id := "0b4f8a62-2d1c-4e53-9b51-61c9f0f3c2aa"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(sessionHeader, id)
	rec := httptest.NewRecorder()

	assert.Equal(t, id, sessionID(rec, req))
	assert.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(sessionHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	assert.NotEqual(t, "not-a-uuid", sessionID(rec, req))
	assert.Len(t, rec.Result().Cookies(), 1)
}

func readEvent(t *testing.T, conn *websocket.Conn) wsOutbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var out wsOutbound
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestChatWebSocket(t *testing.T) {
	srv := httptest.NewServer(NewRouter(newTestHandler(t, nil)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, eventConnected, readEvent(t, conn).Type)

	require.NoError(t, conn.WriteJSON(wsInbound{Type: eventSetEmotion}))
	out := readEvent(t, conn)
	assert.Equal(t, eventEmotionSet, out.Type)
	assert.Equal(t, "neutral", out.Emotion)

	require.NoError(t, conn.WriteJSON(wsInbound{Type: eventSendMessage, Message: "my boss keeps yelling at work"}))
	out = readEvent(t, conn)
	require.Equal(t, eventTyping, out.Type)
	require.NotNil(t, out.Status)
	assert.True(t, *out.Status)

	out = readEvent(t, conn)
	require.Equal(t, eventTyping, out.Type)
	assert.False(t, *out.Status)

	out = readEvent(t, conn)
	require.Equal(t, eventBotMessage, out.Type)
	assert.NotEmpty(t, out.Message)
	assert.Equal(t, []string{"work"}, out.Keywords)
	require.NotNil(t, out.Recommendations)
	assert.NotEmpty(t, out.Recommendations.Videos)

	require.NoError(t, conn.WriteJSON(wsInbound{Type: "dance"}))
	out = readEvent(t, conn)
	assert.Equal(t, eventError, out.Type)
	assert.Contains(t, out.Message, "dance")
}
