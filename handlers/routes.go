package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "serenity/docs" // 导入 swagger 文档
	"serenity/repository"
	"serenity/utils"
)

// HealthHandler godoc
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":   "healthy",
		"message":  "Stress Relief API is running",
		"storage":  repository.Enabled(),
		"cache":    h.cache.Stats(),
		"sessions": h.sessions.size(),
	})
}

// NewRouter 创建带公共中间件的路由
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics(h.metrics))
	r.Use(CORS(h.cfg))

	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r chi.Router, h *Handler) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/health", h.HealthHandler)

	// WebSocket 不走请求超时和限流
	r.Get("/ws/chat", h.ChatWebSocketHandler)

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(h.cfg))
		r.Use(middleware.Timeout(time.Duration(h.cfg.Timeouts.RequestSec) * time.Second))

		r.Post("/api/chat", h.ChatHandler)
		r.Get("/api/chat/history", h.ChatHistoryHandler)
		r.Delete("/api/chat/history", h.ChatEndHandler)

		r.Post("/api/stress-detect", h.StressDetectHandler)
		r.Post("/api/stress-detect/reset", h.StressResetHandler)
		r.Get("/api/stress-detect/history", h.StressHistoryHandler)

		r.Get("/api/scrape/videos", h.ScrapeVideosHandler)
		r.Get("/api/scrape/music", h.ScrapeMusicHandler)
		r.Get("/api/scrape/articles", h.ScrapeArticlesHandler)
		r.Get("/api/emotion-recommendations", h.EmotionRecommendationsHandler)

		r.Get("/api/cache/stats", h.CacheStatsHandler)
		r.Delete("/api/cache", h.CacheClearHandler)

		r.Get("/api/mood", h.ListMoodHandler)
		r.Post("/api/mood", h.CreateMoodHandler)
		r.Get("/api/journal", h.ListJournalHandler)
		r.Post("/api/journal", h.CreateJournalHandler)
		r.Get("/api/journal/{id}", h.GetJournalHandler)
		r.Put("/api/journal/{id}", h.UpdateJournalHandler)
		r.Delete("/api/journal/{id}", h.DeleteJournalHandler)
		r.Post("/api/breathe/session", h.BreatheSessionHandler)
		r.Get("/api/streak", h.StreakHandler)
		r.Get("/api/dashboard", h.DashboardHandler)
	})
}
