package handlers

import (
	"net/http"
	"strings"

	"serenity/services"
	"serenity/utils"
)

// queryOr 读取查询参数，为空时使用默认值
func queryOr(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

func (h *Handler) scrape(w http.ResponseWriter, r *http.Request, src services.ContentSource, defQuery string, max int) {
	items := src.Fetch(r.Context(), queryOr(r, "q", defQuery), max)
	utils.WriteSuccessResponse(w, items)
}

// ScrapeVideosHandler godoc
// @Summary 搜索减压视频
// @Tags 内容
// @Produce json
// @Param q query string false "搜索词" default(stress relief)
// @Success 200 {object} models.ContentListResponse "成功"
// @Router /api/scrape/videos [get]
func (h *Handler) ScrapeVideosHandler(w http.ResponseWriter, r *http.Request) {
	h.scrape(w, r, h.sources.Videos, "stress relief", h.cfg.Scraper.MaxVideos)
}

// ScrapeMusicHandler godoc
// @Summary 搜索放松音乐
// @Tags 内容
// @Produce json
// @Param q query string false "搜索词" default(relaxing music)
// @Success 200 {object} models.ContentListResponse "成功"
// @Router /api/scrape/music [get]
func (h *Handler) ScrapeMusicHandler(w http.ResponseWriter, r *http.Request) {
	h.scrape(w, r, h.sources.Music, "relaxing music", h.cfg.Scraper.MaxMusic)
}

// ScrapeArticlesHandler godoc
// @Summary 搜索心理健康文章
// @Tags 内容
// @Produce json
// @Param q query string false "搜索词" default(stress management)
// @Success 200 {object} models.ContentListResponse "成功"
// @Router /api/scrape/articles [get]
func (h *Handler) ScrapeArticlesHandler(w http.ResponseWriter, r *http.Request) {
	h.scrape(w, r, h.sources.Articles, "stress management", h.cfg.Scraper.MaxArticles)
}

// EmotionRecommendationsHandler godoc
// @Summary 按表情识别结果推荐内容
// @Tags 内容
// @Produce json
// @Param emotion query string false "表情标签" default(neutral)
// @Success 200 {object} models.BundleResponse "成功"
// @Router /api/emotion-recommendations [get]
func (h *Handler) EmotionRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	emotion := strings.ToLower(queryOr(r, "emotion", "neutral"))
	bundle := h.recommender.EmotionRecommendations(r.Context(), emotion)
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"emotion":  emotion,
		"videos":   bundle.Videos,
		"music":    bundle.Music,
		"articles": bundle.Articles,
	})
}

// CacheStatsHandler godoc
// @Summary 推荐缓存统计
// @Tags 缓存
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/cache/stats [get]
func (h *Handler) CacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"stats": h.cache.Stats(),
		"keys":  h.cache.Keys(),
	})
}

// CacheClearHandler godoc
// @Summary 清空推荐缓存
// @Tags 缓存
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/cache [delete]
func (h *Handler) CacheClearHandler(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	utils.WriteSuccessResponse(w, h.cache.Stats())
}
