package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"serenity/cache"
	"serenity/config"
	"serenity/metrics"
	"serenity/models"
	"serenity/repository"
	"serenity/services"
	"serenity/utils"
)

// Deps 处理器依赖，均在main中构造
type Deps struct {
	Config      *config.Config
	Recommender *services.RecommendationService
	Classifier  services.EmotionClassifier
	Wellness    *services.WellnessService
	Cache       *cache.RecommendationCache
	Sources     services.Sources
	Metrics     *metrics.Metrics
}

// Handler HTTP和WebSocket处理器
type Handler struct {
	cfg         *config.Config
	recommender *services.RecommendationService
	wellness    *services.WellnessService
	cache       *cache.RecommendationCache
	sources     services.Sources
	metrics     *metrics.Metrics
	sessions    *sessionStore
	validate    *validator.Validate
}

// NewHandler 创建处理器
func NewHandler(d Deps) *Handler {
	cfg := d.Config
	newState := func(id string) *sessionState {
		return &sessionState{
			chat:   services.NewChatSession(id, cfg.Chat.TranscriptLimit, cfg.Chat.CategoryLimit),
			stress: services.NewStressDetector(d.Classifier, cfg.Stress.MaxHistory),
		}
	}
	return &Handler{
		cfg:         cfg,
		recommender: d.Recommender,
		wellness:    d.Wellness,
		cache:       d.Cache,
		sources:     d.Sources,
		metrics:     d.Metrics,
		sessions:    newSessionStore(maxSessions, sessionTTL, newState),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// 请求体大小上限
const (
	maxJSONBytes  = 64 << 10
	maxImageBytes = 8 << 20
)

// bindJSON 解析并校验请求体，失败时写入错误响应
func (h *Handler) bindJSON(w http.ResponseWriter, r *http.Request, limit int64, dst interface{}) bool {
	if err := utils.DecodeJSON(r, limit, dst); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, err.Error(), map[string]interface{}{})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+":"+fe.Tag())
			}
			utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
				"fields": fields,
			})
			return false
		}
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, err.Error(), map[string]interface{}{})
		return false
	}
	return true
}

// writeStorageError 存储相关错误的统一处理
func writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrStorageDisabled) {
		utils.WriteErrorResponse(w, models.CodeStorageDisabled, map[string]interface{}{})
		return
	}
	utils.HandleServiceError(w, err, models.CodeNotFound)
}
