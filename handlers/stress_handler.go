package handlers

import (
	"errors"
	"net/http"

	"serenity/models"
	"serenity/services"
	"serenity/utils"
)

// StressDetectHandler godoc
// @Summary 根据摄像头画面检测压力
// @Description 图片为base64或data URL，经外部表情分类服务得到情绪分布，计算压力分数、等级和趋势
// @Tags 压力检测
// @Accept json
// @Produce json
// @Param request body models.StressDetectRequest true "图片"
// @Success 200 {object} models.StressDetectResponse "成功"
// @Failure 200 {object} models.APIResponse "图片无法解析或分类服务失败"
// @Router /api/stress-detect [post]
func (h *Handler) StressDetectHandler(w http.ResponseWriter, r *http.Request) {
	var req models.StressDetectRequest
	if !h.bindJSON(w, r, maxImageBytes, &req) {
		return
	}

	st := h.sessions.get(sessionID(w, r))
	analysis, err := st.stress.AnalyzeImage(r.Context(), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidImage):
			utils.WriteErrorResponse(w, models.CodeInvalidImage, map[string]interface{}{})
		case errors.Is(err, services.ErrClassification):
			utils.WriteCustomErrorResponse(w, models.CodeThirdPartyAPIError, err.Error(), map[string]interface{}{})
		default:
			utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		}
		return
	}
	h.metrics.StressAnalysis(analysis.Stress.Level)

	utils.WriteSuccessResponse(w, models.StressDetectResult{
		StressAnalysis:       *analysis,
		MusicRecommendations: services.MusicRecommendations(analysis.Stress.Level),
	})
}

// StressResetHandler godoc
// @Summary 清空当前会话的压力读数
// @Tags 压力检测
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/stress-detect/reset [post]
func (h *Handler) StressResetHandler(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.get(sessionID(w, r))
	st.stress.Reset()
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"message": "History reset",
	})
}

// StressHistoryHandler godoc
// @Summary 当前会话的压力读数和趋势
// @Tags 压力检测
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/stress-detect/history [get]
func (h *Handler) StressHistoryHandler(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.get(sessionID(w, r))
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"readings": st.stress.History(),
		"trend":    st.stress.Trend(),
	})
}
