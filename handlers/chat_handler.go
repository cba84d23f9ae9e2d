package handlers

import (
	"errors"
	"net/http"

	"serenity/models"
	"serenity/services"
	"serenity/utils"
)

// ChatHandler godoc
// @Summary 发送聊天消息
// @Description 提取压力分类，返回安慰回复和视频、音乐、文章推荐
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "聊天消息"
// @Success 200 {object} models.ChatResponse "成功"
// @Failure 200 {object} models.APIResponse "参数错误"
// @Router /api/chat [post]
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !h.bindJSON(w, r, maxJSONBytes, &req) {
		return
	}

	st := h.sessions.get(sessionID(w, r))
	if req.Emotion != "" {
		st.chat.SetEmotion(req.Emotion)
	}

	reply, err := h.recommender.Handle(r.Context(), req.Message, req.Emotion, st.chat)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			utils.WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
				"param": "message",
			})
			return
		}
		utils.WriteCustomErrorResponse(w, models.CodeRecommendGenError, err.Error(), map[string]interface{}{})
		return
	}
	h.metrics.ChatMessage("http")

	utils.WriteSuccessResponse(w, reply)
}

// ChatHistoryHandler godoc
// @Summary 获取当前会话的对话记录
// @Tags 聊天
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/chat/history [get]
func (h *Handler) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.get(sessionID(w, r))
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"emotion":           st.chat.Emotion(),
		"messages":          st.chat.History(),
		"categories":        st.chat.Categories(),
		"suggested_queries": h.recommender.SuggestedQueries(st.chat.RecentCategories()),
	})
}

// ChatEndHandler godoc
// @Summary 结束当前会话
// @Description 丢弃对话记录和压力读数，返回告别语
// @Tags 聊天
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/chat/history [delete]
func (h *Handler) ChatEndHandler(w http.ResponseWriter, r *http.Request) {
	h.sessions.remove(sessionID(w, r))
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"message": h.recommender.ClosingMessage(),
	})
}
