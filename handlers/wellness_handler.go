package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serenity/models"
	"serenity/utils"
)

// CreateMoodHandler godoc
// @Summary 记录心情
// @Tags 心情
// @Accept json
// @Produce json
// @Param request body models.MoodRequest true "心情"
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/mood [post]
func (h *Handler) CreateMoodHandler(w http.ResponseWriter, r *http.Request) {
	var req models.MoodRequest
	if !h.bindJSON(w, r, maxJSONBytes, &req) {
		return
	}
	entry, streak, err := h.wellness.RecordMood(r.Context(), sessionID(w, r), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"entry":  entry,
		"streak": streak.CurrentStreak,
	})
}

// ListMoodHandler godoc
// @Summary 最近的心情记录及统计
// @Tags 心情
// @Produce json
// @Param days query int false "天数" default(7)
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/mood [get]
func (h *Handler) ListMoodHandler(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 || d > 365 {
			utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
				"param": "days",
			})
			return
		}
		days = d
	}
	entries, insights, err := h.wellness.MoodHistory(r.Context(), sessionID(w, r), days)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"entries":  entries,
		"insights": insights,
	})
}

// CreateJournalHandler godoc
// @Summary 写日记
// @Description 根据内容自动提取标签并统计字数
// @Tags 日记
// @Accept json
// @Produce json
// @Param request body models.JournalRequest true "日记"
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/journal [post]
func (h *Handler) CreateJournalHandler(w http.ResponseWriter, r *http.Request) {
	var req models.JournalRequest
	if !h.bindJSON(w, r, maxJSONBytes, &req) {
		return
	}
	entry, err := h.wellness.RecordJournal(r.Context(), sessionID(w, r), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, entry)
}

// ListJournalHandler godoc
// @Summary 日记列表及标签统计
// @Tags 日记
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/journal [get]
func (h *Handler) ListJournalHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.wellness.Journals(r.Context(), sessionID(w, r))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, summary)
}

// GetJournalHandler godoc
// @Summary 获取单篇日记
// @Tags 日记
// @Produce json
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/journal/{id} [get]
func (h *Handler) GetJournalHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	entry, err := h.wellness.GetJournal(r.Context(), sessionID(w, r), id)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, entry)
}

// UpdateJournalHandler godoc
// @Summary 修改日记
// @Tags 日记
// @Accept json
// @Produce json
// @Param id path int true "日记ID"
// @Param request body models.JournalUpdateRequest true "修改内容"
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/journal/{id} [put]
func (h *Handler) UpdateJournalHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req models.JournalUpdateRequest
	if !h.bindJSON(w, r, maxJSONBytes, &req) {
		return
	}
	entry, err := h.wellness.UpdateJournal(r.Context(), sessionID(w, r), id, req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, entry)
}

// DeleteJournalHandler godoc
// @Summary 删除日记
// @Tags 日记
// @Produce json
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/journal/{id} [delete]
func (h *Handler) DeleteJournalHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := h.wellness.DeleteJournal(r.Context(), sessionID(w, r), id); err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{})
}

// BreatheSessionHandler godoc
// @Summary 记录一次呼吸练习
// @Tags 呼吸练习
// @Accept json
// @Produce json
// @Param request body models.BreatheRequest true "练习记录"
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/breathe/session [post]
func (h *Handler) BreatheSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BreatheRequest
	if !h.bindJSON(w, r, maxJSONBytes, &req) {
		return
	}
	_, streak, err := h.wellness.RecordBreathe(r.Context(), sessionID(w, r), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"streak": streak.CurrentStreak,
	})
}

// StreakHandler godoc
// @Summary 当前连续使用天数
// @Tags 心情
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/streak [get]
func (h *Handler) StreakHandler(w http.ResponseWriter, r *http.Request) {
	streak, err := h.wellness.Streak(r.Context(), sessionID(w, r))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, streak)
}

// DashboardHandler godoc
// @Summary 首页概览
// @Description 今天的心情、连续天数和各类记录数
// @Tags 心情
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/dashboard [get]
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.wellness.Dashboard(r.Context(), sessionID(w, r))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, d)
}
