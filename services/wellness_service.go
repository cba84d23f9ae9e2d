package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"serenity/logger"
	"serenity/models"
	"serenity/repository"
	"serenity/utils"
)

// 心情趋势
const (
	MoodTrendImproving = "improving"
	MoodTrendStable    = "stable"
)

const (
	defaultMoodDays  = 7
	topFeelingsLimit = 3
	noMoodMessage    = "Start logging your mood to see insights!"
)

// journalTags 日记标签及触发词，按顺序输出
var journalTags = []struct {
	tag   string
	words []string
}{
	{"study", []string{"study", "exam", "test", "homework", "class", "school", "university"}},
	{"sleep", []string{"sleep", "tired", "insomnia", "rest", "nap", "exhausted"}},
	{"social", []string{"friend", "family", "relationship", "people", "lonely", "social"}},
	{"work", []string{"work", "job", "boss", "deadline", "project", "career"}},
	{"health", []string{"health", "sick", "exercise", "gym", "doctor", "pain"}},
	{"anxiety", []string{"anxious", "worry", "nervous", "panic", "fear"}},
	{"happy", []string{"happy", "joy", "excited", "grateful", "proud"}},
	{"sad", []string{"sad", "depressed", "down", "upset", "crying"}},
}

// WellnessService 心情、日记、呼吸练习和连续天数
type WellnessService struct {
	now func() time.Time
}

// NewWellnessService 创建服务
func NewWellnessService() *WellnessService {
	return &WellnessService{now: time.Now}
}

// RecordMood 记录心情并更新连续天数
func (s *WellnessService) RecordMood(ctx context.Context, sessionID string, req models.MoodRequest) (*models.MoodEntry, *models.UserStreak, error) {
	feelings := utils.DeduplicateSlice(req.Feelings)
	entry := &models.MoodEntry{
		SessionID: sessionID,
		MoodLevel: req.MoodLevel,
		MoodEmoji: req.MoodEmoji,
		Feelings:  feelings,
		Notes:     strings.TrimSpace(req.Notes),
		Timestamp: s.now(),
	}
	if err := repository.InsertMood(ctx, entry); err != nil {
		return nil, nil, fmt.Errorf("insert mood: %w", err)
	}
	streak, err := s.touchStreak(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Mood recorded", "session", sessionID, "level", entry.MoodLevel, "streak", streak.CurrentStreak)
	return entry, streak, nil
}

// MoodHistory 最近days天的心情记录（最多days*3条）及统计
func (s *WellnessService) MoodHistory(ctx context.Context, sessionID string, days int) ([]models.MoodEntry, models.MoodInsights, error) {
	if days <= 0 {
		days = defaultMoodDays
	}
	entries, err := repository.ListMoods(ctx, sessionID, days*3)
	if err != nil {
		return nil, models.MoodInsights{}, fmt.Errorf("list moods: %w", err)
	}
	return entries, MoodInsights(entries), nil
}

// RecordJournal 保存日记并更新连续天数
func (s *WellnessService) RecordJournal(ctx context.Context, sessionID string, req models.JournalRequest) (*models.JournalEntry, error) {
	now := s.now()
	entry := &models.JournalEntry{
		SessionID: sessionID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Tags:      ExtractJournalTags(req.Content),
		WordCount: utils.WordCount(req.Content),
		Timestamp: now,
		UpdatedAt: now,
	}
	if err := repository.InsertJournal(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert journal: %w", err)
	}
	if _, err := s.touchStreak(ctx, sessionID); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateJournal 更新日记，重新计算标签和字数
func (s *WellnessService) UpdateJournal(ctx context.Context, sessionID string, id int64, req models.JournalUpdateRequest) (*models.JournalEntry, error) {
	entry, err := repository.GetJournal(ctx, sessionID, id)
	if err != nil {
		return nil, fmt.Errorf("get journal %d: %w", id, err)
	}
	if req.Title != nil {
		entry.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		entry.Content = *req.Content
	}
	entry.Tags = ExtractJournalTags(entry.Content)
	entry.WordCount = utils.WordCount(entry.Content)
	entry.UpdatedAt = s.now()

	if err := repository.UpdateJournal(ctx, entry); err != nil {
		return nil, fmt.Errorf("update journal %d: %w", id, err)
	}
	return entry, nil
}

// DeleteJournal 删除日记
func (s *WellnessService) DeleteJournal(ctx context.Context, sessionID string, id int64) error {
	if err := repository.DeleteJournal(ctx, sessionID, id); err != nil {
		return fmt.Errorf("delete journal %d: %w", id, err)
	}
	return nil
}

// GetJournal 获取单篇日记
func (s *WellnessService) GetJournal(ctx context.Context, sessionID string, id int64) (*models.JournalEntry, error) {
	entry, err := repository.GetJournal(ctx, sessionID, id)
	if err != nil {
		return nil, fmt.Errorf("get journal %d: %w", id, err)
	}
	return entry, nil
}

// Journals 全部日记及标签统计
func (s *WellnessService) Journals(ctx context.Context, sessionID string) (*models.JournalSummary, error) {
	entries, err := repository.ListJournals(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	summary := SummarizeJournals(entries)
	return &summary, nil
}

// RecordBreathe 记录呼吸练习并更新连续天数
func (s *WellnessService) RecordBreathe(ctx context.Context, sessionID string, req models.BreatheRequest) (*models.BreatheSession, *models.UserStreak, error) {
	session := &models.BreatheSession{
		SessionID:       sessionID,
		Pattern:         req.Pattern,
		CyclesCompleted: req.CyclesCompleted,
		DurationSeconds: req.DurationSeconds,
		Timestamp:       s.now(),
	}
	if err := repository.InsertBreathe(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("insert breathe session: %w", err)
	}
	streak, err := s.touchStreak(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, streak, nil
}

// Streak 当前连续天数，没有记录时返回零值
func (s *WellnessService) Streak(ctx context.Context, sessionID string) (*models.UserStreak, error) {
	streak, err := repository.GetStreak(ctx, sessionID)
	if utils.IsSQLNoRowsError(err) {
		return &models.UserStreak{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}
	return streak, nil
}

// Dashboard 首页概览
func (s *WellnessService) Dashboard(ctx context.Context, sessionID string) (*models.Dashboard, error) {
	streak, err := s.Streak(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d := &models.Dashboard{Streak: *streak}

	today, err := repository.MoodOnDay(ctx, sessionID, s.now())
	switch {
	case err == nil:
		d.TodayMood = today
	case !utils.IsSQLNoRowsError(err):
		return nil, fmt.Errorf("today mood: %w", err)
	}

	if d.MoodCount, err = repository.CountMoods(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("count moods: %w", err)
	}
	if d.JournalCount, err = repository.CountJournals(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("count journals: %w", err)
	}
	if d.BreatheCount, err = repository.CountBreathe(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("count breathe sessions: %w", err)
	}
	d.TotalSessions = d.MoodCount + d.JournalCount + d.BreatheCount
	return d, nil
}

// touchStreak 读取或新建连续天数记录，记一次今天的互动
func (s *WellnessService) touchStreak(ctx context.Context, sessionID string) (*models.UserStreak, error) {
	streak, err := repository.GetStreak(ctx, sessionID)
	if utils.IsSQLNoRowsError(err) {
		streak, err = &models.UserStreak{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}
	streak.Touch(s.now())
	if err := repository.SaveStreak(ctx, streak); err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}
	return streak, nil
}

// ExtractJournalTags 根据内容提取标签，按标签表顺序返回
func ExtractJournalTags(content string) []string {
	lower := strings.ToLower(content)
	tags := make([]string, 0)
	for _, t := range journalTags {
		for _, w := range t.words {
			if strings.Contains(lower, w) {
				tags = append(tags, t.tag)
				break
			}
		}
	}
	return tags
}

// MoodInsights 心情统计，entries按时间倒序
func MoodInsights(entries []models.MoodEntry) models.MoodInsights {
	if len(entries) == 0 {
		return models.MoodInsights{TopFeelings: []models.FeelingCount{}, Message: noMoodMessage}
	}

	total := 0
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		total += e.MoodLevel
		for _, f := range e.Feelings {
			if counts[f] == 0 {
				order = append(order, f)
			}
			counts[f]++
		}
	}

	// 次数相同时保持首次出现的顺序
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	top := make([]models.FeelingCount, 0, topFeelingsLimit)
	for _, f := range order[:utils.Min(len(order), topFeelingsLimit)] {
		top = append(top, models.FeelingCount{Feeling: f, Count: counts[f]})
	}

	trend := MoodTrendStable
	if len(entries) > 1 && entries[0].MoodLevel > entries[len(entries)-1].MoodLevel {
		trend = MoodTrendImproving
	}

	avg := float64(total) / float64(len(entries))
	return models.MoodInsights{
		AverageMood:  math.Round(avg*10) / 10,
		TotalEntries: len(entries),
		TopFeelings:  top,
		Trend:        trend,
	}
}

// SummarizeJournals 统计标签次数和平均字数
func SummarizeJournals(entries []models.JournalEntry) models.JournalSummary {
	summary := models.JournalSummary{
		Entries:   entries,
		TagCounts: make(map[string]int),
		Total:     len(entries),
	}
	if summary.Entries == nil {
		summary.Entries = []models.JournalEntry{}
	}
	words := 0
	for _, e := range entries {
		words += e.WordCount
		for _, tag := range e.Tags {
			summary.TagCounts[tag]++
		}
	}
	if len(entries) > 0 {
		summary.AvgWords = words / len(entries)
	}
	return summary
}
