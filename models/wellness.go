package models

import "time"

// MoodEntry 心情记录
type MoodEntry struct {
	ID        int64     `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	MoodLevel int       `db:"mood_level" json:"mood_level"` // 1-5
	MoodEmoji string    `db:"mood_emoji" json:"mood_emoji"`
	Feelings  []string  `db:"feelings" json:"feelings"` // 数据库中以JSON字符串存储
	Notes     string    `db:"notes" json:"notes,omitempty"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// JournalEntry 日记
type JournalEntry struct {
	ID        int64     `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Tags      []string  `db:"tags" json:"tags"` // 数据库中以JSON字符串存储
	WordCount int       `db:"word_count" json:"word_count"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BreatheSession 呼吸练习记录
type BreatheSession struct {
	ID              int64     `db:"id" json:"id"`
	SessionID       string    `db:"session_id" json:"session_id"`
	Pattern         string    `db:"pattern" json:"pattern"`
	CyclesCompleted int       `db:"cycles_completed" json:"cycles_completed"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	Timestamp       time.Time `db:"timestamp" json:"timestamp"`
}

// UserStreak 连续使用天数
type UserStreak struct {
	SessionID         string     `db:"session_id" json:"session_id"`
	CurrentStreak     int        `db:"current_streak" json:"current_streak"`
	LongestStreak     int        `db:"longest_streak" json:"longest_streak"`
	LastInteraction   *time.Time `db:"last_interaction" json:"last_interaction,omitempty"`
	TotalInteractions int        `db:"total_interactions" json:"total_interactions"`
}

// Touch 记录一次互动，today按自然日比较
func (s *UserStreak) Touch(today time.Time) {
	day := truncateDay(today, today.Location())
	switch {
	case s.LastInteraction == nil:
		s.CurrentStreak = 1
	case truncateDay(*s.LastInteraction, day.Location()).Equal(day):
		// 同一天不变
	case truncateDay(*s.LastInteraction, day.Location()).AddDate(0, 0, 1).Equal(day):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	s.LastInteraction = &day
	s.TotalInteractions++
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
}

func truncateDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// FeelingCount 情绪词出现次数
type FeelingCount struct {
	Feeling string `json:"feeling"`
	Count   int    `json:"count"`
}

// MoodInsights 心情统计
type MoodInsights struct {
	AverageMood  float64        `json:"average_mood"`
	TotalEntries int            `json:"total_entries"`
	TopFeelings  []FeelingCount `json:"top_feelings"`
	Trend        string         `json:"trend"`
	Message      string         `json:"message,omitempty"`
}

// JournalSummary 日记列表及统计
type JournalSummary struct {
	Entries   []JournalEntry `json:"entries"`
	TagCounts map[string]int `json:"tag_counts"`
	Total     int            `json:"total"`
	AvgWords  int            `json:"avg_words"`
}

// Dashboard 首页概览
type Dashboard struct {
	TodayMood     *MoodEntry `json:"today_mood,omitempty"`
	Streak        UserStreak `json:"streak"`
	MoodCount     int        `json:"mood_count"`
	JournalCount  int        `json:"journal_count"`
	BreatheCount  int        `json:"breathe_count"`
	TotalSessions int        `json:"total_sessions"`
}
