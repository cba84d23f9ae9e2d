package services

import (
	"sync"

	"serenity/models"
)

// 默认上限
const (
	DefaultTranscriptLimit = 50
	DefaultCategoryLimit   = 30
)

// Transcript 定长对话记录，写满后覆盖最早的一轮
type Transcript struct {
	turns []models.ChatTurn
	start int
	size  int
}

// NewTranscript 创建对话记录
func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = DefaultTranscriptLimit
	}
	return &Transcript{turns: make([]models.ChatTurn, limit)}
}

// Append 追加一轮对话
func (t *Transcript) Append(turn models.ChatTurn) {
	limit := len(t.turns)
	if t.size < limit {
		t.turns[(t.start+t.size)%limit] = turn
		t.size++
		return
	}
	t.turns[t.start] = turn
	t.start = (t.start + 1) % limit
}

// Len 当前保存的轮数
func (t *Transcript) Len() int {
	return t.size
}

// Turns 按时间顺序返回副本
func (t *Transcript) Turns() []models.ChatTurn {
	out := make([]models.ChatTurn, t.size)
	for i := 0; i < t.size; i++ {
		out[i] = t.turns[(t.start+i)%len(t.turns)]
	}
	return out
}

// ChatSession 单个连接的对话状态，连接断开后丢弃
type ChatSession struct {
	ID string

	mu            sync.Mutex
	emotion       string
	transcript    *Transcript
	categories    []string
	recent        []string // 去重，最近一条消息的分类在前
	categoryLimit int
}

// NewChatSession 创建对话状态
func NewChatSession(id string, transcriptLimit, categoryLimit int) *ChatSession {
	if categoryLimit <= 0 {
		categoryLimit = DefaultCategoryLimit
	}
	return &ChatSession{
		ID:            id,
		transcript:    NewTranscript(transcriptLimit),
		categoryLimit: categoryLimit,
	}
}

// SetEmotion 设置当前情绪
func (s *ChatSession) SetEmotion(emotion string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emotion = emotion
}

// Emotion 当前情绪
func (s *ChatSession) Emotion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emotion
}

// Record 记录一轮对话
func (s *ChatSession) Record(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Append(models.ChatTurn{Role: role, Content: content})
}

// AddCategories 记录识别出的分类，只保留最近的若干个
func (s *ChatSession) AddCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, categories...)
	if over := len(s.categories) - s.categoryLimit; over > 0 {
		s.categories = append([]string(nil), s.categories[over:]...)
	}

	recent := make([]string, 0, len(categories)+len(s.recent))
	seen := make(map[string]bool, cap(recent))
	for _, c := range append(append([]string(nil), categories...), s.recent...) {
		if c != "" && !seen[c] {
			seen[c] = true
			recent = append(recent, c)
		}
	}
	if len(recent) > s.categoryLimit {
		recent = recent[:s.categoryLimit]
	}
	s.recent = recent
}

// Categories 最近识别出的分类
func (s *ChatSession) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categories...)
}

// RecentCategories 去重后的分类，最近一条消息的分类在前，同一条消息内保持排名顺序
func (s *ChatSession) RecentCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recent...)
}

// History 对话记录副本
func (s *ChatSession) History() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}
