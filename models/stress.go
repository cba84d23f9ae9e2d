package models

import "time"

// EmotionLabels 分类器输出的固定情绪标签，顺序用于主导情绪的平局判定
var EmotionLabels = []string{"angry", "disgust", "fear", "happy", "neutral", "sad", "surprise"}

// EmotionVector 情绪标签到概率的映射
type EmotionVector map[string]float64

// 压力等级
const (
	StressHigh     = "high"
	StressModerate = "moderate"
	StressLow      = "low"
	StressMinimal  = "minimal"
)

// 压力趋势
const (
	TrendInsufficient = "insufficient_data"
	TrendIncreasing   = "increasing"
	TrendDecreasing   = "decreasing"
	TrendStable       = "stable"
)

// StressReading 单次压力读数
type StressReading struct {
	Emotions        EmotionVector `json:"emotions"`
	StressScore     float64       `json:"stress_score"`
	DominantEmotion string        `json:"dominant_emotion"`
	Confidence      float64       `json:"confidence"`
	Timestamp       time.Time     `json:"timestamp"`
}

// StressAssessment 压力等级描述
type StressAssessment struct {
	Score   float64 `json:"score"`
	Level   string  `json:"level"`
	Color   string  `json:"color"`
	Emoji   string  `json:"emoji"`
	Message string  `json:"message"`
}

// StressTrend 压力趋势
type StressTrend struct {
	Trend   string  `json:"trend"`
	Change  float64 `json:"change"` // 后半段均值减前半段均值
	Message string  `json:"message"`
}

// StressAnalysis 一次图像分析的完整结果
type StressAnalysis struct {
	Emotions        EmotionVector    `json:"emotions"`
	DominantEmotion string           `json:"dominant_emotion"`
	EmotionEmoji    string           `json:"emotion_emoji"`
	Confidence      float64          `json:"confidence"`
	Stress          StressAssessment `json:"stress"`
	Trend           StressTrend      `json:"trend"`
	ReadingCount    int              `json:"reading_count"`
}

// MusicSuggestion 按压力等级推荐的音乐类型
type MusicSuggestion struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
}

// StressDetectResult 压力检测接口返回：分析结果加音乐建议
type StressDetectResult struct {
	StressAnalysis
	MusicRecommendations []MusicSuggestion `json:"music_recommendations"`
}
