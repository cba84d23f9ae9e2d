package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sort"
	"strings"
	"sync"
	"time"

	"serenity/logger"
	"serenity/models"
)

var (
	// ErrInvalidImage 图片为空或无法解码
	ErrInvalidImage = errors.New("invalid image")
	// ErrClassification 表情分类服务调用失败
	ErrClassification = errors.New("emotion classification failed")
)

// DefaultMaxHistory 压力读数历史上限
const DefaultMaxHistory = 30

// minTrendReadings 计算趋势所需的最少读数
const minTrendReadings = 10

var stressWeights = map[string]float64{
	"angry":    0.9,
	"disgust":  0.7,
	"fear":     0.85,
	"sad":      0.75,
	"surprise": 0.4,
	"neutral":  0.2,
	"happy":    0.0,
}

var emotionEmoji = map[string]string{
	"angry":    "😠",
	"disgust":  "😖",
	"fear":     "😨",
	"happy":    "😊",
	"neutral":  "😐",
	"sad":      "😢",
	"surprise": "😲",
}

// stressBand 压力等级区间，按阈值从高到低排列
type stressBand struct {
	threshold float64
	level     string
	color     string
	emoji     string
	message   string
}

var stressBands = []stressBand{
	{0.7, models.StressHigh, "#ef4444", "😰", "High stress detected. Let's take action to help you feel better."},
	{0.5, models.StressModerate, "#f59e0b", "😕", "Moderate stress detected. Some relaxation techniques might help."},
	{0.3, models.StressLow, "#10b981", "🙂", "Low stress levels. You're doing well!"},
	{0, models.StressMinimal, "#22c55e", "😊", "You appear calm and relaxed. Great job!"},
}

var musicByLevel = map[string][]models.MusicSuggestion{
	models.StressHigh: {
		{Title: "Deep Calm - Meditation Music", Type: "meditation", Duration: "10 min"},
		{Title: "Nature Sounds - Rain Forest", Type: "nature", Duration: "15 min"},
		{Title: "Binaural Beats - Stress Relief", Type: "binaural", Duration: "20 min"},
	},
	models.StressModerate: {
		{Title: "Lo-Fi Chill Beats", Type: "lofi", Duration: "30 min"},
		{Title: "Acoustic Relaxation", Type: "acoustic", Duration: "15 min"},
		{Title: "Piano for Focus", Type: "piano", Duration: "20 min"},
	},
	models.StressLow: {
		{Title: "Uplifting Instrumental", Type: "uplifting", Duration: "20 min"},
		{Title: "Focus Flow Music", Type: "focus", Duration: "30 min"},
		{Title: "Ambient Work Music", Type: "ambient", Duration: "45 min"},
	},
	models.StressMinimal: {
		{Title: "Feel Good Playlist", Type: "feel_good", Duration: "30 min"},
		{Title: "Energy Boost Mix", Type: "energy", Duration: "20 min"},
		{Title: "Happy Vibes", Type: "happy", Duration: "25 min"},
	},
}

// EmotionClassifier 外部表情分类服务
type EmotionClassifier interface {
	Classify(ctx context.Context, image []byte) (models.EmotionVector, error)
}

// StressDetector 根据表情分类结果计算压力分数并跟踪趋势
type StressDetector struct {
	classifier EmotionClassifier
	maxHistory int
	now        func() time.Time

	mu      sync.Mutex
	history []models.StressReading
}

// NewStressDetector 创建压力检测器
func NewStressDetector(classifier EmotionClassifier, maxHistory int) *StressDetector {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &StressDetector{
		classifier: classifier,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// AnalyzeImage 解码base64图片（可带data URL前缀）后分析
func (d *StressDetector) AnalyzeImage(ctx context.Context, encoded string) (*models.StressAnalysis, error) {
	img, err := DecodeImage(encoded)
	if err != nil {
		return nil, err
	}
	return d.Analyze(ctx, img)
}

// Analyze 调用分类服务并记录一次读数
func (d *StressDetector) Analyze(ctx context.Context, img []byte) (*models.StressAnalysis, error) {
	if len(img) == 0 {
		return nil, ErrInvalidImage
	}
	if d.classifier == nil {
		return nil, fmt.Errorf("%w: classifier not configured", ErrClassification)
	}

	emotions, err := d.classifier.Classify(ctx, img)
	if err != nil {
		logger.Error("Emotion classification failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	analysis := d.Record(emotions)
	return &analysis, nil
}

// Record 根据情绪向量计算压力并加入历史
func (d *StressDetector) Record(emotions models.EmotionVector) models.StressAnalysis {
	score := CalculateStressScore(emotions)
	dominant, confidence := DominantEmotion(emotions)

	d.mu.Lock()
	d.history = append(d.history, models.StressReading{
		Emotions:        emotions,
		StressScore:     score,
		DominantEmotion: dominant,
		Confidence:      confidence,
		Timestamp:       d.now(),
	})
	if len(d.history) > d.maxHistory {
		n := copy(d.history, d.history[len(d.history)-d.maxHistory:])
		d.history = d.history[:n]
	}
	trend := trendOf(d.history)
	count := len(d.history)
	d.mu.Unlock()

	emoji, ok := emotionEmoji[dominant]
	if !ok {
		emoji = emotionEmoji["neutral"]
	}
	return models.StressAnalysis{
		Emotions:        emotions,
		DominantEmotion: dominant,
		EmotionEmoji:    emoji,
		Confidence:      confidence,
		Stress:          StressLevel(score),
		Trend:           trend,
		ReadingCount:    count,
	}
}

// Trend 当前压力趋势
func (d *StressDetector) Trend() models.StressTrend {
	d.mu.Lock()
	defer d.mu.Unlock()
	return trendOf(d.history)
}

// History 历史读数副本，从旧到新
func (d *StressDetector) History() []models.StressReading {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.StressReading(nil), d.history...)
}

// ReadingCount 当前历史长度
func (d *StressDetector) ReadingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.history)
}

// Reset 清空历史
func (d *StressDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = nil
}

func trendOf(history []models.StressReading) models.StressTrend {
	if len(history) < minTrendReadings {
		return models.StressTrend{Trend: models.TrendInsufficient, Message: "Gathering more data..."}
	}

	mid := len(history) / 2
	change := meanScore(history[mid:]) - meanScore(history[:mid])
	switch {
	case change > 0.1:
		return models.StressTrend{Trend: models.TrendIncreasing, Change: change, Message: "Stress is increasing"}
	case change < -0.1:
		return models.StressTrend{Trend: models.TrendDecreasing, Change: change, Message: "Stress is decreasing - exercises are working!"}
	default:
		return models.StressTrend{Trend: models.TrendStable, Change: change, Message: "Stress levels are stable"}
	}
}

func meanScore(readings []models.StressReading) float64 {
	sum := 0.0
	for _, r := range readings {
		sum += r.StressScore
	}
	return sum / float64(len(readings))
}

// CalculateStressScore 按情绪权重计算概率加权平均，概率总和为0时返回0
func CalculateStressScore(emotions models.EmotionVector) float64 {
	labels := make([]string, 0, len(emotions))
	for label := range emotions {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var weighted, total float64
	for _, label := range labels {
		p := emotions[label]
		weighted += stressWeights[label] * p
		total += p
	}
	if total <= 0 {
		return 0
	}
	return weighted / total
}

// DominantEmotion 概率最高的情绪，同分取固定标签顺序中靠前的
func DominantEmotion(emotions models.EmotionVector) (string, float64) {
	dominant, best := "neutral", 0.0
	found := false
	for _, label := range models.EmotionLabels {
		p, ok := emotions[label]
		if !ok {
			continue
		}
		if !found || p > best {
			dominant, best, found = label, p, true
		}
	}
	return dominant, best
}

// StressLevel 将分数映射为压力等级
func StressLevel(score float64) models.StressAssessment {
	band := stressBands[len(stressBands)-1]
	for _, b := range stressBands {
		if score >= b.threshold {
			band = b
			break
		}
	}
	return models.StressAssessment{
		Score:   score,
		Level:   band.level,
		Color:   band.color,
		Emoji:   band.emoji,
		Message: band.message,
	}
}

// MusicRecommendations 按压力等级推荐音乐类型，未知等级按moderate处理
func MusicRecommendations(level string) []models.MusicSuggestion {
	if recs, ok := musicByLevel[level]; ok {
		return recs
	}
	return musicByLevel[models.StressModerate]
}

// DecodeImage 解码base64图片并校验格式（PNG/JPEG/GIF）
func DecodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if _, data, ok := strings.Cut(encoded, ","); ok {
		encoded = data
	}
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return raw, nil
}
