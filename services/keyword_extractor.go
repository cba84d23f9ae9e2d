package services

import (
	"sort"
	"strings"
)

// GeneralStress 没有命中任何分类时使用的分类
const GeneralStress = "general_stress"

// 关键词权重
const (
	weightHigh   = 3
	weightMedium = 2
	weightLow    = 1
	emotionBoost = 2
	maxTopics    = 3
)

// triggerTiers 分类的三档触发词
type triggerTiers struct {
	high   []string
	medium []string
	low    []string
}

// categoryTrigger 分类及其触发词，切片顺序即同分时的排序顺序
type categoryTrigger struct {
	name  string
	tiers triggerTiers
}

var stressTriggers = []categoryTrigger{
	{"exams", triggerTiers{
		high:   []string{"exam", "finals", "midterm", "test anxiety", "studying", "gpa"},
		medium: []string{"test", "study", "quiz", "grade", "school", "college", "university"},
		low:    []string{"homework", "assignment", "deadline", "class", "professor", "teacher"},
	}},
	{"work", triggerTiers{
		high:   []string{"work stress", "boss", "fired", "layoff", "promotion", "interview"},
		medium: []string{"work", "job", "office", "deadline", "meeting", "project"},
		low:    []string{"coworker", "colleague", "career", "workplace", "professional"},
	}},
	{"relationships", triggerTiers{
		high:   []string{"breakup", "divorce", "fight with", "argument with", "lonely", "heartbreak"},
		medium: []string{"relationship", "partner", "boyfriend", "girlfriend", "spouse", "husband", "wife"},
		low:    []string{"friend", "family", "argument", "conflict", "communication"},
	}},
	{"sleep", triggerTiers{
		high:   []string{"insomnia", "can't sleep", "cant sleep", "sleepless", "nightmare"},
		medium: []string{"sleep", "tired", "exhausted", "fatigue", "restless"},
		low:    []string{"awake", "rest", "bed", "night", "morning"},
	}},
	{"anxiety", triggerTiers{
		high:   []string{"panic attack", "anxiety attack", "severe anxiety", "cant breathe", "heart racing"},
		medium: []string{"anxious", "anxiety", "panic", "worried", "nervous", "fear"},
		low:    []string{"scared", "overthinking", "uneasy", "tense", "on edge"},
	}},
	{"focus", triggerTiers{
		high:   []string{"cant focus", "can't concentrate", "adhd", "brain fog"},
		medium: []string{"focus", "concentrate", "distracted", "procrastinate"},
		low:    []string{"attention", "productive", "motivation", "unmotivated"},
	}},
	{"overwhelmed", triggerTiers{
		high:   []string{"breaking down", "falling apart", "too much", "cant cope", "can't handle"},
		medium: []string{"overwhelmed", "stressed out", "burned out", "burnout"},
		low:    []string{"pressure", "demanding", "exhausting", "draining"},
	}},
	{"sadness", triggerTiers{
		high:   []string{"depressed", "depression", "hopeless", "suicidal", "want to die"},
		medium: []string{"sad", "crying", "tearful", "miserable", "empty"},
		low:    []string{"down", "blue", "unhappy", "upset", "disappointed"},
	}},
	{"anger", triggerTiers{
		high:   []string{"furious", "rage", "hate", "explosive"},
		medium: []string{"angry", "mad", "frustrated", "irritated"},
		low:    []string{"annoyed", "bothered", "upset", "fed up"},
	}},
}

// emotionCategory 用户选择的情绪对应的分类，neutral不对应任何分类
var emotionCategory = map[string]string{
	"anxious":     "anxiety",
	"stressed":    "overwhelmed",
	"sad":         "sadness",
	"tired":       "sleep",
	"angry":       "anger",
	"overwhelmed": "overwhelmed",
	"neutral":     "",
}

var searchQueries = map[string][]string{
	"exams": {
		"exam stress relief meditation",
		"study focus techniques anxiety",
		"test anxiety breathing exercises",
		"concentration music for studying",
	},
	"work": {
		"work stress relief exercises",
		"office relaxation techniques quick",
		"desk meditation for stress",
		"professional burnout recovery",
	},
	"relationships": {
		"relationship stress coping",
		"heartbreak healing meditation",
		"loneliness self care techniques",
		"emotional healing guided meditation",
	},
	"sleep": {
		"sleep meditation deep relaxation",
		"insomnia relief calming music",
		"bedtime relaxation techniques",
		"sleep sounds nature peaceful",
	},
	"anxiety": {
		"anxiety relief breathing exercises",
		"panic attack calm down techniques",
		"grounding exercises anxiety",
		"calming meditation for anxiety",
	},
	"focus": {
		"focus music concentration",
		"productivity meditation adhd",
		"concentration improvement techniques",
		"ambient sounds for focus",
	},
	"overwhelmed": {
		"overwhelm relief quick",
		"stress relief 5 minutes",
		"burnout recovery meditation",
		"instant calm techniques",
	},
	"sadness": {
		"mood lifting meditation",
		"gentle uplifting music",
		"self compassion meditation",
		"healing from sadness guided",
	},
	"anger": {
		"anger management techniques quick",
		"calming down when angry",
		"release frustration healthy ways",
		"cool down meditation anger",
	},
}

var musicQueries = map[string]string{
	"exams":         "study focus music concentration no lyrics",
	"work":          "office relaxation ambient music",
	"sleep":         "deep sleep music relaxing",
	"anxiety":       "calming music anxiety relief",
	"focus":         "focus music productivity ambient",
	"sadness":       "uplifting gentle music mood",
	"anger":         "calming music peace relaxation",
	"overwhelmed":   "stress relief music instant calm",
	"relationships": "emotional healing music peaceful",
}

var (
	negativeWords = []string{"stressed", "anxious", "worried", "scared", "tired", "exhausted",
		"sad", "depressed", "angry", "frustrated", "overwhelmed", "panic",
		"cant", "can't", "unable", "failing", "terrible", "awful", "hate"}
	positiveWords = []string{"better", "good", "happy", "calm", "relaxed", "peaceful",
		"hopeful", "grateful", "thank", "helped", "working"}
)

// 情绪倾向
const (
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentPositive = "positive"
)

// KeywordExtractor 按关键词为压力分类打分
type KeywordExtractor struct{}

// NewKeywordExtractor 创建关键词提取器
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

// Categories 返回所有分类，按同分排序顺序
func (e *KeywordExtractor) Categories() []string {
	names := make([]string, 0, len(stressTriggers))
	for _, c := range stressTriggers {
		names = append(names, c.name)
	}
	return names
}

// Extract 提取消息中最相关的至多3个分类
func (e *KeywordExtractor) Extract(message, emotion string) []string {
	lower := strings.ToLower(message)
	scores := make([]int, len(stressTriggers))

	for i, c := range stressTriggers {
		scores[i] = tierScore(lower, c.tiers.high, weightHigh) +
			tierScore(lower, c.tiers.medium, weightMedium) +
			tierScore(lower, c.tiers.low, weightLow)
	}

	// 情绪加分，原来没有分数的分类直接记为2分
	mapped := emotionCategory[emotion]
	if mapped != "" {
		for i, c := range stressTriggers {
			if c.name == mapped {
				scores[i] += emotionBoost
			}
		}
	}

	ranked := make([]int, 0, len(stressTriggers))
	for i, s := range scores {
		if s > 0 {
			ranked = append(ranked, i)
		}
	}
	if len(ranked) == 0 {
		if mapped != "" {
			return []string{mapped}
		}
		return []string{GeneralStress}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})
	if len(ranked) > maxTopics {
		ranked = ranked[:maxTopics]
	}

	categories := make([]string, len(ranked))
	for i, idx := range ranked {
		categories[i] = stressTriggers[idx].name
	}
	return categories
}

func tierScore(message string, phrases []string, weight int) int {
	score := 0
	for _, p := range phrases {
		if strings.Contains(message, p) {
			score += weight
		}
	}
	return score
}

// BuildSearchQuery 根据首个分类生成搜索词
//
// 未知分类的下划线换成空格，general_stress 生成 "general stress stress relief techniques"，
// 而不是直接拼接原分类名。
func (e *KeywordExtractor) BuildSearchQuery(categories []string) string {
	if len(categories) == 0 {
		return "stress relief techniques meditation"
	}
	if queries, ok := searchQueries[categories[0]]; ok {
		return queries[0]
	}
	return strings.ReplaceAll(categories[0], "_", " ") + " stress relief techniques"
}

// AllQueries 取前两个分类各自的前两个搜索词，去重后最多4个
func (e *KeywordExtractor) AllQueries(categories []string) []string {
	var queries []string
	for i, c := range categories {
		if i == 2 {
			break
		}
		if qs, ok := searchQueries[c]; ok {
			queries = append(queries, qs[:2]...)
		}
	}
	if len(queries) == 0 {
		return []string{"stress relief meditation", "relaxation techniques quick"}
	}

	seen := make(map[string]bool, len(queries))
	unique := queries[:0]
	for _, q := range queries {
		if !seen[q] {
			seen[q] = true
			unique = append(unique, q)
		}
	}
	if len(unique) > 4 {
		unique = unique[:4]
	}
	return unique
}

// MusicQuery 根据首个分类生成音乐搜索词
func (e *KeywordExtractor) MusicQuery(categories []string) string {
	if len(categories) == 0 {
		return "calming relaxation music"
	}
	if q, ok := musicQueries[categories[0]]; ok {
		return q
	}
	return "relaxing stress relief music"
}

// AnalyzeSentiment 粗略判断消息的情绪倾向，返回倾向及强度(0-1)
func (e *KeywordExtractor) AnalyzeSentiment(message string) (string, float64) {
	lower := strings.ToLower(message)
	neg := tierScore(lower, negativeWords, 1)
	pos := tierScore(lower, positiveWords, 1)

	total := neg + pos
	if total == 0 {
		return SentimentNeutral, 0.5
	}

	ratio := float64(neg) / float64(total)
	switch {
	case ratio > 0.6:
		return SentimentNegative, min(1.0, ratio)
	case ratio < 0.4:
		return SentimentPositive, min(1.0, 1-ratio)
	default:
		return SentimentNeutral, 0.5
	}
}

// CacheKey 分类排序去重后用下划线连接作为缓存键
func (e *KeywordExtractor) CacheKey(categories []string) string {
	if len(categories) == 0 {
		return GeneralStress
	}
	seen := make(map[string]bool, len(categories))
	keys := make([]string, 0, len(categories))
	for i, c := range categories {
		if i == maxTopics {
			break
		}
		if c != "" && !seen[c] {
			seen[c] = true
			keys = append(keys, c)
		}
	}
	if len(keys) == 0 {
		return GeneralStress
	}
	sort.Strings(keys)
	return strings.Join(keys, "_")
}
