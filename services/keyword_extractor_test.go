package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFinals(t *testing.T) {
	e := NewKeywordExtractor()
	assert.Equal(t, []string{"exams"}, e.Extract("I have finals next week", ""))
}

func TestExtractHighTierPhraseRanksFirst(t *testing.T) {
	e := NewKeywordExtractor()
	for _, c := range stressTriggers {
		for _, phrase := range c.tiers.high {
			got := e.Extract(phrase, "")
			if assert.NotEmpty(t, got, phrase) {
				assert.Equal(t, c.name, got[0], "phrase %q", phrase)
			}
		}
	}
}

func TestExtractEmptyMessage(t *testing.T) {
	e := NewKeywordExtractor()
	assert.Equal(t, []string{GeneralStress}, e.Extract("", ""))
	assert.Equal(t, []string{"sleep"}, e.Extract("", "tired"))
	assert.Equal(t, []string{GeneralStress}, e.Extract("", "neutral"))
	assert.Equal(t, []string{GeneralStress}, e.Extract("", "bored"))
}

func TestExtractEmotionBoost(t *testing.T) {
	e := NewKeywordExtractor()
	// exams scores 3 from "exam", anxiety scores 2 from "anxious" plus 2 from the emotion
	assert.Equal(t, []string{"anxiety", "exams"}, e.Extract("I'm so anxious about my exam", "anxious"))
	assert.Equal(t, []string{"exams", "anxiety"}, e.Extract("I'm so anxious about my exam", ""))
	// emotion seeds a category that the text never mentions
	assert.Equal(t, []string{"exams", "anger"}, e.Extract("exam tomorrow", "angry"))
}

func TestExtractTiesFollowTableOrder(t *testing.T) {
	e := NewKeywordExtractor()
	assert.Equal(t, []string{"exams", "work"}, e.Extract("my boss and my exam", ""))
	assert.Equal(t, []string{"exams", "work"}, e.Extract("my exam and my boss", ""))
}

func TestExtractReturnsAtMostThree(t *testing.T) {
	e := NewKeywordExtractor()
	got := e.Extract("boss exam insomnia panic attack breakup", "")
	assert.Equal(t, []string{"anxiety", "exams", "work"}, got)
}

func TestExtractAccumulatesTiers(t *testing.T) {
	e := NewKeywordExtractor()
	// "studying" hits the high tier and, through "study", the medium tier as well
	got := e.Extract("Studying for my EXAM at school, my boss is fine", "")
	assert.Equal(t, []string{"exams", "work"}, got)
}

func TestBuildSearchQuery(t *testing.T) {
	e := NewKeywordExtractor()
	assert.Equal(t, "sleep meditation deep relaxation", e.BuildSearchQuery([]string{"sleep", "exams"}))
	assert.Equal(t, "stress relief techniques meditation", e.BuildSearchQuery(nil))
	assert.Equal(t, "general stress stress relief techniques", e.BuildSearchQuery([]string{GeneralStress}))
}

func TestAllQueries(t *testing.T) {
	e := NewKeywordExtractor()
	assert.Equal(t, []string{
		"exam stress relief meditation",
		"study focus techniques anxiety",
		"work stress relief exercises",
		"office relaxation techniques quick",
	}, e.AllQueries([]string{"exams", "work", "sleep"}))
	assert.Equal(t, []string{"stress relief meditation", "relaxation techniques quick"}, e.AllQueries([]string{GeneralStress}))
	assert.Len(t, e.AllQueries([]string{"anger", "anger"}), 2)
}

func TestMusicQuery(t *testing.T) {
	e := NewKeywordExtractor()
	assert.Equal(t, "study focus music concentration no lyrics", e.MusicQuery([]string{"exams"}))
	assert.Equal(t, "relaxing stress relief music", e.MusicQuery([]string{GeneralStress}))
	assert.Equal(t, "calming relaxation music", e.MusicQuery(nil))
}

func TestAnalyzeSentiment(t *testing.T) {
	e := NewKeywordExtractor()

	label, intensity := e.AnalyzeSentiment("I feel calm and happy")
	assert.Equal(t, SentimentPositive, label)
	assert.InDelta(t, 1.0, intensity, 1e-9)

	label, intensity = e.AnalyzeSentiment("tired and sad but better")
	assert.Equal(t, SentimentNegative, label)
	assert.InDelta(t, 2.0/3.0, intensity, 1e-9)

	label, intensity = e.AnalyzeSentiment("stressed but good")
	assert.Equal(t, SentimentNeutral, label)
	assert.InDelta(t, 0.5, intensity, 1e-9)

	label, intensity = e.AnalyzeSentiment("hello")
	assert.Equal(t, SentimentNeutral, label)
	assert.InDelta(t, 0.5, intensity, 1e-9)
}

func TestCacheKey(t *testing.T) {
	e := NewKeywordExtractor()
	assert.Equal(t, "exams_sleep", e.CacheKey([]string{"sleep", "exams", "sleep"}))
	assert.Equal(t, "anxiety_exams_work", e.CacheKey([]string{"work", "exams", "anxiety"}))
	assert.Equal(t, GeneralStress, e.CacheKey(nil))
	assert.Equal(t, e.CacheKey([]string{"work", "exams"}), e.CacheKey([]string{"exams", "work"}))
}
