package scraper

import (
	"strings"

	"serenity/models"
	"serenity/utils"
)

func youtubeItem(id, title, duration, views, category string) models.ContentItem {
	return models.ContentItem{
		ID:        id,
		Title:     title,
		Thumbnail: thumbnailURL(id),
		URL:       watchURL(id),
		EmbedURL:  embedURL(id),
		Duration:  duration,
		Views:     views,
		Source:    "YouTube",
		Type:      models.ContentTypeVideo,
		Category:  category,
	}
}

func musicItem(id, title, artist, duration, category string) models.ContentItem {
	item := youtubeItem(id, title, duration, "", category)
	item.Artist = artist
	item.Source = musicSource
	item.Type = models.ContentTypeMusic
	return item
}

func articleItem(title, url, snippet, source, category string) models.ContentItem {
	return models.ContentItem{
		ID:       utils.ContentID(url),
		Title:    title,
		URL:      url,
		Snippet:  snippet,
		Source:   source,
		Type:     models.ContentTypeArticle,
		Category: category,
	}
}

var fallbackVideos = []models.ContentItem{
	youtubeItem("inpok4MKVLM", "5-Minute Meditation You Can Do Anywhere", "5:31", "20M+ views", "general"),
	youtubeItem("ZToicYcHIOU", "10-Minute Guided Meditation for Anxiety", "10:02", "15M+ views", "anxiety"),
	youtubeItem("tEmt1Znux58", "Breathing Exercises for Stress Relief", "6:45", "8M+ views", "anxiety"),
	youtubeItem("O-6f5wQXSu8", "Progressive Muscle Relaxation for Deep Calm", "15:00", "5M+ views", "sleep"),
	youtubeItem("DbDoBzGY3vo", "Quick Stress Relief - 3 Minute Technique", "3:22", "3M+ views", "overwhelmed"),
	youtubeItem("sYWocLhPpFQ", "Study Focus Music - Concentration Boost", "1:00:00", "12M+ views", "exams"),
	youtubeItem("jPpUNAFHgxM", "Guided Sleep Meditation for Insomnia", "20:00", "10M+ views", "sleep"),
	youtubeItem("Jyy0ra2WcQQ", "Work Stress Relief - Office Meditation", "8:00", "2M+ views", "work"),
}

var fallbackMusic = []models.ContentItem{
	musicItem("5qap5aO4i9A", "Relaxing Piano Music - Stress Relief", "Soothing Relaxation", "3:00:00", "general"),
	musicItem("lFcSrYw-ARY", "Deep Sleep Music - Calm Relaxation", "Yellow Brick Cinema", "8:00:00", "sleep"),
	musicItem("hlWiI4xVXKY", "Study Music Alpha Waves - Focus", "Quiet Quest", "2:00:00", "exams"),
	musicItem("DWcJFNfaw9c", "Nature Sounds - Forest Birds", "Relaxing White Noise", "10:00:00", "anxiety"),
	musicItem("lTRiuFIWV54", "Lofi Hip Hop - Beats to Study/Relax", "ChilledCow", "1:30:00", "focus"),
	musicItem("77ZozI0rw7w", "Calming Anxiety Relief Music", "Meditation Sounds", "1:00:00", "anxiety"),
}

var fallbackArticles = []models.ContentItem{
	articleItem("16 Simple Ways to Relieve Stress and Anxiety",
		"https://www.healthline.com/nutrition/16-ways-relieve-stress-anxiety",
		"Chronic stress can take a toll on your health. Here are 16 evidence-based ways to relieve stress naturally, from exercise to mindfulness.",
		"Healthline", "general"),
	articleItem("Stress Management: Techniques & Strategies",
		"https://www.verywellmind.com/stress-management-4157211",
		"Learn effective stress management techniques including relaxation methods, time management, and lifestyle changes that can help you handle pressure.",
		"Verywell Mind", "work"),
	articleItem("How to Deal with Test Anxiety",
		"https://www.verywellmind.com/tips-on-coping-with-test-anxiety-2795366",
		"Test anxiety can significantly impact your performance. Learn proven strategies to manage exam stress and perform at your best.",
		"Verywell Mind", "exams"),
	articleItem("How to Calm Anxiety: 12 Ways to Quiet Your Mind",
		"https://www.healthline.com/health/mental-health/how-to-calm-anxiety",
		"Anxiety can feel overwhelming but there are effective ways to find calm. Discover breathing exercises, grounding techniques, and more.",
		"Healthline", "anxiety"),
	articleItem("Sleep and Stress: What's the Connection?",
		"https://www.sleepfoundation.org/mental-health/stress-and-sleep",
		"Understanding the bidirectional relationship between sleep and stress, and practical strategies to improve both for better health.",
		"Sleep Foundation", "sleep"),
	articleItem("Feeling Overwhelmed? 10 Ways to Regain Control",
		"https://www.psychologytoday.com/us/blog/click-here-happiness/201901/10-ways-stop-feeling-overwhelmed",
		"When life feels like too much, these practical steps can help you break free from overwhelm and regain a sense of control.",
		"Psychology Today", "overwhelmed"),
}

// FallbackVideos 按查询词筛选的精选视频
func FallbackVideos(query string, max int) []models.ContentItem {
	return filterFallback(fallbackVideos, query, max)
}

// FallbackMusic 按查询词筛选的精选音乐
func FallbackMusic(query string, max int) []models.ContentItem {
	return filterFallback(fallbackMusic, query, max)
}

// FallbackArticles 按查询词筛选的精选文章
func FallbackArticles(query string, max int) []models.ContentItem {
	return filterFallback(fallbackArticles, query, max)
}

// FallbackBundle 没有任何分类信息时的默认推荐：3个视频、3首音乐、1篇文章
func FallbackBundle() models.RecommendationBundle {
	return models.RecommendationBundle{
		Videos:   cloneItems(fallbackVideos[:3]),
		Music:    cloneItems(fallbackMusic[:3]),
		Articles: cloneItems(fallbackArticles[:1]),
	}
}

// filterFallback 标题包含任一查询词的条目，全部不匹配时使用整个列表
func filterFallback(items []models.ContentItem, query string, max int) []models.ContentItem {
	words := strings.Fields(strings.ToLower(query))

	var matched []models.ContentItem
	for _, item := range items {
		title := strings.ToLower(item.Title)
		for _, w := range words {
			if strings.Contains(title, w) {
				matched = append(matched, item)
				break
			}
		}
	}
	if len(matched) == 0 {
		matched = items
	}
	if max > 0 && len(matched) > max {
		matched = matched[:max]
	}
	return cloneItems(matched)
}

func cloneItems(items []models.ContentItem) []models.ContentItem {
	return append([]models.ContentItem(nil), items...)
}
