package services

import (
	"context"

	"serenity/models"
)

// ContentSource 推荐内容来源接口
//
// Fetch 不返回错误，失败时由实现方返回备用内容。
type ContentSource interface {
	// 来源名称，用于日志和指标
	Name() string

	// 按查询词获取最多max条内容
	Fetch(ctx context.Context, query string, max int) []models.ContentItem
}

// BundleCache 推荐结果缓存接口
type BundleCache interface {
	Get(key string) (models.RecommendationBundle, bool)
	Set(key string, bundle models.RecommendationBundle) bool
}
