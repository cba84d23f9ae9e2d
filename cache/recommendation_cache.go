// Package cache 推荐结果缓存，带容量上限和过期时间
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"serenity/logger"
	"serenity/models"
)

// 默认容量和过期时间
const (
	DefaultMaxSize = 100
	DefaultTTL     = 24 * time.Hour
)

// RecommendationCache 推荐结果缓存
//
// 读取使用Peek，不会刷新条目的新旧顺序，满容量时淘汰最早写入的条目。
type RecommendationCache struct {
	mu      sync.Mutex
	lru     *expirable.LRU[string, models.RecommendationBundle]
	maxSize int
	ttl     time.Duration
}

// New 创建缓存，非正数参数使用默认值
func New(maxSize int, ttl time.Duration) *RecommendationCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RecommendationCache{
		lru:     expirable.NewLRU[string, models.RecommendationBundle](maxSize, nil, ttl),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get 读取缓存，过期条目视为不存在并被清除
func (c *RecommendationCache) Get(key string) (models.RecommendationBundle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bundle, ok := c.lru.Peek(key)
	if !ok {
		// 过期条目可能还未被后台清理
		c.lru.Remove(key)
		logger.Debug("cache miss", "key", key)
		return models.RecommendationBundle{}, false
	}
	logger.Debug("cache hit", "key", key)
	return bundle, true
}

// Set 写入缓存
func (c *RecommendationCache) Set(key string, bundle models.RecommendationBundle) bool {
	if key == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if evicted := c.lru.Add(key, bundle); evicted {
		logger.Debug("cache full, evicted oldest entry", "key", key)
	}
	return true
}

// Clear 清空缓存
func (c *RecommendationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Keys 返回未过期的键，从旧到新
func (c *RecommendationCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeExpired()
	return c.lru.Keys()
}

// Stats 返回缓存统计
func (c *RecommendationCache) Stats() models.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeExpired()
	return models.CacheStats{
		Size:    len(c.lru.Keys()),
		MaxSize: c.maxSize,
		TTL:     int(c.ttl / time.Second),
	}
}

// purgeExpired 清除已过期但尚未被后台清理的条目，调用方需持有c.mu
func (c *RecommendationCache) purgeExpired() {
	for _, key := range c.lru.Keys() {
		if _, ok := c.lru.Peek(key); !ok {
			c.lru.Remove(key)
		}
	}
}
