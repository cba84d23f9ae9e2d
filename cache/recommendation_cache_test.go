package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serenity/models"
)

func bundle(id string) models.RecommendationBundle {
	return models.RecommendationBundle{
		Videos: []models.ContentItem{{ID: id, Title: "video " + id, Type: models.ContentTypeVideo}},
	}
}

func TestSetThenGet(t *testing.T) {
	c := New(10, time.Hour)
	require.True(t, c.Set("exams_sleep", bundle("a")))

	got, ok := c.Get("exams_sleep")
	require.True(t, ok)
	assert.Equal(t, "a", got.Videos[0].ID)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestSetRejectsEmptyKey(t *testing.T) {
	c := New(10, time.Hour)
	assert.False(t, c.Set("", bundle("a")))
	assert.Equal(t, 0, c.Stats().Size)
}

func TestEntryExpires(t *testing.T) {
	c := New(10, 50*time.Millisecond)
	c.Set("work", bundle("w"))

	_, ok := c.Get("work")
	require.True(t, ok)

	time.Sleep(120 * time.Millisecond)
	_, ok = c.Get("work")
	assert.False(t, ok)
	assert.NotContains(t, c.Keys(), "work")
}

func TestStatsAndKeysSkipExpiredEntries(t *testing.T) {
	c := New(10, 30*time.Millisecond)
	c.Set("a", bundle("a"))
	c.Set("b", bundle("b"))
	require.Equal(t, 2, c.Stats().Size)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, c.Stats().Size)
	assert.Empty(t, c.Keys())
}

func TestCapacityEvictsOldestInserted(t *testing.T) {
	c := New(3, time.Hour)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), bundle(fmt.Sprint(i)))
	}
	// reading k0 must not protect it from eviction
	_, ok := c.Get("k0")
	require.True(t, ok)

	c.Set("k3", bundle("3"))

	_, ok = c.Get("k0")
	assert.False(t, ok)
	assert.Equal(t, []string{"k1", "k2", "k3"}, c.Keys())
}

func TestNeverExceedsMaxSize(t *testing.T) {
	c := New(5, time.Hour)
	for i := 0; i < 50; i++ {
		c.Set(fmt.Sprintf("key-%d", i), bundle("x"))
		assert.LessOrEqual(t, c.Stats().Size, 5)
	}
}

func TestClearAndStats(t *testing.T) {
	c := New(0, 0)
	c.Set("a", bundle("a"))
	c.Set("b", bundle("b"))

	stats := c.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, DefaultMaxSize, stats.MaxSize)
	assert.Equal(t, 86400, stats.TTL)

	c.Clear()
	assert.Equal(t, 0, c.Stats().Size)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(20, time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n*j)%30)
				c.Set(key, bundle(key))
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Stats().Size, 20)
}
