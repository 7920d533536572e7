package common

import "testing"

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")

	if _, ok := cache.Get("key"); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Delete(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Delete("key")

	if _, ok := cache.Get("key"); ok {
		t.Error("expected key to be deleted")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Flush()

	if _, ok := cache.Get("key"); ok {
		t.Error("expected cache to be flushed")
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKeyLatestArticles("", 6); got != "latest_articles:all:6" {
		t.Errorf("unexpected key: %s", got)
	}

	if got := CacheKeyLatestArticles("news", 4); got != "latest_articles:news:4" {
		t.Errorf("unexpected key: %s", got)
	}

	if got := CacheKeyPopularArticles(30, 10); got != "popular_articles:30:10" {
		t.Errorf("unexpected key: %s", got)
	}

	if got := CacheKeyFeaturedArticles(5); got != "featured_articles:5" {
		t.Errorf("unexpected key: %s", got)
	}
}
