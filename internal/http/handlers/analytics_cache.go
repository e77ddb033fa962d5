package handlers

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type analyticsCacheEntry struct {
	value     any
	expiresAt time.Time
}

const analyticsCacheMaxEntries = 200

var (
	analyticsCacheMu sync.Mutex
	analyticsCache   = map[string]analyticsCacheEntry{}
)

func analyticsCacheKey(prefix string, parts ...int64) string {
	segments := make([]string, 0, 1+len(parts))
	segments = append(segments, prefix)
	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}
	return strings.Join(segments, "|")
}

func getAnalyticsCache(key string) (any, bool) {
	analyticsCacheMu.Lock()
	defer analyticsCacheMu.Unlock()

	entry, ok := analyticsCache[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(analyticsCache, key)
		return nil, false
	}
	return entry.value, true
}

func setAnalyticsCache(key string, value any, ttl time.Duration) {
	analyticsCacheMu.Lock()
	defer analyticsCacheMu.Unlock()

	analyticsCache[key] = analyticsCacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	if len(analyticsCache) > analyticsCacheMaxEntries {
		analyticsCache = map[string]analyticsCacheEntry{}
	}
}

func resetAnalyticsCache() {
	analyticsCacheMu.Lock()
	defer analyticsCacheMu.Unlock()
	analyticsCache = map[string]analyticsCacheEntry{}
}
