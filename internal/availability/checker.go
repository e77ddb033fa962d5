// Package availability answers signup-time username and firm-name
// availability questions against the upstream API, memoizing every answer so
// repeated checks of the same value never hit the network twice.
package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

const suggestAttempts = 5

var ErrValueRequired = errors.New("value is required")

// UpstreamChecker is the slice of the brokerage API this package needs.
type UpstreamChecker interface {
	CheckUsername(ctx context.Context, value string) (bool, error)
	CheckFirmName(ctx context.Context, value string) (bool, error)
}

// Cache memoizes check results keyed by normalized input, scoped to the
// lifetime of the checker it is handed to. It is an explicit dependency, not
// ambient state, so callers control its scope.
type Cache struct {
	mu      sync.Mutex
	results map[string]bool
}

func NewCache() *Cache {
	return &Cache{results: map[string]bool{}}
}

func (c *Cache) get(key string) (available bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	available, ok = c.results[key]
	return available, ok
}

func (c *Cache) put(key string, available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = available
}

// Checker wraps the upstream checks with memoization and request collapsing:
// concurrent checks of the same normalized value share one upstream call.
type Checker struct {
	upstream  UpstreamChecker
	usernames *Cache
	firmNames *Cache
	group     singleflight.Group
}

func NewChecker(upstream UpstreamChecker, usernames *Cache, firmNames *Cache) *Checker {
	return &Checker{
		upstream:  upstream,
		usernames: usernames,
		firmNames: firmNames,
	}
}

func (c *Checker) CheckUsername(ctx context.Context, value string) (bool, error) {
	return c.check(ctx, "username", c.usernames, value, c.upstream.CheckUsername)
}

func (c *Checker) CheckFirmName(ctx context.Context, value string) (bool, error) {
	return c.check(ctx, "firm", c.firmNames, value, c.upstream.CheckFirmName)
}

func (c *Checker) check(ctx context.Context, kind string, cache *Cache, value string, fn func(context.Context, string) (bool, error)) (bool, error) {
	normalized := Normalize(value)
	if normalized == "" {
		return false, ErrValueRequired
	}

	if available, ok := cache.get(normalized); ok {
		return available, nil
	}

	result, err, _ := c.group.Do(kind+":"+normalized, func() (any, error) {
		if available, ok := cache.get(normalized); ok {
			return available, nil
		}
		available, err := fn(ctx, normalized)
		if err != nil {
			return false, err
		}
		cache.put(normalized, available)
		return available, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// SuggestUsername tries base, then base1..base4, returning the first
// available candidate. Five attempts total; after that the caller gets an
// error and picks manually.
func (c *Checker) SuggestUsername(ctx context.Context, base string) (string, error) {
	normalized := Normalize(base)
	if normalized == "" {
		return "", ErrValueRequired
	}

	for attempt := 0; attempt < suggestAttempts; attempt++ {
		candidate := normalized
		if attempt > 0 {
			candidate = fmt.Sprintf("%s%d", normalized, attempt)
		}
		available, err := c.CheckUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no available username found for %q after %d attempts", normalized, suggestAttempts)
}

func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
