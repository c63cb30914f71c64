package usecase

import (
	"context"
	"time"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/logger"
)

const detectionKeyPrefix = "detect:"

// CachedDetector memoizes another detector by folded text.
type CachedDetector struct {
	next  domain.Detector
	cache domain.DetectionCache
	ttl   time.Duration
	log   logger.Logger
}

// NewCachedDetector wraps next with cache. A zero ttl defaults to one hour.
func NewCachedDetector(next domain.Detector, cache domain.DetectionCache, ttl time.Duration, log logger.Logger) *CachedDetector {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedDetector{next: next, cache: cache, ttl: ttl, log: log}
}

// Detect returns the cached detection for text, computing and storing it on a miss.
// Cache errors never fail detection.
func (d *CachedDetector) Detect(ctx context.Context, text string) domain.Detection {
	if domain.IsBlank(text) {
		return domain.Detection{}
	}

	key := detectionKeyPrefix + FoldText(text)
	if det, err := d.cache.Get(ctx, key); err == nil {
		return det
	}

	det := d.next.Detect(ctx, text)
	if err := d.cache.Set(ctx, key, det, d.ttl); err != nil {
		d.log.Warn("failed to cache detection", logger.Err(err))
	}
	return det
}
