package domain

import (
	"context"
	"time"
)

// DetectionCache defines the interface for memoizing detections by normalized text
type DetectionCache interface {
	Get(ctx context.Context, key string) (Detection, error)
	Set(ctx context.Context, key string, value Detection, ttl time.Duration) error
}

// Detector finds category signals in free text
type Detector interface {
	Detect(ctx context.Context, text string) Detection
}

// Standardizer maps raw labels onto the canonical vocabulary
type Standardizer interface {
	Standardize(label string) Label
}

// BatchRecorder receives every processed batch (metrics)
type BatchRecorder interface {
	RecordBatch(batch *Batch, duration time.Duration)
}
