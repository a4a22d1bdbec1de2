package bucketstore

import (
	"context"
	"errors"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/pkg/limiter"
	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// ErrNoSuchBucket is when a Bucket was requested that does not exist.
// Use CreateWaitForBucket to create a bucket if it does not exist.
var ErrNoSuchBucket = errors.New("bucket does not exist, use CreateWaitForBucket instead")

// BucketStore is used for managing various limiters
type BucketStore struct {
	buckets *csmap.CsMap[string, *limiter.DurationLimiter]
}

// NewBucketStore creates a new Buckets map to store different limits
func NewBucketStore() *BucketStore {
	return &BucketStore{
		buckets: csmap.Create(
			csmap.WithSize[string, *limiter.DurationLimiter](32),
		),
	}
}

// CreateBucket will create a new bucket or overwrite
func (bs *BucketStore) CreateBucket(name string, limit int32, duration time.Duration) *limiter.DurationLimiter {
	bucket := limiter.NewDurationLimiter(name, limit, duration)
	bs.buckets.Store(name, bucket)

	return bucket
}

// WaitForBucket will wait for a bucket to be ready
func (bs *BucketStore) WaitForBucket(ctx context.Context, name string) error {
	bucket, exists := bs.buckets.Load(name)
	if !exists {
		return ErrNoSuchBucket
	}

	return bucket.Wait(ctx)
}

// CreateWaitForBucket will create a bucket if it does not exist and then will wait
// for it.
func (bs *BucketStore) CreateWaitForBucket(ctx context.Context, name string, limit int32, duration time.Duration) error {
	bucket, exists := bs.buckets.Load(name)
	if !exists {
		bs.buckets.SetIfAbsent(name, limiter.NewDurationLimiter(name, limit, duration))
		bucket, _ = bs.buckets.Load(name)
	}

	return bucket.Wait(ctx)
}

// UpdateBucket applies the remaining count and reset of a bucket. Unknown
// buckets are ignored.
func (bs *BucketStore) UpdateBucket(name string, remaining int32, resetAfter time.Duration) {
	if bucket, ok := bs.buckets.Load(name); ok {
		bucket.Update(remaining, resetAfter)
	}
}

// Count returns how many buckets exist.
func (bs *BucketStore) Count() int {
	return bs.buckets.Count()
}
