package service

import (
	"coachpro_backend/internal/util"
	"context"
	"time"
)

// Every datastore call runs under a bounded deadline; expiry surfaces as a
// retryable error rather than blocking the request.
var storeTimeout = 5 * time.Second

// SetStoreTimeout overrides the per-statement deadline, normally from
// database.timeout_seconds. Non-positive values are ignored.
func SetStoreTimeout(d time.Duration) {
	if d > 0 {
		storeTimeout = d
	}
}

func storeCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, storeTimeout)
}

// withRetry runs fn up to attempts times, retrying only transient store
// failures with a short backoff.
func withRetry(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !util.IsTransient(err) {
			return err
		}
		time.Sleep(time.Duration(i+1) * 50 * time.Millisecond)
	}
	return err
}
