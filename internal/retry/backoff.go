// Package retry wraps a unit of work in a tracked job and retries it with
// exponential backoff.
package retry

import (
	"math"
	"time"
)

// Defaults used when a policy leaves a field unset
const (
	DefaultLimit     = 3
	DefaultBaseDelay = time.Second
)

// Delay returns the backoff before the attempt that follows a failed attempt
// n (1-indexed): base * 2^(n-1). There is no jitter. A result that does not
// fit in a Duration saturates at math.MaxInt64.
func Delay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if base <= 0 {
		return base
	}
	shift := attempt - 1
	if shift >= 63 || base > time.Duration(math.MaxInt64>>shift) {
		return time.Duration(math.MaxInt64)
	}
	return base << shift
}
