// File: utils/constants.go
package utils

import "time"

// MonthCachePrefix is the prefix of cached month-availability entries.
const MonthCachePrefix = "availability:month:"

// MonthCacheTTL is how long a cached month-availability answer is served.
const MonthCacheTTL = 60 * time.Second

// DateLockPrefix is the prefix of per-date booking locks.
const DateLockPrefix = "lock:booking:"

// DateLockTTL bounds how long a crashed writer can hold a date. It must exceed
// the duration lookup, the busy-source fetches and the insert run back to back.
const DateLockTTL = 30 * time.Second
