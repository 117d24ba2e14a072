// Package match evaluates a Rule's Conditions against a file's Facts.
// It performs no I/O beyond what Facts already lazily provides; regex
// and glob patterns are compiled once and cached by pattern string in
// a process-wide, write-once-after-init store.
package match

import (
	"regexp"
	"sync"
	"time"

	"github.com/gobwas/glob"
)

var (
	regexCacheMu sync.RWMutex
	regexCache   = map[string]*regexp.Regexp{}

	globCacheMu sync.RWMutex
	globCache   = map[string]glob.Glob{}
)

// compiledRegex returns the cached *regexp.Regexp for pattern,
// compiling and caching it on first use. Patterns are validated at
// rule-load time, so a compile error here should not occur in
// practice; callers treat it as "no match" rather than propagating an
// error mid-sort.
func compiledRegex(pattern string) (*regexp.Regexp, bool) {
	regexCacheMu.RLock()
	re, ok := regexCache[pattern]
	regexCacheMu.RUnlock()
	if ok {
		return re, true
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}

	regexCacheMu.Lock()
	regexCache[pattern] = compiled
	regexCacheMu.Unlock()
	return compiled, true
}

// compiledGlob mirrors compiledRegex for glob patterns.
func compiledGlob(pattern string) (glob.Glob, bool) {
	globCacheMu.RLock()
	g, ok := globCache[pattern]
	globCacheMu.RUnlock()
	if ok {
		return g, true
	}

	compiled, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, false
	}

	globCacheMu.Lock()
	globCache[pattern] = compiled
	globCacheMu.Unlock()
	return compiled, true
}

// dateSentinels caches the min/max timestamps used when only one
// bound of a date range is given, avoiding reallocation per call.
var (
	dateSentinelsOnce sync.Once
	minDate, maxDate  time.Time
)

func dateBounds() (time.Time, time.Time) {
	dateSentinelsOnce.Do(func() {
		minDate = time.Unix(0, 0).UTC()
		maxDate = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	})
	return minDate, maxDate
}
