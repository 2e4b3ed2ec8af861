package value

import (
	"sync"

	"github.com/dop251/goja/unistring"
	"github.com/golang/groupcache/lru"
)

const (
	minCachedLength = 2
	maxCachedLength = 10

	DefaultStringCacheSize = 4096
)

var stringCache = struct {
	sync.Mutex
	entries *lru.Cache
}{entries: lru.New(DefaultStringCacheSize)}

func cachedString(u unistring.String) *String {
	stringCache.Lock()
	defer stringCache.Unlock()

	if s, ok := stringCache.entries.Get(u); ok {
		return s.(*String)
	}
	s := &String{flat: u}
	stringCache.entries.Add(u, s)
	return s
}

// SetStringCacheSize replaces the short-string cache with an empty one holding
// at most size entries. A size of zero or less disables caching limits.
func SetStringCacheSize(size int) {
	if size < 0 {
		size = 0
	}
	stringCache.Lock()
	defer stringCache.Unlock()
	stringCache.entries = lru.New(size)
}

// StringCacheLen returns the number of cached short strings.
func StringCacheLen() int {
	stringCache.Lock()
	defer stringCache.Unlock()
	return stringCache.entries.Len()
}
