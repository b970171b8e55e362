package naming

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Resolver maps user supplied names onto catalog identifiers
type Resolver interface {
	// Resolve normalizes name and reports whether it is a known identifier
	Resolve(name string) (key string, ok bool)

	// DisplayName returns the registered display name for key, or key itself
	DisplayName(key string) string

	// Suggest returns up to limit display names whose identifier starts with prefix
	Suggest(prefix string, limit int) []string

	// Load replaces the registered names. Keys are identifiers, values display names.
	Load(names map[string]string)
}

type resolver struct {
	mu sync.RWMutex

	// identifier -> display name
	display map[string]string

	// identifiers in ascending order for prefix scans
	sorted []string

	// generation is bumped on every Load so stale suggestions never match
	generation uint64

	suggestions *expirable.LRU[string, []string]
}

// NewResolver creates an empty resolver with a suggestion cache
func NewResolver(cacheSize int, ttl time.Duration) Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultSuggestCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultSuggestCacheTTL
	}
	return &resolver{
		display:     make(map[string]string),
		suggestions: expirable.NewLRU[string, []string](cacheSize, nil, ttl),
	}
}

func (r *resolver) Load(names map[string]string) {
	display := make(map[string]string, len(names))
	sorted := make([]string, 0, len(names))
	for key, name := range names {
		display[key] = name
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	r.mu.Lock()
	r.display = display
	r.sorted = sorted
	r.generation++
	r.mu.Unlock()

	r.suggestions.Purge()
}

func (r *resolver) Resolve(name string) (string, bool) {
	key := Normalize(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.display[key]
	return key, ok
}

func (r *resolver) DisplayName(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.display[key]; ok {
		return name
	}
	return key
}

func (r *resolver) Suggest(prefix string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	folded := Normalize(prefix)

	r.mu.RLock()
	gen := r.generation
	r.mu.RUnlock()

	cacheKey := strconv.FormatUint(gen, 10) + ":" + strconv.Itoa(limit) + ":" + folded
	if cached, ok := r.suggestions.Get(cacheKey); ok {
		return cached
	}

	r.mu.RLock()
	start := sort.SearchStrings(r.sorted, folded)
	out := make([]string, 0, limit)
	for i := start; i < len(r.sorted) && len(out) < limit; i++ {
		if !strings.HasPrefix(r.sorted[i], folded) {
			break
		}
		out = append(out, r.display[r.sorted[i]])
	}
	r.mu.RUnlock()

	r.suggestions.Add(cacheKey, out)
	return out
}
