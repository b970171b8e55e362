package naming

import "time"

// Suggestion cache sizing
const (
	DefaultSuggestCacheSize = 1024
	DefaultSuggestCacheTTL  = 5 * time.Minute
	DefaultSuggestLimit     = 25
)
