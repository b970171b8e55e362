package catalog

import "time"

// Feed file names and schema identifiers
const (
	ItemsFileName      = "items.json"
	ContainersFileName = "containers.json"

	SchemaItems      = "spacecases-items"
	SchemaContainers = "spacecases-containers"
)

// Refresh defaults
const (
	DefaultRefreshSpec = "@every 15m"
	DefaultHTTPTimeout = 30 * time.Second
	MaxFeedBytes       = 64 << 20

	DefaultWatchDebounce = 500 * time.Millisecond
)

// Log messages
const (
	LogMsgCatalogRefreshed      = "Catalog refreshed"
	LogMsgCatalogRefreshFailed  = "Catalog refresh failed"
	LogMsgCatalogRefreshStarted = "Catalog refresh scheduled"
	LogMsgCatalogRefresherStop  = "Catalog refresher stopped"
	LogMsgCatalogWatchStarted   = "Watching catalog directory"
	LogMsgCatalogWatchError     = "Catalog watcher error"
)
