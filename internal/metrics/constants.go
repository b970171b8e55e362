package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Economy metric names
const (
	MetricNameContainersOpened   = "containers_opened_total"
	MetricNameSettlements        = "settlements_finalized_total"
	MetricNameSettlementsPending = "settlements_pending"
	MetricNameUpgrades           = "upgrades_total"
	MetricNameTransfers          = "transfers_total"
	MetricNameTransferRetries    = "transfer_retries_total"
	MetricNameClaims             = "claims_total"
	MetricNameItemsSold          = "items_sold_total"
	MetricNameMoneySpent         = "money_spent_minor_units_total"
	MetricNameMoneyPaidOut       = "money_paid_out_minor_units_total"
)

// Catalog metric names
const (
	MetricNameCatalogRefreshes = "catalog_refreshes_total"
	MetricNameCatalogVersion   = "catalog_snapshot_version"
	MetricNameCatalogItems     = "catalog_items"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Economy metric help text
const (
	HelpTextContainersOpened   = "Total number of containers opened"
	HelpTextSettlements        = "Total number of settlement sessions finalized"
	HelpTextSettlementsPending = "Settlement sessions with a scheduled deadline"
	HelpTextUpgrades           = "Total number of upgrade attempts"
	HelpTextTransfers          = "Total number of balance transfers"
	HelpTextTransferRetries    = "Serializable transfer retries after a conflict"
	HelpTextClaims             = "Total number of daily claim attempts"
	HelpTextItemsSold          = "Total number of inventory items sold"
	HelpTextMoneySpent         = "Balance spent opening containers"
	HelpTextMoneyPaidOut       = "Balance credited from sales, refunds and claims"
)

// Catalog metric help text
const (
	HelpTextCatalogRefreshes = "Total number of catalog refresh attempts"
	HelpTextCatalogVersion   = "Version of the active catalog snapshot"
	HelpTextCatalogItems     = "Number of entries in the active catalog snapshot"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
	LabelResult  = "result"
	LabelSource  = "source"
)

// Result label values
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Payout source label values
const (
	SourceSettlement = "settlement"
	SourceSale       = "sale"
	SourceClaim      = "claim"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
