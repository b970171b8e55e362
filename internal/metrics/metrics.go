package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Economy Metrics
var (
	ContainersOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContainersOpened,
			Help: HelpTextContainersOpened,
		},
		[]string{LabelKind},
	)

	Settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlements,
			Help: HelpTextSettlements,
		},
		[]string{LabelOutcome},
	)

	SettlementsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSettlementsPending,
			Help: HelpTextSettlementsPending,
		},
	)

	Upgrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpgrades,
			Help: HelpTextUpgrades,
		},
		[]string{LabelResult},
	)

	Transfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransfers,
			Help: HelpTextTransfers,
		},
		[]string{LabelResult},
	)

	TransferRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTransferRetries,
			Help: HelpTextTransferRetries,
		},
	)

	Claims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaims,
			Help: HelpTextClaims,
		},
		[]string{LabelResult},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelKind},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
	)

	MoneyPaidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneyPaidOut,
			Help: HelpTextMoneyPaidOut,
		},
		[]string{LabelSource},
	)
)

// Catalog Metrics
var (
	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogRefreshes,
			Help: HelpTextCatalogRefreshes,
		},
		[]string{LabelResult},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogVersion,
			Help: HelpTextCatalogVersion,
		},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogItems,
			Help: HelpTextCatalogItems,
		},
	)
)
