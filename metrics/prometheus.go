package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all vault metrics.
type Collector struct {
	// Staking pool metrics
	StakesTotal          *prometheus.CounterVec
	StakeVolume          *prometheus.CounterVec
	PoolStaked           *prometheus.GaugeVec
	PoolCapacity         *prometheus.GaugeVec
	PoolRewardsFunded    *prometheus.GaugeVec
	PoolRewardsPromised  *prometheus.GaugeVec
	UnstakesTotal        *prometheus.CounterVec
	StakePayouts         *prometheus.CounterVec

	// Piggy metrics
	PiggiesTotal         *prometheus.CounterVec
	PiggyVolume          prometheus.Counter
	ClaimsTotal          *prometheus.CounterVec
	ClaimPayouts         prometheus.Counter
	SwapFailures         *prometheus.CounterVec

	// Fee metrics
	DevFees              *prometheus.CounterVec

	// Valuation metrics
	OpenPositionValue    prometheus.Gauge

	// API metrics
	APIRequestsTotal     *prometheus.CounterVec
	APIRequestLatency    *prometheus.HistogramVec

	// WebSocket metrics
	WSConnectionsActive  prometheus.Gauge
}

// GetCollector returns the singleton metrics collector.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{}

	c.StakesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "stakes",
			Name:      "total",
			Help:      "Total number of stakes created",
		},
		[]string{"duration"},
	)

	c.StakeVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "stakes",
			Name:      "volume",
			Help:      "Total principal staked (base units)",
		},
		[]string{"duration"},
	)

	c.PoolStaked = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vault",
			Subsystem: "pools",
			Name:      "staked",
			Help:      "Lifetime staked amount per pool",
		},
		[]string{"duration"},
	)

	c.PoolCapacity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vault",
			Subsystem: "pools",
			Name:      "remaining_capacity",
			Help:      "Remaining stake capacity per pool",
		},
		[]string{"duration"},
	)

	c.PoolRewardsFunded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vault",
			Subsystem: "pools",
			Name:      "rewards_funded",
			Help:      "Rewards funded into each pool",
		},
		[]string{"duration"},
	)

	c.PoolRewardsPromised = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vault",
			Subsystem: "pools",
			Name:      "rewards_promised",
			Help:      "Rewards promised to active stakes per pool",
		},
		[]string{"duration"},
	)

	c.UnstakesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "stakes",
			Name:      "unstakes_total",
			Help:      "Total number of settled stakes",
		},
		[]string{"duration"},
	)

	c.StakePayouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "stakes",
			Name:      "payouts",
			Help:      "Total stake payouts to users (base units)",
		},
		[]string{"duration"},
	)

	c.PiggiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "piggies",
			Name:      "total",
			Help:      "Total number of piggies created",
		},
		[]string{"safe_mode"},
	)

	c.PiggyVolume = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "piggies",
			Name:      "volume",
			Help:      "Total deposited into piggies (base units)",
		},
	)

	c.ClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "piggies",
			Name:      "claims_total",
			Help:      "Total number of claimed piggies",
		},
		[]string{"safe_mode"},
	)

	c.ClaimPayouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "piggies",
			Name:      "claim_payouts",
			Help:      "Total claim payouts to users (base units)",
		},
	)

	c.SwapFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "swaps",
			Name:      "failures_total",
			Help:      "Swap failures that triggered compensation",
		},
		[]string{"operation"},
	)

	c.DevFees = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "fees",
			Name:      "dev_total",
			Help:      "Total developer fees collected (base units)",
		},
		[]string{"source"},
	)

	c.OpenPositionValue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vault",
			Subsystem: "valuation",
			Name:      "open_position_value",
			Help:      "Mark value of all open positions (base units)",
		},
	)

	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vault",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.WSConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vault",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
	)

	c.registerAll()

	return c
}

func (c *Collector) registerAll() {
	prometheus.MustRegister(c.StakesTotal)
	prometheus.MustRegister(c.StakeVolume)
	prometheus.MustRegister(c.PoolStaked)
	prometheus.MustRegister(c.PoolCapacity)
	prometheus.MustRegister(c.PoolRewardsFunded)
	prometheus.MustRegister(c.PoolRewardsPromised)
	prometheus.MustRegister(c.UnstakesTotal)
	prometheus.MustRegister(c.StakePayouts)

	prometheus.MustRegister(c.PiggiesTotal)
	prometheus.MustRegister(c.PiggyVolume)
	prometheus.MustRegister(c.ClaimsTotal)
	prometheus.MustRegister(c.ClaimPayouts)
	prometheus.MustRegister(c.SwapFailures)

	prometheus.MustRegister(c.DevFees)
	prometheus.MustRegister(c.OpenPositionValue)

	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.WSConnectionsActive)
}

// ============ Recording Helpers ============

// RecordStake records a stake creation.
func (c *Collector) RecordStake(duration string, amount float64) {
	c.StakesTotal.WithLabelValues(duration).Inc()
	c.StakeVolume.WithLabelValues(duration).Add(amount)
}

// RecordUnstake records a settled stake.
func (c *Collector) RecordUnstake(duration string, payout, devFee float64) {
	c.UnstakesTotal.WithLabelValues(duration).Inc()
	c.StakePayouts.WithLabelValues(duration).Add(payout)
	c.DevFees.WithLabelValues("stake").Add(devFee)
}

// RecordPiggy records a piggy creation.
func (c *Collector) RecordPiggy(safeMode string, amount float64) {
	c.PiggiesTotal.WithLabelValues(safeMode).Inc()
	c.PiggyVolume.Add(amount)
}

// RecordClaim records a claimed piggy.
func (c *Collector) RecordClaim(safeMode string, payout, devFee float64) {
	c.ClaimsTotal.WithLabelValues(safeMode).Inc()
	c.ClaimPayouts.Add(payout)
	c.DevFees.WithLabelValues("piggy").Add(devFee)
}

// RecordSwapFailure records a swap failure that triggered compensation.
func (c *Collector) RecordSwapFailure(operation string) {
	c.SwapFailures.WithLabelValues(operation).Inc()
}

// UpdatePool updates the gauges for one pool.
func (c *Collector) UpdatePool(duration string, staked, capacity, funded, promised float64) {
	c.PoolStaked.WithLabelValues(duration).Set(staked)
	c.PoolCapacity.WithLabelValues(duration).Set(capacity)
	c.PoolRewardsFunded.WithLabelValues(duration).Set(funded)
	c.PoolRewardsPromised.WithLabelValues(duration).Set(promised)
}

// UpdateOpenPositionValue updates the valuation gauge.
func (c *Collector) UpdateOpenPositionValue(value float64) {
	c.OpenPositionValue.Set(value)
}

// RecordAPIRequest records an API request.
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.Add(float64(delta))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds.
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
