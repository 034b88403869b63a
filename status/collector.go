package status

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/countdown-tracker/engine"
)

const namespace = "countdown"

// Collector exports a Registry as Prometheus metrics, read at scrape time
type Collector struct {
	reg *Registry

	ticks     *prometheus.Desc
	starts    *prometheus.Desc
	expiries  *prometheus.Desc
	remaining *prometheus.Desc
	running   *prometheus.Desc
	target    *prometheus.Desc
}

// NewCollector creates a collector over reg
func NewCollector(reg *Registry) *Collector {
	return &Collector{
		reg: reg,
		ticks: prometheus.NewDesc(namespace+"_ticks_total",
			"Snapshots published since process start.", nil, nil),
		starts: prometheus.NewDesc(namespace+"_starts_total",
			"Countdowns started, including restarts on config reload.", nil, nil),
		expiries: prometheus.NewDesc(namespace+"_expiries_total",
			"Countdowns that reached their target.", nil, nil),
		remaining: prometheus.NewDesc(namespace+"_remaining_seconds",
			"Remaining time as of the last published snapshot.", nil, nil),
		running: prometheus.NewDesc(namespace+"_running",
			"1 while a countdown is ticking.", nil, nil),
		target: prometheus.NewDesc(namespace+"_target_timestamp_seconds",
			"Target instant of the current countdown as a unix timestamp.", nil, nil),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ticks
	ch <- c.starts
	ch <- c.expiries
	ch <- c.remaining
	ch <- c.running
	ch <- c.target
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	running := 0.0
	if c.reg.State() == engine.StateRunning {
		running = 1
	}

	ch <- prometheus.MustNewConstMetric(c.ticks, prometheus.CounterValue, float64(c.reg.ticks.Load()))
	ch <- prometheus.MustNewConstMetric(c.starts, prometheus.CounterValue, float64(c.reg.starts.Load()))
	ch <- prometheus.MustNewConstMetric(c.expiries, prometheus.CounterValue, float64(c.reg.expiries.Load()))
	ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, float64(c.reg.Latest().RemainingMs)/1000)
	ch <- prometheus.MustNewConstMetric(c.running, prometheus.GaugeValue, running)
	ch <- prometheus.MustNewConstMetric(c.target, prometheus.GaugeValue, float64(c.reg.targetMs.Load())/1000)
}
