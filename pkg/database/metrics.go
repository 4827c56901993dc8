package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// poolStatter is the part of *pgxpool.Pool the collector reads.
type poolStatter interface {
	Stat() *pgxpool.Stat
}

// PoolCollector exports pgx pool statistics to Prometheus.
type PoolCollector struct {
	pool    poolStatter
	service string

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
	waits    *prometheus.Desc
	waitTime *prometheus.Desc
}

// NewPoolCollector builds a collector labelled with the owning service.
func NewPoolCollector(pool poolStatter, service string) *PoolCollector {
	labels := []string{"service"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("db_pool_"+name, help, labels, nil)
	}
	return &PoolCollector{
		pool:     pool,
		service:  service,
		acquired: desc("acquired_connections", "Connections currently checked out."),
		idle:     desc("idle_connections", "Connections currently idle."),
		total:    desc("total_connections", "Connections currently open."),
		max:      desc("max_connections", "Configured pool ceiling."),
		waits:    desc("empty_acquire_total", "Acquires that had to wait for a free connection."),
		waitTime: desc("acquire_duration_seconds_total", "Cumulative time spent acquiring connections."),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	ch <- c.waits
	ch <- c.waitTime
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stat()
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, c.service)
	}
	counter := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, v, c.service)
	}
	gauge(c.acquired, float64(s.AcquiredConns()))
	gauge(c.idle, float64(s.IdleConns()))
	gauge(c.total, float64(s.TotalConns()))
	gauge(c.max, float64(s.MaxConns()))
	counter(c.waits, float64(s.EmptyAcquireCount()))
	counter(c.waitTime, s.AcquireDuration().Seconds())
}

// RegisterPoolMetrics registers a PoolCollector with the default registry.
func RegisterPoolMetrics(pool *pgxpool.Pool, service string) {
	prometheus.MustRegister(NewPoolCollector(pool, service))
}
