package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestPoolCollector_Describe(t *testing.T) {
	var _ prometheus.Collector = (*PoolCollector)(nil)

	c := NewPoolCollector(nil, "order-service")

	ch := make(chan *prometheus.Desc, 10)
	c.Describe(ch)
	close(ch)

	var names []string
	for d := range ch {
		names = append(names, d.String())
	}
	assert.Len(t, names, 6)
	for _, n := range names {
		assert.True(t, strings.Contains(n, "db_pool_"), n)
	}
}
