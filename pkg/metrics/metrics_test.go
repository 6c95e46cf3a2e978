package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew 每个Registry可以独立注册一套指标
func TestNew(t *testing.T) {
	m1 := New(prometheus.NewRegistry())
	m2 := New(prometheus.NewRegistry())

	require.NotNil(t, m1.HTTPRequestsTotal)
	require.NotNil(t, m2.HTTPRequestsTotal)

	m1.BooksCreated.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m1.BooksCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m2.BooksCreated))
}

// TestNew_DuplicateRegistration 同一个Registry重复注册会panic
func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GET", "/api/books/:id", "200", 0.002)
	m.ObserveRequest("GET", "/api/books/:id", "200", 0.003)
	m.ObserveRequest("GET", "/api/books/:id", "404", 0.001)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/books/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/books/:id", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestLibraryCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.UpdateConflicts.WithLabelValues("book").Inc()
	m.SeedRuns.WithLabelValues("applied").Inc()
	m.AuthorsCreated.Add(2)

	expected := `
# HELP library_update_conflicts_total 并发修改导致的更新冲突次数
# TYPE library_update_conflicts_total counter
library_update_conflicts_total{entity="book"} 1
`
	require.NoError(t, testutil.CollectAndCompare(m.UpdateConflicts, strings.NewReader(expected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeedRuns.WithLabelValues("applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthorsCreated))
}

func TestInProgressGauge(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.HTTPRequestsInProgress.Inc()
	m.HTTPRequestsInProgress.Inc()
	m.HTTPRequestsInProgress.Dec()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsInProgress))
}
