package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"electrumcrawler/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveProbe(t *testing.T) {
	m := NewMetrics()
	m.ObserveProbe(ResultOK, 100*time.Millisecond)
	m.ObserveProbe(ResultOK, 200*time.Millisecond)
	m.ObserveProbe(ResultConnect, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.probes.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.probes.WithLabelValues(ResultConnect)))
}

func TestMetrics_ObserveCycle(t *testing.T) {
	m := NewMetrics()
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	r := domain.NewCycleReport(domain.TaskRefresh, start)
	r.Refreshed = 3
	r.Evicted = 1
	r.Fail("a.example", domain.NetworkMainnet, domain.StageProbe, assert.AnError)
	r.Finish(start.Add(time.Minute))

	m.ObserveCycle(r)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("refresh")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.cycleItems.WithLabelValues("refresh", "refreshed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycleItems.WithLabelValues("refresh", "evicted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycleItems.WithLabelValues("refresh", "failed")))
}

func TestMetrics_SetServersAndSkip(t *testing.T) {
	m := NewMetrics()
	m.SetServers(domain.ServerList{
		Mainnet: []domain.ServerRecord{{Host: "a"}, {Host: "b"}},
		Testnet: []domain.ServerRecord{{Host: "c"}},
	})
	m.SkipCycle(domain.TaskCrawl)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.servers.WithLabelValues("mainnet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.servers.WithLabelValues("testnet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycleSkipped.WithLabelValues("crawl")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveProbe(ResultProtocol, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `electrum_crawler_probes_total{result="protocol_error"} 1`)
}

func TestSetupTracing_NoEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "electrum-crawler", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
