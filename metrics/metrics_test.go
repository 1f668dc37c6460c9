// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	require.Nil(t, HTTPHandler())

	count := Counter("noop_count")
	countVec := CounterVec("noop_count_vec", []string{"zeroOrOne"})
	gauge := Gauge("noop_gauge")
	gaugeVec := GaugeVec("noop_gauge_vec", []string{"zeroOrOne"})
	hist := Histogram("noop_hist", nil)

	for i := range rand.N(100) + 1 {
		count.Add(1)
		countVec.AddWithLabel(int64(i), map[string]string{"thisIsNonsense": "butDoesntBreak"})
		gauge.Set(int64(i))
		gaugeVec.SetWithLabel(int64(i), map[string]string{"thisIsNonsense": "butDoesntBreak"})
		hist.Observe(int64(i))
	}
}

func TestPromMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	InitializePrometheusMetrics()

	count1 := Counter("count1")
	countVec := CounterVec("countVec1", []string{"zeroOrOne"})
	hist := Histogram("hist1", nil)
	gauge1 := Gauge("gauge1")
	gaugeVec := GaugeVec("gaugeVec1", []string{"zeroOrOne"})

	// same name returns the same meter
	require.Same(t, count1, Counter("count1"))

	count1.Add(1)

	histTotal := 0
	totalVec := 0
	n := rand.N(100) + 2
	for i := range n {
		zeroOrOne := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		hist.Observe(int64(i))
		countVec.AddWithLabel(int64(i), zeroOrOne)
		gaugeVec.AddWithLabel(int64(i), zeroOrOne)
		histTotal += i
		totalVec += i
	}
	gauge1.Set(42)

	commitKeys := Histogram("commitKeys1", BucketCommitKeys)
	commitKeys.Observe(3)

	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}

	require.Equal(t, float64(1), families["acctstate_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(histTotal), families["acctstate_hist1"].Metric[0].GetHistogram().GetSampleSum())
	require.Equal(t, float64(42), families["acctstate_gauge1"].Metric[0].GetGauge().GetValue())

	buckets := families["acctstate_commitKeys1"].Metric[0].GetHistogram().GetBucket()
	require.Len(t, buckets, len(BucketCommitKeys))
	require.Equal(t, uint64(0), buckets[2].GetCumulativeCount()) // <= 2
	require.Equal(t, uint64(1), buckets[3].GetCumulativeCount()) // <= 5

	sumCountVec := families["acctstate_countVec1"].Metric[0].GetCounter().GetValue() +
		families["acctstate_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(totalVec), sumCountVec)

	sumGaugeVec := families["acctstate_gaugeVec1"].Metric[0].GetGauge().GetValue() +
		families["acctstate_gaugeVec1"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(totalVec), sumGaugeVec)

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "acctstate_count1 1"))
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
}
