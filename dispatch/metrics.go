/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the counters and histograms this package's components
// update as they dispatch, invoke, and write. Construction and registration
// are split so a caller can share one Metrics across the connections of a
// server and register it once against its own prometheus.Registry.
type Metrics struct {
	Dispatched    *prometheus.CounterVec
	HOLBuffered   prometheus.Counter
	InvokeLatency prometheus.Histogram
	IdleCloses    prometheus.Counter
}

// NewMetrics constructs a Metrics bundle with the given namespace (e.g. the
// server's own name) but does not register it; call Register to attach it
// to a *prometheus.Registry.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "requests_total",
			Help:      "Requests dispatched, labeled by outcome status class.",
		}, []string{"status"}),
		HOLBuffered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "hol_buffered_total",
			Help:      "Responses buffered by the ResponseOrderer awaiting an earlier response.",
		}),
		InvokeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "invoke_duration_seconds",
			Help:      "Time from invocation start to promise completion.",
			Buckets:   prometheus.DefBuckets,
		}),
		IdleCloses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "idle_closes_total",
			Help:      "Connections closed by IdleTimeoutMonitor.",
		}),
	}
}

// Register attaches every collector in m to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Dispatched, m.HOLBuffered, m.InvokeLatency, m.IdleCloses} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
