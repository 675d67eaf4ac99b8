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
	"sync"
	"sync/atomic"
	"time"
)

// IdleTimeoutMonitor closes a connection that has gone idle_timeout since its
// last outstanding request completed. in_flight is a plain atomic counter:
// it is touched from the caller's request/response paths and read from the
// timer goroutine.
type IdleTimeoutMonitor struct {
	timeout time.Duration
	close   func()
	metrics *Metrics

	inFlight int64

	mu    sync.Mutex
	timer *time.Timer
	armed bool
}

// SetMetrics attaches m so every close fired by this monitor increments
// m.IdleCloses. Optional; a nil or never-set m disables the counter.
func (m *IdleTimeoutMonitor) SetMetrics(metrics *Metrics) {
	m.metrics = metrics
}

// NewIdleTimeoutMonitor returns a monitor that calls closeFn after timeout
// has elapsed with no outstanding request in flight. A zero timeout disables
// the monitor: RequestSent/ResponseReceived still track in_flight, but no
// timer is ever armed.
func NewIdleTimeoutMonitor(timeout time.Duration, closeFn func()) *IdleTimeoutMonitor {
	m := &IdleTimeoutMonitor{timeout: timeout, close: closeFn}
	m.arm()
	return m
}

// RequestSent increments in_flight and disarms any pending close - the
// connection is active again.
func (m *IdleTimeoutMonitor) RequestSent() {
	atomic.AddInt64(&m.inFlight, 1)
	m.disarm()
}

// ResponseReceived decrements in_flight and, if it reaches zero, arms the
// deferred close for timeout from now.
func (m *IdleTimeoutMonitor) ResponseReceived() {
	if atomic.AddInt64(&m.inFlight, -1) == 0 {
		m.arm()
	}
}

func (m *IdleTimeoutMonitor) arm() {
	if m.timeout <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.armed = true
	m.timer = time.AfterFunc(m.timeout, m.fire)
}

func (m *IdleTimeoutMonitor) disarm() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.armed = false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// fire runs on the timer's own goroutine. It resolves the
// arm-vs-new-request race by re-reading in_flight immediately before
// closing: if a request arrived between the timer expiring and fire
// running, in_flight is no longer zero and the close is skipped.
func (m *IdleTimeoutMonitor) fire() {
	m.mu.Lock()
	if !m.armed {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if atomic.LoadInt64(&m.inFlight) != 0 {
		return
	}

	if m.metrics != nil {
		m.metrics.IdleCloses.Inc()
	}
	if m.close != nil {
		m.close()
	}
}

// Stop cancels any pending close without firing it, for use on connection
// teardown initiated elsewhere.
func (m *IdleTimeoutMonitor) Stop() {
	m.disarm()
}
