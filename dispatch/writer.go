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
	"fmt"
	"net/http"
	"strconv"

	"github.com/sabouaram/dispatchcore/logger"
)

// ResponseWriter builds and dispatches responses onto the wire, consulting
// a ResponseOrderer it owns internally before every write.
type ResponseWriter struct {
	state   *State
	orderer *ResponseOrderer
	sender  Sender
	log     logger.FuncLog
	metrics *Metrics
}

// NewResponseWriter returns a writer for state, writing through sender. The
// writer owns its ResponseOrderer; callers never submit to it directly.
func NewResponseWriter(state *State, sender Sender, get logger.FuncLog) *ResponseWriter {
	w := &ResponseWriter{state: state, sender: sender, log: get}
	w.orderer = NewResponseOrderer(state, w.writeOut, get)
	return w
}

// SetMetrics attaches m to the writer and its internal orderer: every
// written response increments m.Dispatched (labeled by status class), and
// every out-of-order buffer increments m.HOLBuffered. Optional.
func (w *ResponseWriter) SetMetrics(metrics *Metrics) {
	w.metrics = metrics
	w.orderer.SetMetrics(metrics)
}

// Respond is the writer's single public operation: respond(seq,
// request_ref, response).
func (w *ResponseWriter) Respond(seq uint32, req *Request, resp *Response) {
	if req != nil && req.StreamID != "" {
		resp.Header.Set(StreamIDHeader, req.StreamID)
	}

	if w.state.UseHOLBlocking {
		w.orderer.Submit(seq, resp)
		return
	}

	w.writeOut(seq, resp)
}

// writeOut is the orderer's emit callback: the point at which a response is
// actually handed to the sender, in order.
func (w *ResponseWriter) writeOut(_ uint32, resp *Response) {
	closeOnSuccess := w.state.HandledLastRequest

	if !closeOnSuccess {
		resp.Header.Set("Content-Length", strconv.Itoa(len(resp.Body)))
		resp.Header.Set("Connection", "keep-alive")
	}

	w.sender.Write(resp, closeOnSuccess, !closeOnSuccess)

	if w.metrics != nil {
		w.metrics.Dispatched.WithLabelValues(statusClass(resp.Status)).Inc()
	}

	if !w.state.IsReading {
		w.sender.Flush()
	}
}

// statusClass buckets an HTTP status into its "Nxx" class for the
// Dispatched counter's label, keeping cardinality bounded regardless of how
// many distinct codes a codec or handler produces.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "xxx"
	}
	return strconv.Itoa(status/100) + "xx"
}

// FlushIfIdle flushes the sender when no read is currently in progress. The
// dispatcher calls this once a read burst ends, so responses written while
// is_reading was true (and therefore not flushed eagerly) still go out.
func (w *ResponseWriter) FlushIfIdle() {
	if !w.state.IsReading {
		w.sender.Flush()
	}
}

// ErrorResponse builds the literal "<code> <reason-phrase>" body used
// for status codes >= 400 without an explicit payload.
func ErrorResponse(status int) *Response {
	r := newResponse(status)
	r.Header.Set("Content-Type", "text/plain; charset=UTF-8")
	r.Body = []byte(fmt.Sprintf("%d %s", status, http.StatusText(status)))
	return r
}
