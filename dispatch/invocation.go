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
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sabouaram/dispatchcore/logger"
)

// InvocationRunner invokes a ServiceHandler inside a recover trap, publishing
// the InvocationContext for the duration of the call and clearing it on
// every exit path including panic. If the promise is still pending when the
// call returns, it schedules a per-request timeout and funnels whichever source completes the
// promise first - the handler or the timeout - into a response.
type InvocationRunner struct {
	timeoutPolicy RequestTimeoutPolicy
	classifier    *ErrorClassifier
	writer        *ResponseWriter
	log           logger.FuncLog
	metrics       *Metrics

	mu      sync.Mutex
	current *InvocationContext
}

// NewInvocationRunner returns a runner that writes its results through
// writer and classifies failures with classifier.
func NewInvocationRunner(policy RequestTimeoutPolicy, classifier *ErrorClassifier, writer *ResponseWriter, get logger.FuncLog) *InvocationRunner {
	return &InvocationRunner{timeoutPolicy: policy, classifier: classifier, writer: writer, log: get}
}

// SetMetrics attaches m so every invocation's wall time from Run to promise
// completion is observed into m.InvokeLatency. Optional.
func (r *InvocationRunner) SetMetrics(metrics *Metrics) {
	r.metrics = metrics
}

// Current returns the invocation context published for whichever handler
// call is presently executing on this connection, or nil between calls.
func (r *InvocationRunner) Current() *InvocationContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *InvocationRunner) publish(inv *InvocationContext) {
	r.mu.Lock()
	r.current = inv
	r.mu.Unlock()
}

func (r *InvocationRunner) unpublish() {
	r.mu.Lock()
	r.current = nil
	r.mu.Unlock()
}

// Run invokes handler for invocation, encoding and writing whichever result
// completes its promise first through codec and the runner's writer.
func (r *InvocationRunner) Run(ctx context.Context, invocation *InvocationContext, handler ServiceHandler, blocking Executor, codec ServiceCodec) {
	promise := invocation.Promise
	start := time.Now()

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)

	cancelTimeout := func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
			timer = nil
		}
		timerMu.Unlock()
	}

	func() {
		r.publish(invocation)
		defer r.unpublish()
		defer func() {
			if rec := recover(); rec != nil {
				promise.TryFail(fmt.Errorf("service handler panic: %v", rec))
			}
		}()
		handler.Invoke(ctx, invocation, blocking, promise)
	}()

	complete := func(res Result) {
		cancelTimeout()
		if r.metrics != nil {
			r.metrics.InvokeLatency.Observe(time.Since(start).Seconds())
		}
		r.finish(invocation, codec, res)
	}

	if res, done := promise.Peek(); done {
		complete(res)
		return
	}

	if d := r.timeoutPolicy.Timeout(invocation); d > 0 {
		timerMu.Lock()
		timer = time.AfterFunc(d, func() {
			promise.TryFail(ErrRequestTimeout)
		})
		timerMu.Unlock()
	}
	promise.OnComplete(complete)
}

// finish turns a completed Result into a response and writes it, releasing
// the request's payload buffer exactly once regardless of outcome.
func (r *InvocationRunner) finish(inv *InvocationContext, codec ServiceCodec, res Result) {
	if inv.Request != nil {
		inv.Request.Payload.Release()
	}

	switch {
	case res.Response != nil:
		r.writer.Respond(inv.Seq, inv.Request, res.Response)

	case res.Err != nil:
		r.writer.Respond(inv.Seq, inv.Request, r.encodeFailure(inv, codec, res.Err))

	default:
		resp, err := codec.EncodeResponse(inv, res.Value)
		if err != nil {
			r.classifier.LogTransportError("failed to encode invocation result", err)
			resp = ErrorResponse(int(r.classifier.Status(err)))
		}
		r.writer.Respond(inv.Seq, inv.Request, resp)
	}
}

func (r *InvocationRunner) encodeFailure(inv *InvocationContext, codec ServiceCodec, cause error) *Response {
	resp, err := codec.EncodeFailureResponse(inv, cause)
	if err != nil {
		r.classifier.LogTransportError("failed to encode failure response", err)
		return ErrorResponse(int(r.classifier.Status(cause)))
	}

	if codec.FailureResponseFailsSession(inv) {
		resp.Status = int(r.classifier.Status(cause))
	} else {
		resp.Status = http.StatusOK
	}
	return resp
}
