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

import "sync"

// Result is what a Promise completes with: either a Value for the codec to
// encode, a ready-made Response to send as-is, or a failure Err. At most one
// of Response/Value/Err is meaningful, selected by which Try* method
// completed the promise.
type Result struct {
	Response *Response
	Value    interface{}
	Err      error
}

// Promise is a single-shot, thread-safe completion cell with at most one
// listener. It is safe to complete from any goroutine - InvocationRunner
// relies on this to accept a completion posted from the blocking executor.
type Promise struct {
	mu       sync.Mutex
	done     bool
	result   Result
	listener func(Result)
}

// NewPromise returns an incomplete Promise.
func NewPromise() *Promise {
	return &Promise{}
}

// TrySucceed completes the promise with a raw result value, to be encoded
// by the codec. Returns false if the promise was already complete.
func (p *Promise) TrySucceed(value interface{}) bool {
	return p.complete(Result{Value: value})
}

// TryRespond completes the promise with a ready-made response, bypassing
// codec encoding.
func (p *Promise) TryRespond(resp *Response) bool {
	return p.complete(Result{Response: resp})
}

// TryFail completes the promise with a failure cause. Returns false if the
// promise was already complete - the first completion always wins, which is
// what makes timeout-vs-handler races safe.
func (p *Promise) TryFail(cause error) bool {
	return p.complete(Result{Err: cause})
}

func (p *Promise) complete(r Result) bool {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return false
	}
	p.done = true
	p.result = r
	listener := p.listener
	p.mu.Unlock()

	if listener != nil {
		listener(r)
	}
	return true
}

// IsDone reports whether the promise has already completed.
func (p *Promise) IsDone() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Peek returns the completed result and true, or a zero Result and false if
// the promise has not completed yet. Used by InvocationRunner to handle an
// already-complete promise synchronously, without attaching a listener or
// scheduling a timeout.
func (p *Promise) Peek() (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, p.done
}

// OnComplete registers f to run exactly once, when the promise completes.
// If the promise is already complete, f runs synchronously before
// OnComplete returns. Only one listener may be registered; InvocationRunner
// never needs more than one.
func (p *Promise) OnComplete(f func(Result)) {
	p.mu.Lock()
	if p.done {
		r := p.result
		p.mu.Unlock()
		f(r)
		return
	}
	p.listener = f
	p.mu.Unlock()
}
