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
	"github.com/sabouaram/dispatchcore/logger"
)

// ResponseOrderer preserves HTTP/1.1 pipelined response order by buffering
// out-of-order completions until the responses ahead of them are ready. It
// is only consulted while state.UseHOLBlocking is true.
type ResponseOrderer struct {
	state   *State
	emit    func(seq uint32, res *Response)
	log     logger.FuncLog
	metrics *Metrics
}

// NewResponseOrderer returns an orderer over state that calls emit for each
// response, in ascending req_seq order, as soon as it is ready to leave the
// writer.
func NewResponseOrderer(state *State, emit func(seq uint32, res *Response), get logger.FuncLog) *ResponseOrderer {
	return &ResponseOrderer{state: state, emit: emit, log: get}
}

// SetMetrics attaches m so every out-of-order buffering increments
// m.HOLBuffered. Optional.
func (o *ResponseOrderer) SetMetrics(metrics *Metrics) {
	o.metrics = metrics
}

// Submit hands (seq, res) to the orderer. If seq is the next response due
// (state.ResSeq), res is emitted immediately and any already-buffered
// responses that are now next in line are drained in order. Otherwise res
// is buffered until its turn comes.
//
// A seq already present in PendingResponses is an orphan/duplicate submit:
// the displaced response is logged and released, and the new one takes its
// place.
func (o *ResponseOrderer) Submit(seq uint32, res *Response) {
	if seq != o.state.ResSeq {
		if _, exists := o.state.PendingResponses[seq]; exists {
			o.logOrphan(seq)
		}
		o.state.PendingResponses[seq] = res
		if o.metrics != nil {
			o.metrics.HOLBuffered.Inc()
		}
		return
	}

	o.emit(seq, res)
	o.state.ResSeq++

	for {
		next, ok := o.state.PendingResponses[o.state.ResSeq]
		if !ok {
			break
		}
		delete(o.state.PendingResponses, o.state.ResSeq)
		o.emit(o.state.ResSeq, next)
		o.state.ResSeq++
	}
}

func (o *ResponseOrderer) logOrphan(seq uint32) {
	if o.log == nil || o.log() == nil {
		return
	}
	o.log().Error("response orderer: duplicate submission for already-pending sequence", nil,
		logger.NewFields().Add("seq", seq))
}
