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
	"net/http"
	"strings"

	liberr "github.com/sabouaram/dispatchcore/errors"
	"github.com/sabouaram/dispatchcore/logger"
)

// RequestDispatcher is the connection's single entry point for inbound
// messages. It classifies each Message, assigns its req_seq, and drives it
// through the dispatch pipeline: handled_last_request, then the keep-alive
// flag, then decoder failure, then CONNECT, then virtual-host routing, then
// codec decode, then invocation.
//
// A RequestDispatcher is confined to one connection's own goroutine; it
// keeps no internal locking because State never needs any.
type RequestDispatcher struct {
	state      *State
	vhosts     VirtualHostRegistry
	runner     *InvocationRunner
	writer     *ResponseWriter
	classifier *ErrorClassifier
	executor   Executor
	log        logger.FuncLog
}

// NewRequestDispatcher wires a dispatcher for one connection's state.
func NewRequestDispatcher(state *State, vhosts VirtualHostRegistry, runner *InvocationRunner, writer *ResponseWriter, classifier *ErrorClassifier, executor Executor, get logger.FuncLog) *RequestDispatcher {
	return &RequestDispatcher{state: state, vhosts: vhosts, runner: runner, writer: writer, classifier: classifier, executor: executor, log: get}
}

// OnReadStart marks the connection as mid-read, deferring flushes until the
// burst completes.
func (d *RequestDispatcher) OnReadStart() {
	d.state.IsReading = true
}

// OnReadComplete marks the end of a read burst and flushes anything written
// while is_reading was true.
func (d *RequestDispatcher) OnReadComplete() {
	d.state.IsReading = false
	d.writer.FlushIfIdle()
}

// OnMessage classifies msg and dispatches it.
func (d *RequestDispatcher) OnMessage(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case ProtocolSettingsMessage:
		if duplicate := d.state.observeProtocolSettings(); duplicate {
			d.classifier.LogDuplicateProtocolSettings()
		}
	case FullHttpRequestMessage:
		d.dispatch(ctx, m)
	}
}

// Close releases per-connection dispatch state when the transport tears the
// connection down: buffered out-of-order responses are dropped and no
// further request is dispatched.
func (d *RequestDispatcher) Close() {
	d.state.HandledLastRequest = true
	for seq := range d.state.PendingResponses {
		delete(d.state.PendingResponses, seq)
	}
}

// OnException handles a transport-level failure reported by the framing
// layer: classified for logging, and treated as the connection's last
// request since the transport is no longer trustworthy.
func (d *RequestDispatcher) OnException(cause error) {
	d.classifier.LogTransportError("transport exception on connection", cause)
	d.state.HandledLastRequest = true
}

func (d *RequestDispatcher) dispatch(ctx context.Context, msg FullHttpRequestMessage) {
	req := msg.Request

	// 1. handled_last_request latches true and stays true: no further
	// request on this connection is dispatched.
	if d.state.HandledLastRequest {
		if req != nil {
			req.Payload.Release()
		}
		return
	}

	seq := d.state.nextSeq()
	if req != nil {
		req.Seq = seq
	}

	// 2. keep-alive flag: this is the last request iff the peer didn't ask
	// to keep the connection open.
	if req == nil || !req.KeepAlive {
		d.state.HandledLastRequest = true
	}

	// 3. decoder failure: the framing layer never produced a usable
	// request at all.
	if msg.DecodeError != nil || req == nil {
		d.classifier.LogTransportError("request decode failed", msg.DecodeError)
		d.writer.Respond(seq, req, ErrorResponse(int(liberr.DecoderFailure)))
		if req != nil {
			req.Payload.Release()
		}
		return
	}

	// 4. CONNECT tunnelling is not supported.
	if strings.EqualFold(req.Method, http.MethodConnect) {
		d.writer.Respond(seq, req, ErrorResponse(int(liberr.MethodNotAllowed)))
		req.Payload.Release()
		return
	}

	hostname := req.Hostname()
	path := req.Path()

	vhost := d.vhosts.FindVirtualHost(hostname)
	if vhost == nil {
		d.writer.Respond(seq, req, ErrorResponse(int(liberr.NotFound)))
		req.Payload.Release()
		return
	}

	svc := vhost.FindService(path)
	if !svc.IsPresent {
		d.writer.Respond(seq, req, ErrorResponse(int(liberr.NotFound)))
		req.Payload.Release()
		return
	}

	// 5/6. codec decode: FAILURE, NOT_FOUND, or SUCCESS.
	result, invocation, errResp, cause := svc.Codec.DecodeRequest(ctx, d.state.SessionProtocol, hostname, path, svc.MappedPath, req.Payload, req)

	switch result {
	case DecodeFailure:
		d.classifier.LogTransportError("codec failed to decode request", cause)
		resp := errResp
		if resp == nil {
			resp = ErrorResponse(int(liberr.RequestDecode))
		}
		d.writer.Respond(seq, req, resp)
		req.Payload.Release()

	case DecodeNotFound:
		d.writer.Respond(seq, req, ErrorResponse(int(liberr.ServiceNotFound)))
		req.Payload.Release()

	default: // DecodeSuccess
		invocation.Seq = seq
		invocation.Request = req
		d.runner.Run(ctx, invocation, svc.Handler, d.executor, svc.Codec)
	}
}
