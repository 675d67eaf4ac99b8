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
	"time"
)

// VirtualHostRegistry resolves a Host header to a VirtualHost, falling back
// to a default host when nothing matches.
type VirtualHostRegistry interface {
	FindVirtualHost(hostname string) VirtualHost
}

// VirtualHost resolves a request path to a MappedService.
type VirtualHost interface {
	FindService(path string) MappedService
}

// MappedService is the result of virtual-host routing.
type MappedService struct {
	IsPresent  bool
	MappedPath string
	Codec      ServiceCodec
	Handler    ServiceHandler
}

// DecodeResult is the three-way outcome of ServiceCodec.DecodeRequest.
type DecodeResult uint8

const (
	DecodeSuccess DecodeResult = iota
	DecodeFailure
	DecodeNotFound
)

// InvocationContext is produced by a successful codec decode; it carries
// the service invocation identity and the promise InvocationRunner will
// complete.
type InvocationContext struct {
	Seq        uint32
	Hostname   string
	Path       string
	MappedPath string
	Protocol   SessionProtocol
	Request    *Request
	Promise    *Promise

	// Value carries whatever a ServiceCodec decoded the request body into.
	// The core never inspects it; it exists so a codec's DecodeRequest and
	// a ServiceHandler.Invoke can agree on a decoded payload without a
	// third, codec-specific context type.
	Value interface{}
}

// ServiceCodec is the pluggable request/response marshaling attached to a
// MappedService.
type ServiceCodec interface {
	// DecodeRequest attempts to turn payload into an InvocationContext.
	// On DecodeFailure, errResp may be non-nil to carry a codec-supplied
	// error response; cause explains the failure either way.
	DecodeRequest(ctx context.Context, protocol SessionProtocol, hostname, path, mappedPath string, payload *Buffer, full *Request) (result DecodeResult, invocation *InvocationContext, errResp *Response, cause error)

	// EncodeResponse turns a successful invocation result into a buffer.
	EncodeResponse(ctx *InvocationContext, result interface{}) (*Response, error)

	// EncodeFailureResponse turns an invocation failure into a buffer.
	EncodeFailureResponse(ctx *InvocationContext, cause error) (*Response, error)

	// FailureResponseFailsSession reports whether a failure response
	// should be sent with a classified error status (true) or as a
	// plain 200 OK carrying the encoded failure body (false).
	FailureResponseFailsSession(ctx *InvocationContext) bool
}

// Executor runs a blocking task off the connection's own goroutine. A
// ServiceHandler uses it for anything that would otherwise block the
// connection loop.
type Executor interface {
	Submit(task func())
}

// ServiceHandler invokes a service, completing promise with a result value
// (passed to ServiceCodec.EncodeResponse, or a *Response to send as-is) or
// failing it with a cause.
type ServiceHandler interface {
	Invoke(ctx context.Context, invocation *InvocationContext, blocking Executor, promise *Promise)
}

// RequestTimeoutPolicy resolves the per-request deadline for ctx; zero
// disables the timeout.
type RequestTimeoutPolicy interface {
	Timeout(ctx *InvocationContext) time.Duration
}

// FixedTimeoutPolicy is the simplest RequestTimeoutPolicy: every request
// gets the same deadline.
type FixedTimeoutPolicy time.Duration

func (p FixedTimeoutPolicy) Timeout(*InvocationContext) time.Duration {
	return time.Duration(p)
}

// Sender is the framing-layer write surface RequestDispatcher and
// ResponseWriter use to put bytes on the wire. Real implementations live
// outside this package, with the TLS and framing layers.
type Sender interface {
	// Write sends resp. closeAfter requests the connection be closed
	// once the write completes, regardless of outcome (CloseOnSuccess);
	// closeOnFailure requests the connection be closed only if the
	// write itself fails (CloseOnFailure). At most one of the two is
	// ever true for a given call.
	Write(resp *Response, closeAfter, closeOnFailure bool)
	// Flush forces any writes accumulated since the last flush onto the
	// wire.
	Flush()
	// Close tears down the underlying connection immediately.
	Close()
}
