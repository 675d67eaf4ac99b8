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
	"net/http"
	"net/textproto"
	"strings"
	"sync"
)

// StreamIDHeader is the extension header ResponseWriter copies from a
// request onto its response when the request carried one, preserving H2
// stream correlation when tunnelled over H1. Named after
// golang.org/x/net/http2's own stream-id framing concept, which this header
// stands in for above the framing layer.
const StreamIDHeader = "X-Http2-Stream-Id"

// Message is the sealed set of things the framing layer can hand to
// RequestDispatcher.OnMessage: either an H2 upgrade handshake or a decoded
// request. The interface has no methods; callers type-switch on it.
type Message interface {
	isMessage()
}

// ProtocolSettingsMessage signals that the peer has announced HTTP/2
// support (prior-knowledge preface or an Upgrade: h2c handshake).
type ProtocolSettingsMessage struct{}

func (ProtocolSettingsMessage) isMessage() {}

// FullHttpRequestMessage wraps a fully framed request. DecodeError is set by
// the framing layer when it could not produce a usable Request at all (a
// malformed request line or header block); Request may be nil in that case.
type FullHttpRequestMessage struct {
	Request     *Request
	DecodeError error
}

func (FullHttpRequestMessage) isMessage() {}

// Buffer is a reference-counted payload. Go's GC makes manual refcounting
// unnecessary for memory safety, but release-exactly-once is a protocol
// requirement, not a memory one: a codec may pool buffers, and a double
// release would corrupt that pool. The sync.Once enforces the contract in
// testable form.
type Buffer struct {
	data    []byte
	once    sync.Once
	release func([]byte)
}

// NewBuffer wraps data with a no-op release function.
func NewBuffer(data []byte) *Buffer {
	return NewBufferWithRelease(data, nil)
}

// NewBufferWithRelease wraps data with the given release callback, invoked
// exactly once by Release regardless of how many times Release is called.
func NewBufferWithRelease(data []byte, release func([]byte)) *Buffer {
	return &Buffer{data: data, release: release}
}

// Bytes returns the underlying payload. It remains valid until Release is
// called.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Release runs the buffer's release callback exactly once. Safe to call
// from any path, any number of times, including on a nil Buffer.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	b.once.Do(func() {
		if b.release != nil {
			b.release(b.data)
		}
	})
}

// Request is immutable after decoding.
type Request struct {
	Seq       uint32
	Method    string
	URI       string
	Host      string
	Header    http.Header
	Payload   *Buffer
	KeepAlive bool
	StreamID  string
}

// Path returns the URI with everything at and after the first '?' stripped.
// A URI with no '?' is returned verbatim; a URI that is only a query string
// yields the empty path.
func (r *Request) Path() string {
	if i := strings.IndexByte(r.URI, '?'); i >= 0 {
		return r.URI[:i]
	}
	return r.URI
}

// Hostname extracts the routing hostname from the Host header, stripping a
// trailing ":port" using the last ':' in the value. Bracketed IPv6
// authorities such as "[::1]:8080" are mis-split ("[::1" remains); callers
// needing IPv6 literals must normalize the Host header before routing.
func (r *Request) Hostname() string {
	h := r.Header.Get(textproto.CanonicalMIMEHeaderKey("Host"))
	if h == "" {
		h = r.Host
	}
	if i := strings.LastIndexByte(h, ':'); i >= 0 {
		return h[:i]
	}
	return h
}

// Response is a fully built response ready for the wire.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

func newResponse(status int) *Response {
	return &Response{Status: status, Header: make(http.Header)}
}

// NewResponse returns an empty Response with the given status and an
// initialized header map, for collaborators (codecs, service handlers)
// building a response outside this package.
func NewResponse(status int) *Response {
	return newResponse(status)
}
