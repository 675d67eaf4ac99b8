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

package dispatch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/dispatchcore/dispatch"
)

// fakeSender is a Sender test double recording every write and flush, with
// no real wire behind it.
type fakeSender struct {
	writes  []sentWrite
	flushes int
	closed  bool
}

type sentWrite struct {
	resp           *dispatch.Response
	closeAfter     bool
	closeOnFailure bool
}

func (s *fakeSender) Write(resp *dispatch.Response, closeAfter, closeOnFailure bool) {
	s.writes = append(s.writes, sentWrite{resp: resp, closeAfter: closeAfter, closeOnFailure: closeOnFailure})
}

func (s *fakeSender) Flush() { s.flushes++ }
func (s *fakeSender) Close() { s.closed = true }

var _ = Describe("[TC-WRT] ResponseWriter", func() {
	var (
		state  *dispatch.State
		sender *fakeSender
		writer *dispatch.ResponseWriter
	)

	BeforeEach(func() {
		state = dispatch.NewState(dispatch.H1)
		sender = &fakeSender{}
		writer = dispatch.NewResponseWriter(state, sender, nil)
	})

	It("[TC-WRT-001] keep-alive response carries Content-Length and Connection: keep-alive and flushes immediately when idle", func() {
		resp := dispatch.NewResponse(200)
		resp.Body = []byte("hi")
		writer.Respond(0, nil, resp)

		Expect(sender.writes).To(HaveLen(1))
		w := sender.writes[0]
		Expect(w.resp.Header.Get("Content-Length")).To(Equal("2"))
		Expect(w.resp.Header.Get("Connection")).To(Equal("keep-alive"))
		Expect(w.closeAfter).To(BeFalse())
		Expect(w.closeOnFailure).To(BeTrue())
		Expect(sender.flushes).To(Equal(1))
	})

	It("[TC-WRT-002] final response after handled_last_request closes on success without keep-alive headers", func() {
		state.HandledLastRequest = true
		resp := dispatch.NewResponse(200)
		resp.Body = []byte("bye")
		writer.Respond(0, nil, resp)

		w := sender.writes[0]
		Expect(w.resp.Header.Get("Connection")).To(BeEmpty())
		Expect(w.closeAfter).To(BeTrue())
		Expect(w.closeOnFailure).To(BeFalse())
	})

	It("[TC-WRT-003] copies the H2 stream-id extension header from request to response", func() {
		req := &dispatch.Request{StreamID: "7"}
		resp := dispatch.NewResponse(200)
		writer.Respond(0, req, resp)

		Expect(sender.writes[0].resp.Header.Get(dispatch.StreamIDHeader)).To(Equal("7"))
	})

	It("[TC-WRT-004] defers the write while reading and flushes once on OnReadComplete-equivalent FlushIfIdle", func() {
		state.IsReading = true
		writer.Respond(0, nil, dispatch.NewResponse(200))
		Expect(sender.flushes).To(Equal(0))

		state.IsReading = false
		writer.FlushIfIdle()
		Expect(sender.flushes).To(Equal(1))
	})

	It("[TC-WRT-005] under HOL blocking, buffers an out-of-order response instead of writing it", func() {
		writer.Respond(1, nil, dispatch.NewResponse(200))
		Expect(sender.writes).To(BeEmpty())

		writer.Respond(0, nil, dispatch.NewResponse(200))
		Expect(sender.writes).To(HaveLen(2))
	})

	It("[TC-WRT-006] ErrorResponse builds the literal '<code> <reason>' body with a text/plain content type", func() {
		resp := dispatch.ErrorResponse(404)
		Expect(string(resp.Body)).To(Equal("404 Not Found"))
		Expect(resp.Header.Get("Content-Type")).To(Equal("text/plain; charset=UTF-8"))
	})
})
