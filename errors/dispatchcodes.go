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

package errors

// Dispatch-taxonomy codes. These reuse CodeError's HTTP-shaped numbering
// convention directly: the code IS the status that goes on the wire, so
// Status() is a plain identity conversion rather than a lookup table.
const (
	DecoderFailure   CodeError = 400
	RequestDecode    CodeError = 400
	MethodNotAllowed CodeError = 405
	NotFound         CodeError = 404
	ServiceNotFound  CodeError = 404
	RequestTimeout   CodeError = 503
	InternalError    CodeError = 500
	TransportError   CodeError = 502
)

func init() {
	RegisterIdFctMessage(DecoderFailure, func(code CodeError) string {
		switch code {
		case DecoderFailure:
			return "request could not be decoded"
		case MethodNotAllowed:
			return "method not allowed on this virtual host"
		case NotFound:
			return "no virtual host or service matches this request"
		case RequestTimeout:
			return "request exceeded its allotted processing time"
		case InternalError:
			return "internal dispatch error"
		case TransportError:
			return "transport closed before the response could be written"
		default:
			return ""
		}
	})
}

// Status returns the HTTP status code this dispatch error should be reported
// with. For dispatch-taxonomy codes this is the code itself.
func (c CodeError) Status() int {
	return c.Int()
}
