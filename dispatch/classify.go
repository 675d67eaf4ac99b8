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
	"errors"
	"regexp"

	liberr "github.com/sabouaram/dispatchcore/errors"
	"github.com/sabouaram/dispatchcore/logger"
)

// ErrRequestTimeout is the cause InvocationRunner fails a promise with when
// its scheduled deadline fires first.
var ErrRequestTimeout = errors.New("request exceeded its allotted processing time")

// benignResetPattern matches connection-reset noise that should be logged
// at debug, not warn.
var benignResetPattern = regexp.MustCompile(`(?i).*(connection.*(reset|closed|abort|broken)|broken.*pipe).*`)

// ErrorClassifier maps an invocation or transport failure to the status
// code it is surfaced with, and decides the log level for transport
// exceptions.
type ErrorClassifier struct {
	log logger.FuncLog
}

// NewErrorClassifier returns a classifier that lazily resolves its logger
// through get, matching how the rest of this package accepts loggers (see
// logger.FuncLog).
func NewErrorClassifier(get logger.FuncLog) *ErrorClassifier {
	return &ErrorClassifier{log: get}
}

// Status returns the HTTP status a failure cause should be surfaced with:
// 503 for a request timeout, 500 for anything else.
func (c *ErrorClassifier) Status(cause error) liberr.CodeError {
	if errors.Is(cause, ErrRequestTimeout) {
		return liberr.RequestTimeout
	}
	return liberr.InternalError
}

// LogTransportError logs cause at debug if it matches the benign
// connection-reset pattern, warn otherwise.
func (c *ErrorClassifier) LogTransportError(msg string, cause error) {
	if c.log == nil || c.log() == nil {
		return
	}
	l := c.log()
	if cause != nil && benignResetPattern.MatchString(cause.Error()) {
		l.Debug(msg, cause)
	} else {
		l.Warning(msg, cause)
	}
}

// LogDuplicateProtocolSettings warns that a connection observed a second H2
// upgrade handshake after already completing one.
func (c *ErrorClassifier) LogDuplicateProtocolSettings() {
	if c.log == nil || c.log() == nil {
		return
	}
	c.log().Warning("duplicate protocol settings observed on connection already upgraded", nil)
}
