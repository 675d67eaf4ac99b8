/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

import (
	"math"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// idMsgFct maps a registered CodeError floor to the Message function that
// formats every code at or above it, up to the next registered floor.
// dispatchcodes.go registers the dispatch-specific floor at init time.
var idMsgFct = make(map[CodeError]Message)

// Message formats a CodeError into a human string. RegisterIdFctMessage
// associates one with a CodeError range.
type Message func(code CodeError) (message string)

// CodeError is a numeric error code in HTTP-status space: 0-65535, with the
// dispatch-specific codes reusing HTTP status numbering (see dispatchcodes.go).
type CodeError uint16

const (
	// UnknownError is the zero code: no registered range claims it.
	UnknownError CodeError = 0

	// UnknownMessage is returned by Message() for any unregistered code.
	UnknownMessage = "unknown error"

	// NullMessage is an explicitly empty message, distinct from "unset".
	NullMessage = ""
)

// ParseCodeError clamps an int64 into the CodeError range: negative values
// become UnknownError, values above uint16 max saturate at MaxUint16.
func ParseCodeError(i int64) CodeError {
	switch {
	case i < 0:
		return UnknownError
	case i >= int64(math.MaxUint16):
		return math.MaxUint16
	default:
		return CodeError(i)
	}
}

// NewCodeError is a typed constructor for CodeError from a raw uint16.
func NewCodeError(code uint16) CodeError {
	return CodeError(code)
}

func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

func (c CodeError) Int() int {
	return int(c)
}

func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// GetMessage returns the numeric code as a string.
// Deprecated: use Message for the human-readable text.
func (c CodeError) GetMessage() string {
	return c.String()
}

// Message resolves c against the registered ranges, falling back to
// UnknownMessage for the zero code or anything no range claims.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findCodeErrorInMapMessage(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error builds an Error carrying code c, c's registered message, and the
// given parents.
func (c CodeError) Error(p ...error) Error {
	return New(c.Uint16(), c.Message(), p...)
}

// Errorf builds an Error from c's registered message, treating it as a
// fmt pattern when it contains "%" and trimming args to the verb count so
// extra arguments are silently ignored rather than producing %!(EXTRA...).
func (c CodeError) Errorf(args ...interface{}) Error {
	m := c.Message()

	if !strings.Contains(m, "%") {
		return New(c.Uint16(), m)
	}

	if n := strings.Count(m, "%"); n < len(args) {
		return Newf(c.Uint16(), m, args[:n]...)
	} else {
		return Newf(c.Uint16(), m, args...)
	}
}

// IfError builds an Error for c only if e contains at least one non-nil
// error (an empty message still counts); otherwise it returns nil.
func (c CodeError) IfError(e ...error) Error {
	return IfError(c.Uint16(), c.Message(), e...)
}

// GetCodePackages maps every registered CodeError to the source file its
// Message function is defined in, with rootPackage's prefix (and any
// "/vendor/" segment) stripped so the result reads as a path relative to
// the module root.
func GetCodePackages(rootPackage string) map[CodeError]string {
	res := make(map[CodeError]string)

	for i, f := range idMsgFct {
		p := reflect.ValueOf(f).Pointer()
		n, _ := runtime.FuncForPC(p).FileLine(p)

		if strings.Contains(n, "/vendor/") {
			n = strings.SplitN(n, "/vendor/", 2)[1]
		}

		if strings.Contains(n, rootPackage) {
			n = strings.SplitN(n, rootPackage, 2)[1]
		}

		if !strings.HasPrefix(n, "/") {
			n = "/" + n
		}

		res[i] = n
	}

	return res
}

// RegisterIdFctMessage registers fct as the message formatter for every
// code from minCode up to (but not including) the next registered floor.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	if idMsgFct == nil {
		idMsgFct = make(map[CodeError]Message)
	}

	idMsgFct[minCode] = fct
	orderMapMessage()
}

// ExistInMapMessage reports whether code resolves to a non-empty message
// through a registered range.
func ExistInMapMessage(code CodeError) bool {
	if f, ok := idMsgFct[findCodeErrorInMapMessage(code)]; ok {
		return f(code) != NullMessage
	}

	return false
}

// sortedMessageFloors returns the registered range floors in ascending
// order, clamped to the CodeError range.
func sortedMessageFloors() []CodeError {
	keys := make([]int, 0, len(idMsgFct))
	for k := range idMsgFct {
		keys = append(keys, int(k.Uint16()))
	}
	sort.Ints(keys)

	res := make([]CodeError, 0, len(keys))
	for _, k := range keys {
		res = append(res, ParseCodeError(int64(k)))
	}

	return res
}

func getMapMessageKey() []CodeError {
	return sortedMessageFloors()
}

func orderMapMessage() {
	res := make(map[CodeError]Message, len(idMsgFct))

	for _, k := range sortedMessageFloors() {
		res[k] = idMsgFct[k]
	}

	idMsgFct = res
}

// findCodeErrorInMapMessage returns the highest registered floor that is
// still <= code, i.e. the range code falls into.
func findCodeErrorInMapMessage(code CodeError) CodeError {
	var res CodeError

	for _, k := range sortedMessageFloors() {
		if k <= code && k > res {
			res = k
		}
	}

	return res
}

func isCodeInSlice(code CodeError, slice []CodeError) bool {
	for _, c := range slice {
		if c == code {
			return true
		}
	}

	return false
}

func unicCodeSlice(slice []CodeError) []CodeError {
	res := make([]CodeError, 0, len(slice))

	for _, c := range slice {
		if !isCodeInSlice(c, res) {
			res = append(res, c)
		}
	}

	return res
}
