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
	"fmt"
	"strings"
)

// modeError is the process-wide rendering mode every *ers.Error() call
// goes through; dispatch and config code never sets this themselves, they
// inherit whatever SetModeReturnError the command's main() picked.
var modeError = Default

// SetModeReturnError changes how every Error value in the process renders
// via Error(). It's a package-global switch, not per-error state, because
// Error() must satisfy the stdlib error interface with no extra arguments.
func SetModeReturnError(mode ErrorMode) {
	modeError = mode
}

func GetModeReturnError() ErrorMode {
	return modeError
}

// ErrorMode selects which of CodeError's string/slice representations
// Error() renders.
type ErrorMode uint8

const (
	Default ErrorMode = iota
	ErrorReturnCode
	ErrorReturnCodeFull
	ErrorReturnCodeError
	ErrorReturnCodeErrorFull
	ErrorReturnCodeErrorTrace
	ErrorReturnCodeErrorTraceFull
	ErrorReturnStringError
	ErrorReturnStringErrorFull
)

var modeLabels = map[ErrorMode]string{
	Default:                       "default",
	ErrorReturnCode:               "Code",
	ErrorReturnCodeFull:           "CodeFull",
	ErrorReturnCodeError:          "CodeError",
	ErrorReturnCodeErrorFull:      "CodeErrorFull",
	ErrorReturnCodeErrorTrace:     "CodeErrorTrace",
	ErrorReturnCodeErrorTraceFull: "CodeErrorTraceFull",
	ErrorReturnStringError:        "StringError",
	ErrorReturnStringErrorFull:    "StringErrorFull",
}

func (m ErrorMode) String() string {
	if s, ok := modeLabels[m]; ok {
		return s
	}
	return Default.String()
}

// error renders e the way mode m dictates. Slice-producing modes join their
// parts with ", " since Error() must return a single string.
func (m ErrorMode) error(e *ers) string {
	switch m {
	case ErrorReturnCode:
		return fmt.Sprintf("%v", e.Code())
	case ErrorReturnCodeFull:
		return fmt.Sprintf("%v", e.CodeSlice())
	case ErrorReturnCodeError:
		return e.CodeError("")
	case ErrorReturnCodeErrorFull:
		return strings.Join(e.CodeErrorSlice(""), ", ")
	case ErrorReturnCodeErrorTrace:
		return e.CodeErrorTrace("")
	case ErrorReturnCodeErrorTraceFull:
		return strings.Join(e.CodeErrorTraceSlice(""), ", ")
	case ErrorReturnStringErrorFull:
		return strings.Join(e.StringErrorSlice(), ", ")
	case Default, ErrorReturnStringError:
		return e.StringError()
	default:
		return e.StringError()
	}
}
