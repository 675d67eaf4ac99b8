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

package logger

import (
	"io"
	"log"
)

// FuncLog is a lazily-resolved logger reference, used so components can accept
// logging without forcing construction order on their callers.
type FuncLog func() Logger

// Logger is the structured, leveled logging surface consumed by the dispatch core.
// It is also an io.Writer: each Write becomes one entry at the level set by
// SetIOWriterLevel, so a *log.Logger or any writer-shaped consumer (the hclog
// bridge's StandardWriter among them) can share this sink.
type Logger interface {
	io.Writer

	SetLevel(lvl Level)
	GetLevel() Level

	SetIOWriterLevel(lvl Level)
	GetIOWriterLevel() Level
	GetStdLogger(lvl Level, logFlags int) *log.Logger

	SetFields(f Fields)
	GetFields() Fields

	Debug(msg string, err error, fields ...Fields)
	Info(msg string, err error, fields ...Fields)
	Warning(msg string, err error, fields ...Fields)
	Error(msg string, err error, fields ...Fields)
	Fatal(msg string, err error, fields ...Fields)
}

func mergeFields(base Fields, extra []Fields) Fields {
	f := base
	for _, e := range extra {
		f = f.Merge(e)
	}
	return f
}
