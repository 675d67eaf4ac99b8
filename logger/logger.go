/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package logger

import (
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type logger struct {
	mu  sync.RWMutex
	lvl atomic.Value // Level
	wlv atomic.Value // Level used by Write
	fld Fields
	log *logrus.Logger
}

// New returns a Logger backed by logrus, writing to its default output (stderr).
func New(lvl Level) Logger {
	l := &logger{
		fld: NewFields(),
		log: logrus.New(),
	}
	l.lvl.Store(lvl)
	l.log.SetLevel(lvl.logrus())
	return l
}

func (l *logger) SetLevel(lvl Level) {
	l.lvl.Store(lvl)
	l.log.SetLevel(lvl.logrus())
}

func (l *logger) GetLevel() Level {
	if v, ok := l.lvl.Load().(Level); ok {
		return v
	}
	return InfoLevel
}

// SetIOWriterLevel sets the level Write emits at. It is separate from the
// main threshold: a std-logger consumer can feed Debug while the logger
// itself filters at Info.
func (l *logger) SetIOWriterLevel(lvl Level) {
	l.wlv.Store(lvl)
}

func (l *logger) GetIOWriterLevel() Level {
	if v, ok := l.wlv.Load().(Level); ok {
		return v
	}
	return NilLevel
}

// Write implements io.Writer: each call becomes one entry at the
// io-writer level. NilLevel drops the message.
func (l *logger) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))

	if len(msg) > 0 {
		switch l.GetIOWriterLevel() {
		case FatalLevel:
			l.Fatal(msg, nil)
		case ErrorLevel:
			l.Error(msg, nil)
		case WarnLevel:
			l.Warning(msg, nil)
		case InfoLevel:
			l.Info(msg, nil)
		case DebugLevel:
			l.Debug(msg, nil)
		}
	}

	return len(p), nil
}

// GetStdLogger returns a *log.Logger whose output is this logger, each line
// logged at lvl.
func (l *logger) GetStdLogger(lvl Level, logFlags int) *log.Logger {
	l.SetIOWriterLevel(lvl)
	return log.New(l, "", logFlags)
}

func (l *logger) SetFields(f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fld = f
}

func (l *logger) GetFields() Fields {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fld
}

func (l *logger) entry(lvl Level, msg string, err error, fields []Fields) *Entry {
	return &Entry{
		log:     l.log,
		Level:   lvl,
		Message: msg,
		Fields:  mergeFields(l.GetFields(), fields),
		Error:   err,
	}
}

func (l *logger) Debug(msg string, err error, fields ...Fields) {
	if l.GetLevel() >= DebugLevel {
		l.entry(DebugLevel, msg, err, fields).Log()
	}
}

func (l *logger) Info(msg string, err error, fields ...Fields) {
	if l.GetLevel() >= InfoLevel {
		l.entry(InfoLevel, msg, err, fields).Log()
	}
}

func (l *logger) Warning(msg string, err error, fields ...Fields) {
	if l.GetLevel() >= WarnLevel {
		l.entry(WarnLevel, msg, err, fields).Log()
	}
}

func (l *logger) Error(msg string, err error, fields ...Fields) {
	if l.GetLevel() >= ErrorLevel {
		l.entry(ErrorLevel, msg, err, fields).Log()
	}
}

func (l *logger) Fatal(msg string, err error, fields ...Fields) {
	l.entry(FatalLevel, msg, err, fields).Log()
}
