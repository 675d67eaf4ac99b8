/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package duration carries the two timeouts DispatchConfig needs
// (connection idle timeout, per-request deadline) through viper/mapstructure
// config loading and back out through JSON/YAML responses. It wraps
// time.Duration with days-aware formatting ("1d2h3m4s") and the
// marshal/unmarshal set mapstructure.TextUnmarshallerHookFunc and the config
// struct tags actually exercise; it is not a general-purpose duration
// library, so the parsing/rounding helpers this module's config loader never
// calls were dropped rather than carried for their own sake.
package duration

import "time"

// Duration is a time.Duration with days-aware text formatting.
type Duration time.Duration

// Parse parses s (an optionally quoted Go duration string, e.g. "30s",
// "1h30m") into a Duration.
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte is Parse over a byte slice, for unmarshal paths that already
// hold raw bytes.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

// Seconds returns a Duration of i seconds. Used for the config package's
// field defaults (e.g. a 60s idle timeout).
func Seconds(i int64) Duration {
	return Duration(time.Duration(i) * time.Second)
}
