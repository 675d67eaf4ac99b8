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

package service

import "sync"

// pathTable is a type-safe wrapper over sync.Map, scoped to exactly what Host
// and Registry need: Load, Store, Delete and an early-exit Range.
type pathTable[V any] struct {
	m sync.Map
}

func newPathTable[V any]() *pathTable[V] {
	return &pathTable[V]{}
}

func (t *pathTable[V]) Load(key string) (V, bool) {
	v, ok := t.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (t *pathTable[V]) Store(key string, value V) {
	t.m.Store(key, value)
}

func (t *pathTable[V]) Delete(key string) {
	t.m.Delete(key)
}

// Range calls fn for every entry, stopping early if fn returns false.
func (t *pathTable[V]) Range(fn func(key string, value V) bool) {
	t.m.Range(func(k, v any) bool {
		return fn(k.(string), v.(V))
	})
}
