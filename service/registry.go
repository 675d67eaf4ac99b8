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

// Package service provides a reference dispatch.VirtualHostRegistry: a
// host-keyed collection of virtual hosts, each holding an exact-match path
// table of MappedService entries.
package service

import (
	"strings"

	"github.com/sabouaram/dispatchcore/dispatch"
)

// Host is a mutable, concurrency-safe path table for one virtual host.
// Safe for concurrent Load/Store from multiple connection goroutines:
// registration happens at startup or at runtime reconfiguration, independent
// of any single connection's own single-threaded dispatch loop.
type Host struct {
	name string
	svc  *pathTable[dispatch.MappedService]
}

// NewHost returns an empty path table for the virtual host named name.
func NewHost(name string) *Host {
	return &Host{name: name, svc: newPathTable[dispatch.MappedService]()}
}

// Name returns the hostname this Host was registered under.
func (h *Host) Name() string { return h.name }

// Register maps path to a service on this host.
func (h *Host) Register(path string, svc dispatch.MappedService) {
	svc.IsPresent = true
	svc.MappedPath = path
	h.svc.Store(path, svc)
}

// Unregister removes path's mapping, if any.
func (h *Host) Unregister(path string) {
	h.svc.Delete(path)
}

// FindService implements dispatch.VirtualHost: exact-match lookup of path
// against this host's table. A miss returns a zero MappedService, whose
// IsPresent is false.
func (h *Host) FindService(path string) dispatch.MappedService {
	if svc, ok := h.svc.Load(path); ok {
		return svc
	}
	return dispatch.MappedService{}
}

// Walk calls fn for every registered path on this host, stopping early if
// fn returns false.
func (h *Host) Walk(fn func(path string, svc dispatch.MappedService) bool) {
	h.svc.Range(func(path string, svc dispatch.MappedService) bool {
		return fn(path, svc)
	})
}

// Registry maps a lowercased hostname to its Host, falling back to a
// configured default host when the incoming Host header matches nothing.
type Registry struct {
	hosts   *pathTable[*Host]
	fallbck *Host
}

// NewRegistry returns an empty Registry. def, if non-nil, is returned by
// FindVirtualHost whenever the incoming hostname matches no registered
// Host, including the empty-Host-header case.
func NewRegistry(def *Host) *Registry {
	return &Registry{hosts: newPathTable[*Host](), fallbck: def}
}

// Add registers host under its own Name(), lowercased.
func (r *Registry) Add(host *Host) {
	r.hosts.Store(strings.ToLower(host.Name()), host)
}

// Remove unregisters the host previously added under name.
func (r *Registry) Remove(name string) {
	r.hosts.Delete(strings.ToLower(name))
}

// FindVirtualHost implements dispatch.VirtualHostRegistry. Lookup is
// case-insensitive; a miss - including an empty hostname - returns the
// configured default host, or nil if none was configured.
func (r *Registry) FindVirtualHost(hostname string) dispatch.VirtualHost {
	if h, ok := r.hosts.Load(strings.ToLower(hostname)); ok {
		return h
	}
	// A nil *Host boxed into the VirtualHost interface would compare !=
	// nil at the call site (the classic typed-nil-interface trap), so the
	// untyped nil is returned explicitly when no default host is set.
	if r.fallbck == nil {
		return nil
	}
	return r.fallbck
}
