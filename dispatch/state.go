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

// SessionProtocol mirrors the four session kinds a connection can be in.
// H1/H1C may upgrade to H2/H2C exactly once, on observing protocol settings
// from the peer; the reverse never happens.
type SessionProtocol uint8

const (
	H1 SessionProtocol = iota
	H1C
	H2
	H2C
)

func (p SessionProtocol) String() string {
	switch p {
	case H1:
		return "H1"
	case H1C:
		return "H1C"
	case H2:
		return "H2"
	case H2C:
		return "H2C"
	default:
		return "UNKNOWN"
	}
}

// IsH2 reports whether p is one of the HTTP/2 variants.
func (p SessionProtocol) IsH2() bool {
	return p == H2 || p == H2C
}

// upgrade returns the H2-equivalent protocol for p, or p unchanged if there
// is none (already H2/H2C).
func (p SessionProtocol) upgrade() SessionProtocol {
	switch p {
	case H1:
		return H2
	case H1C:
		return H2C
	default:
		return p
	}
}

// State is the per-connection Connection State. Every field here is owned
// by the connection's single I/O goroutine; nothing here is synchronized.
// Correctness depends on the caller never touching a State from two
// goroutines at once - see the package doc comment.
//
// Invariants (enforced by dispatcher.go and orderer.go, not by State
// itself):
//  1. ResSeq <= ReqSeq at all times.
//  2. Every key in PendingResponses lies in [ResSeq, ReqSeq).
//  3. HandledLastRequest only ever transitions false -> true.
//  4. UseHOLBlocking only ever transitions true -> false.
type State struct {
	SessionProtocol    SessionProtocol
	UseHOLBlocking     bool
	ReqSeq             uint32
	ResSeq             uint32
	PendingResponses   map[uint32]*Response
	HandledLastRequest bool
	IsReading          bool
}

// NewState returns a State for a freshly accepted connection negotiated
// with the given protocol. use_hol_blocking starts true for HTTP/1.1
// variants and false for HTTP/2: HOL buffering is only ever needed until
// H2 multiplexing is confirmed.
func NewState(protocol SessionProtocol) *State {
	return &State{
		SessionProtocol:  protocol,
		UseHOLBlocking:   !protocol.IsH2(),
		PendingResponses: make(map[uint32]*Response),
	}
}

// nextSeq returns the current req_seq and post-increments it.
func (s *State) nextSeq() uint32 {
	seq := s.ReqSeq
	s.ReqSeq++
	return seq
}

// observeProtocolSettings applies an H2 upgrade handshake: use_hol_blocking
// latches false and the session protocol advances H1->H2 / H1C->H2C. A
// duplicate observation (already H2/H2C) is reported so the caller can log
// a warning.
func (s *State) observeProtocolSettings() (duplicate bool) {
	if s.SessionProtocol.IsH2() {
		return true
	}

	s.UseHOLBlocking = false
	s.SessionProtocol = s.SessionProtocol.upgrade()
	return false
}
