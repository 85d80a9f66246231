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

package sockpool

import (
	"github.com/nabbar/ttcn-runtime/buffer"
)

// Kind identifies the socket family and role a descriptor was allocated for.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUDP
	KindTCPListen
	KindTCP
	KindSCTPListen
	KindSCTP
)

// TLSRole identifies whether, and as which side, TLS/DTLS is layered on a
// descriptor.
type TLSRole uint8

const (
	TLSNone TLSRole = iota
	TLSServer
	TLSClient
)

// ConnState is the per-connection state machine driving how the transport
// mux treats a descriptor's readiness events.
type ConnState uint8

const (
	StateNormal ConnState = iota
	StateConnecting
	StateHandshaking
	StateWaitForReceiveCallback
	StateBlockForSending
	StateDontClose
	StateDontReceive
)

// FramerFunc inspects the unread prefix of a connection's inbound buffer
// and returns the total length of the next frame, or a negative value if
// more bytes are required before a decision can be made.
type FramerFunc func(buf buffer.Buffer, args []int) int

// Descriptor is the per-connection state the socket pool hands back from
// Lookup. It is owned by the pool; callers must not retain a pointer past a
// Free of the same connection id.
type Descriptor struct {
	ConnID int

	Kind    Kind
	TLSRole TLSRole

	Fd int

	// Buffer is allocated lazily on first inbound data; listener-kind
	// descriptors never get one.
	Buffer buffer.Buffer

	Framer      FramerFunc
	FramerArgs  []int
	CloseFramer FramerFunc

	// TLSObject and TLSParams are opaque to the pool; the transport
	// layer assigns a *tls.Conn/DTLS session and its parameter set here.
	TLSObject interface{}
	TLSParams interface{}

	State ConnState

	UserTag int

	// Parent is the connection id of the listener this descriptor was
	// accepted from, or -1 for a listener or an actively-connected peer.
	Parent int

	LocalAddr  string
	LocalPort  uint16
	RemoteAddr string
	RemotePort uint16

	// PendingLen is the sticky, partially-decoded frame length carried
	// across readable events when the framer has seen a length field but
	// not yet the full payload; -1 means no pending decode.
	PendingLen int

	free     bool
	freedAt  uint64
}

// Pool is the dense connection-id allocator and descriptor table.
type Pool interface {
	// Alloc assigns a new connection id for an OS descriptor of the given
	// kind, optionally inheriting framing/user-tag/TLS state from parent
	// (a listener's connection id) when parent >= 0.
	Alloc(kind Kind, fd int, tlsRole TLSRole, parent int) (int, error)

	// Free closes and releases everything owned by connID: the OS
	// descriptor is left to the caller to close (the transport layer
	// does so before or after calling Free depending on draining state),
	// but the slot's buffer and TLS state are released and the slot is
	// pushed to the free-list under quarantine.
	Free(connID int) error

	// Lookup returns the live descriptor for connID.
	Lookup(connID int) (*Descriptor, error)

	// Valid reports whether connID currently designates a live
	// descriptor.
	Valid(connID int) bool

	// IterLive calls fn for every live descriptor, in connection-id
	// order, stopping early if fn returns false.
	IterLive(fn func(*Descriptor) bool)
}

// RecentlyClosedMinimum is the minimum number of distinct slot allocations
// that must intervene before a freed connection id may be handed out again.
const RecentlyClosedMinimum = 10

// New returns an empty Pool quarantining freed ids for RecentlyClosedMinimum
// allocations.
func New() Pool {
	return NewWithQuarantine(RecentlyClosedMinimum)
}

// NewWithQuarantine is New with an explicit quarantine window, exposed as a
// tunable per spec.md's design notes recommendation that N not be hard-coded.
func NewWithQuarantine(n int) Pool {
	if n < 1 {
		n = RecentlyClosedMinimum
	}
	return &pool{quarantine: uint64(n), parentOf: make(map[int]int)}
}
