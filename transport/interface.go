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

//go:build unix

package transport

import (
	"crypto/tls"

	"github.com/nabbar/ttcn-runtime/reactor"
	"github.com/nabbar/ttcn-runtime/sockpool"
)

// SctpHint carries the optional per-send stream id and payload protocol id
// an SCTP caller may supply; the zero value sends on stream 0 with PPID 0.
type SctpHint struct {
	StreamID int
	PPID     uint32
}

// Mux is the user-plane transport multiplexer: it owns every live socket,
// demultiplexes inbound bytes through each connection's framer, and
// delivers ordered events to the configured Sink.
type Mux interface {
	// Listen creates a bound passive socket: for TCP/SCTP it also listens
	// with backlog; for UDP it is equivalent to binding a datagram socket.
	Listen(localAddr string, localPort int, proto Protocol, backlog int, opts []Option) (int, error)

	// Connect creates (or, for UDP with an existing connection id, reuses)
	// a socket and issues a non-blocking connect. extraRemotes carries
	// additional peer addresses for SCTP multi-homing; sctpMethod selects
	// kernel-driven (0) vs sequential (1) multi-homing connect.
	Connect(remoteAddr string, remotePort int, localAddr string, localPort int, existingConnID int, proto Protocol, extraRemotes []string, sctpMethod int, opts []Option) (int, error)

	// Send writes bytes on an established connection, retrying partial
	// writes transparently.
	Send(connID int, data []byte, hint SctpHint) (int, error)

	// SendTo writes a datagram to an explicit peer, used by unconnected
	// UDP sockets.
	SendTo(connID int, remoteAddr string, remotePort int, data []byte, hint SctpHint) (int, error)

	// Close tears down conn_id: shuts down TLS if present, closes the OS
	// descriptor, drains any remaining inbound buffer through the
	// close-time framer, and frees the slot.
	Close(connID int) error

	// StartTLS installs a TLS/DTLS session in place on an established
	// transport. serverSide selects the handshake role.
	StartTLS(connID int, serverSide bool, config *tls.Config) error

	// StopTLS removes a previously installed TLS/DTLS session, leaving
	// the raw transport in place.
	StopTLS(connID int) error

	// ExportTLSKey exports key material per RFC 5705.
	ExportTLSKey(connID int, label string, context []byte, length int) ([]byte, error)

	// ExportSRTPKeysAndSalts exports the DTLS-SRTP key material
	// negotiated during the handshake.
	ExportSRTPKeysAndSalts(connID int) ([]byte, error)

	// ExportSCTPKey exports SCTP-AUTH shared key material.
	ExportSCTPKey(connID int) ([]byte, error)

	// SetOption applies a single socket option to conn_id.
	SetOption(connID int, opt Option) error
}

// New returns a Mux driven by react and allocating connections from pool,
// delivering every event to sink.
func New(react reactor.Reactor, pool sockpool.Pool, sink Sink) Mux {
	return &mux{
		react: react,
		pool:  pool,
		sink:  sink,
		meta:  make(map[int]*connMeta),
	}
}
