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
	"net"

	"github.com/nabbar/ttcn-runtime/reactor"
	"github.com/nabbar/ttcn-runtime/sockpool"
)

const maxReadPerEvent = 64 * 1024

// connMeta is the per-connection state the socket pool's Descriptor has no
// room for: the protocol family (including TLS/DTLS overlay), handshake
// state, and behavior flags inherited from process-wide configuration at
// connect/listen time.
type connMeta struct {
	protocol        Protocol
	pureNonBlocking bool
	extendedEvents  bool
	tlsConfig       *tls.Config
	tlsConn         *tls.Conn
	sctpPeek        bool
	draining        bool
	connecting      bool
}

type mux struct {
	react reactor.Reactor
	pool  sockpool.Pool
	sink  Sink
	meta  map[int]*connMeta
}

// connHandler adapts one connection id to reactor.Handler; the mux keeps
// exactly one per live connection so RemoveFD can target the same instance
// AddFD registered.
type connHandler struct {
	m      *mux
	connID int
}

func (h *connHandler) OnReadable(fd int) { h.m.onReadable(h.connID) }
func (h *connHandler) OnWritable(fd int) { h.m.onWritable(h.connID) }
func (h *connHandler) OnError(fd int, err error) { h.m.onError(h.connID, err) }

func (m *mux) handlerFor(connID int) *connHandler {
	return &connHandler{m: m, connID: connID}
}

func (m *mux) Listen(localAddr string, localPort int, proto Protocol, backlog int, opts []Option) (int, error) {
	fd, err := newNonblockingSocket(proto)
	if err != nil {
		return -1, err
	}

	if err = applyPreBindOptions(fd, proto, opts); err != nil {
		unixClose(fd)
		return -1, err
	}

	sa, err := sockaddrFor(localAddr, localPort)
	if err != nil {
		unixClose(fd)
		return -1, err
	}
	if err = unixBind(fd, sa); err != nil {
		unixClose(fd)
		return -1, ErrorAddressInUse.Error(err)
	}

	kind := sockpool.KindUDP
	if proto.isStream() {
		kind = sockpool.KindTCPListen
		if proto.isSCTP() {
			kind = sockpool.KindSCTPListen
		}
		if backlog <= 0 {
			backlog = 128
		}
		if err = unixListen(fd, backlog); err != nil {
			unixClose(fd)
			return -1, ErrorSocket.Error(err)
		}
	} else if proto.isSCTP() {
		kind = sockpool.KindSCTPListen
	}

	connID, err := m.pool.Alloc(kind, fd, sockpool.TLSNone, -1)
	if err != nil {
		unixClose(fd)
		return -1, err
	}

	d, _ := m.pool.Lookup(connID)
	d.Framer = DefaultFramer
	d.CloseFramer = DefaultFramer
	d.LocalAddr, d.LocalPort = addrPortFromSockaddr(sa)

	m.meta[connID] = &connMeta{protocol: proto}

	if err = applyPostBindOptions(fd, proto, opts); err != nil {
		m.Close(connID)
		return -1, err
	}

	if err = m.react.AddFD(fd, m.handlerFor(connID), reactor.InterestRead); err != nil {
		m.Close(connID)
		return -1, err
	}

	return connID, nil
}

func (m *mux) Connect(remoteAddr string, remotePort int, localAddr string, localPort int, existingConnID int, proto Protocol, extraRemotes []string, sctpMethod int, opts []Option) (int, error) {
	var fd int
	var connID int
	var d *sockpool.Descriptor

	if existingConnID >= 0 && m.pool.Valid(existingConnID) {
		connID = existingConnID
		d, _ = m.pool.Lookup(connID)
		fd = d.Fd
	} else {
		var err error
		fd, err = newNonblockingSocket(proto)
		if err != nil {
			return -1, err
		}
		if err = applyPreBindOptions(fd, proto, opts); err != nil {
			unixClose(fd)
			return -1, err
		}
		if localAddr != "" || localPort != 0 {
			lsa, err := sockaddrFor(localAddr, localPort)
			if err != nil {
				unixClose(fd)
				return -1, err
			}
			if err = unixBind(fd, lsa); err != nil {
				unixClose(fd)
				return -1, ErrorAddressInUse.Error(err)
			}
		}

		kind := sockpool.KindUDP
		if proto.isStream() {
			kind = sockpool.KindTCP
			if proto.isSCTP() {
				kind = sockpool.KindSCTP
			}
		}
		connID, err = m.pool.Alloc(kind, fd, sockpool.TLSNone, -1)
		if err != nil {
			unixClose(fd)
			return -1, err
		}
		d, _ = m.pool.Lookup(connID)
		d.Framer = DefaultFramer
		d.CloseFramer = DefaultFramer
		m.meta[connID] = &connMeta{protocol: proto}
	}

	var connErr error
	if proto.isSCTP() {
		addrs := []net.IP{net.ParseIP(remoteAddr)}
		for _, a := range extraRemotes {
			addrs = append(addrs, net.ParseIP(a))
		}
		connErr = sctpConnectx(fd, addrs, remotePort, sctpMethod)
	} else {
		rsa, err := sockaddrFor(remoteAddr, remotePort)
		if err != nil {
			m.pool.Free(connID)
			unixClose(fd)
			return -1, err
		}
		connErr = unixConnect(fd, rsa)
		d.RemoteAddr, d.RemotePort = addrPortFromSockaddr(rsa)
	}

	if connErr != nil {
		if isEINPROGRESS(connErr) {
			m.meta[connID].connecting = true
			d.State = sockpool.StateConnecting
			if err := m.react.AddFD(fd, m.handlerFor(connID), reactor.InterestWrite|reactor.InterestError); err != nil {
				m.pool.Free(connID)
				unixClose(fd)
				return -1, err
			}
			return connID, ErrorTemporarilyUnavailable.Error(nil)
		}
		m.pool.Free(connID)
		unixClose(fd)
		return -1, ErrorSocket.Error(connErr)
	}

	if err := m.react.AddFD(fd, m.handlerFor(connID), reactor.InterestRead); err != nil {
		m.pool.Free(connID)
		unixClose(fd)
		return -1, err
	}

	m.sink.Dispatch(Event{
		Kind: EventConnectionOpened, ConnID: connID, UserTag: d.UserTag, Protocol: proto,
		LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
	})
	return connID, nil
}

func (m *mux) onWritable(connID int) {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return
	}
	meta := m.meta[connID]
	if meta != nil && meta.connecting {
		meta.connecting = false
		_ = m.react.RemoveFD(d.Fd, m.handlerFor(connID), reactor.InterestWrite|reactor.InterestError)
		if soErr := probeSOError(d.Fd); soErr != nil {
			m.sink.Dispatch(Event{Kind: EventResult, ConnID: connID, ErrKind: KindSocket, OSErrno: errnoOf(soErr), OSText: soErr.Error()})
			m.pool.Free(connID)
			unixClose(d.Fd)
			return
		}
		if err := m.react.AddFD(d.Fd, m.handlerFor(connID), reactor.InterestRead); err != nil {
			return
		}
		m.sink.Dispatch(Event{Kind: EventResult, ConnID: connID, ErrKind: KindAvailable})
		m.sink.Dispatch(Event{
			Kind: EventConnectionOpened, ConnID: connID, UserTag: d.UserTag, Protocol: meta.protocol,
			LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
		})
	}
}

func (m *mux) onError(connID int, cause error) {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return
	}
	meta := m.meta[connID]
	proto := ProtocolTCP
	if meta != nil {
		proto = meta.protocol
	}
	m.sink.Dispatch(Event{Kind: EventResult, ConnID: connID, ErrKind: KindSocket, OSText: errString(cause)})
	m.sink.Dispatch(Event{
		Kind: EventConnectionClosed, ConnID: connID, UserTag: d.UserTag, Protocol: proto,
		LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
	})
	_ = m.react.RemoveFD(d.Fd, m.handlerFor(connID), reactor.InterestRead|reactor.InterestWrite|reactor.InterestError)
	unixClose(d.Fd)
	m.pool.Free(connID)
	delete(m.meta, connID)
}

func (m *mux) Close(connID int) error {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return err
	}
	meta := m.meta[connID]

	if meta != nil && meta.tlsConn != nil {
		_ = meta.tlsConn.Close()
	}

	_ = m.react.RemoveFD(d.Fd, m.handlerFor(connID), reactor.InterestRead|reactor.InterestWrite|reactor.InterestError)

	framesDrained := m.drain(connID, d)

	unixClose(d.Fd)

	proto := ProtocolTCP
	if meta != nil {
		proto = meta.protocol
	}
	if framesDrained > 0 || d.Buffer == nil || d.Buffer.Len() == 0 {
		m.sink.Dispatch(Event{
			Kind: EventConnectionClosed, ConnID: connID, UserTag: d.UserTag, Protocol: proto,
			LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
		})
	}

	delete(m.meta, connID)
	return m.pool.Free(connID)
}

// drain runs the close-time framer repeatedly over whatever remains in the
// connection's inbound buffer, emitting a Receive event per extracted
// frame, and reports how many it emitted.
func (m *mux) drain(connID int, d *sockpool.Descriptor) int {
	if d.Buffer == nil {
		return 0
	}
	framer := d.CloseFramer
	if framer == nil {
		framer = DefaultFramer
	}
	meta := m.meta[connID]
	proto := ProtocolTCP
	if meta != nil {
		proto = meta.protocol
	}

	count := 0
	for {
		n := framer(d.Buffer, d.FramerArgs)
		if n <= 0 || n > d.Buffer.Len() {
			break
		}
		payload, err := d.Buffer.ReadRaw(n)
		if err != nil {
			break
		}
		m.sink.Dispatch(Event{
			Kind: EventReceive, ConnID: connID, UserTag: d.UserTag, Protocol: proto,
			LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
			Payload: payload,
		})
		count++
	}
	return count
}

func (m *mux) SetOption(connID int, opt Option) error {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return err
	}
	meta := m.meta[connID]
	proto := ProtocolTCP
	if meta != nil {
		proto = meta.protocol
	}
	return applyOption(d.Fd, proto, opt)
}

func (m *mux) ExportTLSKey(connID int, label string, context []byte, length int) ([]byte, error) {
	meta := m.meta[connID]
	if meta == nil || meta.tlsConn == nil {
		return nil, ErrorInvalidConnection.Error(nil)
	}
	st := meta.tlsConn.ConnectionState()
	return st.ExportKeyingMaterial(label, context, length)
}

func (m *mux) ExportSRTPKeysAndSalts(connID int) ([]byte, error) {
	return nil, ErrorUnsupportedProtocol.Error(nil)
}

func (m *mux) ExportSCTPKey(connID int) ([]byte, error) {
	return nil, ErrorUnsupportedProtocol.Error(nil)
}
