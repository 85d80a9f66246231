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
	"github.com/nabbar/ttcn-runtime/buffer"
	"github.com/nabbar/ttcn-runtime/reactor"
	"github.com/nabbar/ttcn-runtime/sockpool"
)

func (m *mux) onReadable(connID int) {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return
	}

	if d.Kind == sockpool.KindTCPListen || d.Kind == sockpool.KindSCTPListen {
		m.acceptLoop(connID, d)
		return
	}

	meta := m.meta[connID]
	if meta == nil {
		return
	}

	if d.Kind == sockpool.KindUDP {
		m.readDatagram(connID, d, meta)
		return
	}

	m.readStream(connID, d, meta)
}

func (m *mux) acceptLoop(listenerID int, ld *sockpool.Descriptor) {
	for {
		nfd, sa, err := unixAccept(ld.Fd)
		if err != nil {
			return
		}

		remoteAddr, remotePort := addrPortFromSockaddr(sa)
		kind := sockpool.KindTCP
		if ld.Kind == sockpool.KindSCTPListen {
			kind = sockpool.KindSCTP
		}

		connID, err := m.pool.Alloc(kind, nfd, ld.TLSRole, listenerID)
		if err != nil {
			unixClose(nfd)
			continue
		}
		d, _ := m.pool.Lookup(connID)
		d.RemoteAddr, d.RemotePort = remoteAddr, remotePort
		d.LocalAddr, d.LocalPort = ld.LocalAddr, ld.LocalPort

		listenerMeta := m.meta[listenerID]
		proto := ProtocolTCP
		if listenerMeta != nil {
			proto = listenerMeta.protocol
		}
		m.meta[connID] = &connMeta{protocol: proto}

		if err = m.react.AddFD(nfd, m.handlerFor(connID), reactor.InterestRead); err != nil {
			m.pool.Free(connID)
			unixClose(nfd)
			continue
		}

		m.sink.Dispatch(Event{
			Kind: EventConnectionOpened, ConnID: connID, UserTag: d.UserTag, Protocol: proto,
			LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
		})
	}
}

func (m *mux) readDatagram(connID int, d *sockpool.Descriptor, meta *connMeta) {
	tmp := make([]byte, maxReadPerEvent)
	n, sa, err := unixRecvfrom(d.Fd, tmp)
	if err != nil {
		return
	}
	if n == 0 {
		return
	}

	remoteAddr, remotePort := "", uint16(0)
	if sa != nil {
		remoteAddr, remotePort = addrPortFromSockaddr(sa)
	}

	m.sink.Dispatch(Event{
		Kind: EventReceive, ConnID: connID, UserTag: d.UserTag, Protocol: meta.protocol,
		LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: remoteAddr, RemotePort: remotePort,
		Payload: append([]byte(nil), tmp[:n]...),
	})
}

func (m *mux) readStream(connID int, d *sockpool.Descriptor, meta *connMeta) {
	tmp := make([]byte, maxReadPerEvent)

	var n int
	var err error

	switch {
	case meta.tlsConn != nil:
		n, err = meta.tlsConn.Read(tmp)
	case meta.protocol.isSCTP():
		var notif bool
		n, notif, err = recvSctpMessage(d.Fd, tmp, meta.sctpPeek)
		if err == nil && notif {
			m.handleSctpNotification(connID, d, meta, tmp[:n])
			return
		}
	default:
		n, err = unixRead(d.Fd, tmp)
	}

	if err != nil {
		m.endOfStream(connID, d, meta, err)
		return
	}
	if n == 0 {
		m.endOfStream(connID, d, meta, nil)
		return
	}

	if d.Buffer == nil {
		d.Buffer = buffer.New()
	}
	d.Buffer.AppendBytes(tmp[:n])

	framer := d.Framer
	if framer == nil {
		framer = DefaultFramer
	}
	for {
		frameLen := framer(d.Buffer, d.FramerArgs)
		if frameLen <= 0 || frameLen > d.Buffer.Len() {
			break
		}
		payload, rerr := d.Buffer.ReadRaw(frameLen)
		if rerr != nil {
			break
		}
		m.sink.Dispatch(Event{
			Kind: EventReceive, ConnID: connID, UserTag: d.UserTag, Protocol: meta.protocol,
			LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
			Payload: payload,
		})
	}
}

func (m *mux) endOfStream(connID int, d *sockpool.Descriptor, meta *connMeta, cause error) {
	drained := m.drain(connID, d)
	_ = m.react.RemoveFD(d.Fd, m.handlerFor(connID), reactor.InterestRead|reactor.InterestWrite|reactor.InterestError)
	unixClose(d.Fd)

	_ = drained
	m.sink.Dispatch(Event{
		Kind: EventConnectionClosed, ConnID: connID, UserTag: d.UserTag, Protocol: meta.protocol,
		LocalAddr: d.LocalAddr, LocalPort: d.LocalPort, RemoteAddr: d.RemoteAddr, RemotePort: d.RemotePort,
	})
	delete(m.meta, connID)
	_ = m.pool.Free(connID)
}

func (m *mux) handleSctpNotification(connID int, d *sockpool.Descriptor, meta *connMeta, raw []byte) {
	name, commLost := sctpNotificationKind(raw)
	m.sink.Dispatch(Event{
		Kind: EventSctp, ConnID: connID, UserTag: d.UserTag, Protocol: meta.protocol,
		SctpKind: name,
	})
	if commLost {
		m.endOfStream(connID, d, meta, nil)
	}
}
