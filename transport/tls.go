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
	"time"

	"github.com/nabbar/ttcn-runtime/reactor"
	"github.com/nabbar/ttcn-runtime/sockpool"
)

// fdConn adapts a raw, currently-blocking socket descriptor to net.Conn so
// crypto/tls can drive a handshake over it. It is only ever used while the
// descriptor is temporarily out of the reactor and set to blocking mode
// (see StartTLS); normal data transfer goes through unixRead/unixWrite or
// the resulting *tls.Conn directly, never through fdConn again.
type fdConn struct {
	fd                    int
	localAddr, remoteAddr net.Addr
}

func (c *fdConn) Read(b []byte) (int, error)  { return unixRead(c.fd, b) }
func (c *fdConn) Write(b []byte) (int, error) { return unixWrite(c.fd, b) }
func (c *fdConn) Close() error                { return nil }
func (c *fdConn) LocalAddr() net.Addr         { return c.localAddr }
func (c *fdConn) RemoteAddr() net.Addr        { return c.remoteAddr }
func (c *fdConn) SetDeadline(t time.Time) error      { return nil }
func (c *fdConn) SetReadDeadline(t time.Time) error   { return nil }
func (c *fdConn) SetWriteDeadline(t time.Time) error  { return nil }

func (m *mux) StartTLS(connID int, serverSide bool, config *tls.Config) error {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return err
	}
	meta := m.meta[connID]
	if meta == nil {
		return ErrorInvalidConnection.Error(nil)
	}

	if meta.protocol.isDTLS() {
		// No DTLS implementation is wired in: crypto/tls only drives
		// stream handshakes, and nothing in this module's dependency set
		// provides a datagram-transport TLS record layer.
		return ErrorUnsupportedProtocol.Error(nil)
	}

	mask := reactor.InterestRead | reactor.InterestWrite | reactor.InterestError
	_ = m.react.RemoveFD(d.Fd, m.handlerFor(connID), mask)

	if err = setBlocking(d.Fd, true); err != nil {
		_ = m.react.AddFD(d.Fd, m.handlerFor(connID), reactor.InterestRead)
		return ErrorSocket.Error(err)
	}

	conn := &fdConn{fd: d.Fd}
	var tlsConn *tls.Conn
	if serverSide {
		tlsConn = tls.Server(conn, config)
	} else {
		tlsConn = tls.Client(conn, config)
	}

	if err = tlsConn.Handshake(); err != nil {
		_ = setBlocking(d.Fd, false)
		_ = m.react.AddFD(d.Fd, m.handlerFor(connID), reactor.InterestRead)
		return ErrorTLS.Error(err)
	}

	if err = setBlocking(d.Fd, false); err != nil {
		return ErrorSocket.Error(err)
	}
	if err = m.react.AddFD(d.Fd, m.handlerFor(connID), reactor.InterestRead); err != nil {
		return err
	}

	meta.tlsConfig = config
	meta.tlsConn = tlsConn
	d.TLSObject = tlsConn
	if serverSide {
		d.TLSRole = sockpool.TLSServer
	} else {
		d.TLSRole = sockpool.TLSClient
	}
	return nil
}

func (m *mux) StopTLS(connID int) error {
	meta := m.meta[connID]
	if meta == nil || meta.tlsConn == nil {
		return ErrorInvalidConnection.Error(nil)
	}
	_ = meta.tlsConn.CloseWrite()
	meta.tlsConn = nil

	if d, err := m.pool.Lookup(connID); err == nil {
		d.TLSObject = nil
		d.TLSRole = sockpool.TLSNone
	}
	return nil
}
