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
	"errors"

	"golang.org/x/sys/unix"
)

func (m *mux) Send(connID int, data []byte, hint SctpHint) (int, error) {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return 0, err
	}
	meta := m.meta[connID]
	if meta == nil {
		return 0, ErrorInvalidConnection.Error(nil)
	}

	sent := 0
	for sent < len(data) {
		var n int
		var werr error

		switch {
		case meta.tlsConn != nil:
			n, werr = meta.tlsConn.Write(data[sent:])
		default:
			n, werr = unixWrite(d.Fd, data[sent:])
		}

		if werr == nil {
			sent += n
			continue
		}

		if errors.Is(werr, unix.EPIPE) {
			m.endOfStream(connID, d, meta, werr)
			return sent, ErrorSocket.Error(werr)
		}

		if errors.Is(werr, unix.EAGAIN) || errors.Is(werr, unix.EWOULDBLOCK) {
			if meta.pureNonBlocking {
				return sent, ErrorTemporarilyUnavailable.Error(nil)
			}
			if blockErr := m.react.BlockForWritable(d.Fd); blockErr != nil {
				return sent, blockErr
			}
			continue
		}

		return sent, ErrorSocket.Error(werr)
	}

	return sent, nil
}

func (m *mux) SendTo(connID int, remoteAddr string, remotePort int, data []byte, hint SctpHint) (int, error) {
	d, err := m.pool.Lookup(connID)
	if err != nil {
		return 0, err
	}

	sa, err := sockaddrFor(remoteAddr, remotePort)
	if err != nil {
		return 0, err
	}

	if werr := unixSendto(d.Fd, data, sa); werr != nil {
		if errors.Is(werr, unix.EAGAIN) || errors.Is(werr, unix.EWOULDBLOCK) {
			meta := m.meta[connID]
			if meta != nil && meta.pureNonBlocking {
				return 0, ErrorTemporarilyUnavailable.Error(nil)
			}
			if blockErr := m.react.BlockForWritable(d.Fd); blockErr != nil {
				return 0, blockErr
			}
			if werr = unixSendto(d.Fd, data, sa); werr != nil {
				return 0, ErrorSocket.Error(werr)
			}
			return len(data), nil
		}
		return 0, ErrorSocket.Error(werr)
	}

	return len(data), nil
}
