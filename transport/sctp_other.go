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

//go:build !linux

package transport

import "net"

// SCTP is wired directly to Linux-specific socket options, so on other
// platforms it is reported as unsupported rather than silently falling
// back to something else.
func sctpSocketParams() (domain, typ, proto int, err error) {
	return 0, 0, 0, ErrorUnsupportedProtocol.Error(nil)
}

func setSctpNoDelay(fd int, enable bool) error {
	return ErrorUnsupportedProtocol.Error(nil)
}

func sctpConnectx(fd int, addrs []net.IP, port int, method int) error {
	return ErrorUnsupportedProtocol.Error(nil)
}

func sctpBindx(fd int, addrs []string, port int) error {
	return ErrorUnsupportedProtocol.Error(nil)
}

func setSctpInitMsg(fd int, v SctpInitMsgValue) error {
	return ErrorUnsupportedProtocol.Error(nil)
}

func setSctpEvents(fd int, v SctpEventsValue) error {
	return ErrorUnsupportedProtocol.Error(nil)
}

func setSctpPathMTU(fd int, size int) error {
	return ErrorUnsupportedProtocol.Error(nil)
}

func recvSctpMessage(fd int, buf []byte, peek bool) (n int, notification bool, err error) {
	return 0, false, ErrorUnsupportedProtocol.Error(nil)
}

func sctpNotificationKind(b []byte) (name string, commLost bool) {
	return "UNKNOWN", false
}
