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
	"net"

	"golang.org/x/sys/unix"
)

func sockaddrFor(host string, port int) (unix.Sockaddr, error) {
	if host == "" {
		host = "0.0.0.0"
	}

	ip := net.ParseIP(host)
	if ip == nil {
		ips, err := net.LookupIP(host)
		if err != nil || len(ips) == 0 {
			return nil, ErrorHostname.Error(nil)
		}
		ip = ips[0]
	}

	if v4 := ip.To4(); v4 != nil {
		var a [4]byte
		copy(a[:], v4)
		return &unix.SockaddrInet4{Port: port, Addr: a}, nil
	}

	v6 := ip.To16()
	if v6 == nil {
		return nil, ErrorHostname.Error(nil)
	}
	var a [16]byte
	copy(a[:], v6)
	return &unix.SockaddrInet6{Port: port, Addr: a}, nil
}

func addrPortFromSockaddr(sa unix.Sockaddr) (string, uint16) {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return net.IP(v.Addr[:]).String(), uint16(v.Port)
	case *unix.SockaddrInet6:
		return net.IP(v.Addr[:]).String(), uint16(v.Port)
	}
	return "", 0
}

func socketForProtocol(proto Protocol) (domain, typ, rawProto int, err error) {
	switch proto {
	case ProtocolTCP, ProtocolTLSTCP:
		return unix.AF_INET, unix.SOCK_STREAM, 0, nil
	case ProtocolUDP, ProtocolDTLSUDP:
		return unix.AF_INET, unix.SOCK_DGRAM, 0, nil
	case ProtocolSCTP, ProtocolDTLSSCTP:
		return sctpSocketParams()
	}
	return 0, 0, 0, ErrorUnsupportedProtocol.Error(nil)
}

func newNonblockingSocket(proto Protocol) (int, error) {
	domain, typ, rawProto, err := socketForProtocol(proto)
	if err != nil {
		return -1, err
	}

	fd, err := unix.Socket(domain, typ|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, rawProto)
	if err != nil {
		return -1, ErrorSocket.Error(err)
	}
	return fd, nil
}

func setReuseAddr(fd int, enable bool) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, boolToInt(enable))
}

func setNoDelay(fd int, enable bool) error {
	return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, boolToInt(enable))
}

func setBroadcast(fd int, enable bool) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, boolToInt(enable))
}

func setLinger(fd int, v LingerValue) error {
	l := unix.Linger{}
	if v.On {
		l.Onoff = 1
		l.Linger = int32(v.Seconds)
	}
	return unix.SetsockoptLinger(fd, unix.SOL_SOCKET, unix.SO_LINGER, &l)
}

func setKeepAlive(fd int, v KeepAliveValue) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, boolToInt(v.Enable)); err != nil {
		return err
	}
	if !v.Enable {
		return nil
	}
	return setKeepAliveParams(fd, v)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func probeSOError(fd int) error {
	errno, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if errno != 0 {
		return unix.Errno(errno)
	}
	return nil
}
