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

//go:build linux

package transport

import (
	"encoding/binary"
	"net"

	"golang.org/x/sys/unix"
)

// SCTP is kernel-provided on Linux; IPPROTO_SCTP/SOL_SCTP and the
// notification/event constants below are the ones glibc's netinet/sctp.h
// exposes and that golang.org/x/sys/unix mirrors.
const (
	solSCTP = unix.IPPROTO_SCTP

	sctpRtoInfo             = 0
	sctpAssocinfo           = 1
	sctpInitMsg             = 2
	sctpNodelay             = 3
	sctpEvents              = 11
	sctpEventsOld           = 10
	sctpPeerAddrParams      = 9
	sctpStatus              = 14
	sctpSockoptBindxAdd     = 100
	sctpSockoptConnectx     = 110
)

func sctpSocketParams() (domain, typ, proto int, err error) {
	return unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_SCTP, nil
}

func setSctpNoDelay(fd int, enable bool) error {
	return unix.SetsockoptInt(fd, solSCTP, sctpNodelay, boolToInt(enable))
}

// sctpAssocChangeEvent mirrors struct sctp_assoc_change's leading fields
// enough to distinguish COMM_UP/COMM_LOST/SHUTDOWN_COMP/CANT_STR_ASSOC; the
// full struct carries additional stream-count and ABI fields not needed to
// surface a typed SctpEvent.
type sctpAssocChangeState uint16

const (
	sctpCommUp sctpAssocChangeState = iota
	sctpCommLost
	sctpRestart
	sctpShutdownComp
	sctpCantStrAssoc
)

func (s sctpAssocChangeState) String() string {
	switch s {
	case sctpCommUp:
		return "COMM_UP"
	case sctpCommLost:
		return "COMM_LOST"
	case sctpRestart:
		return "RESTART"
	case sctpShutdownComp:
		return "SHUTDOWN_COMP"
	case sctpCantStrAssoc:
		return "CANT_STR_ASSOC"
	}
	return "UNKNOWN"
}

// sctpNotificationKind inspects the sn_type header (first 2 bytes, host
// order) of an SCTP notification delivered via MSG_NOTIFICATION and returns
// a short name plus, for ASSOC_CHANGE, whether it represents a terminal
// COMM_LOST-class event.
func sctpNotificationKind(b []byte) (name string, commLost bool) {
	if len(b) < 2 {
		return "UNKNOWN", false
	}
	snType := binary.LittleEndian.Uint16(b[0:2])
	switch snType {
	case 1:
		name = "ASSOC_CHANGE"
		if len(b) >= 6 {
			state := sctpAssocChangeState(binary.LittleEndian.Uint16(b[4:6]))
			commLost = state == sctpCommLost || state == sctpShutdownComp || state == sctpCantStrAssoc
		}
	case 2:
		name = "PEER_ADDR_CHANGE"
	case 3:
		name = "SEND_FAILED"
	case 4:
		name = "REMOTE_ERROR"
	case 5:
		name = "SHUTDOWN_EVENT"
	case 6:
		name = "PARTIAL_DELIVERY_EVENT"
	case 7:
		name = "ADAPTATION_INDICATION"
	case 8:
		name = "AUTHENTICATION_EVENT"
	case 9:
		name = "SENDER_DRY_EVENT"
	default:
		name = "UNKNOWN"
	}
	return
}

// sctpConnectx attempts to establish multi-homed associations either all at
// once via the kernel's SCTP_SOCKOPT_CONNECTX (method 0, kernel selects) or
// by falling back to sequential unix.Connect retries across addrs (method
// 1), per the configured connection method.
func sctpConnectx(fd int, addrs []net.IP, port int, method int) error {
	if method == 1 || len(addrs) == 1 {
		var lastErr error
		for _, ip := range addrs {
			sa, err := sockaddrFor(ip.String(), port)
			if err != nil {
				lastErr = err
				continue
			}
			if err := unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS {
				lastErr = err
				continue
			}
			return nil
		}
		return lastErr
	}

	buf := make([]byte, 0, len(addrs)*28)
	for _, ip := range addrs {
		sa, err := sockaddrFor(ip.String(), port)
		if err != nil {
			return err
		}
		raw, err := rawSockaddr(sa)
		if err != nil {
			return err
		}
		buf = append(buf, raw...)
	}

	return unix.SetsockoptString(fd, solSCTP, sctpSockoptConnectx, string(buf))
}

func rawSockaddr(sa unix.Sockaddr) ([]byte, error) {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		out := make([]byte, 16)
		out[0] = unix.AF_INET
		binary.BigEndian.PutUint16(out[2:4], uint16(v.Port))
		copy(out[4:8], v.Addr[:])
		return out, nil
	case *unix.SockaddrInet6:
		out := make([]byte, 28)
		out[0] = unix.AF_INET6
		binary.BigEndian.PutUint16(out[2:4], uint16(v.Port))
		copy(out[8:24], v.Addr[:])
		return out, nil
	}
	return nil, ErrorUnsupportedProtocol.Error(nil)
}

func sctpBindx(fd int, addrs []string, port int) error {
	buf := make([]byte, 0, len(addrs)*16)
	for _, a := range addrs {
		sa, err := sockaddrFor(a, port)
		if err != nil {
			return err
		}
		raw, err := rawSockaddr(sa)
		if err != nil {
			return err
		}
		buf = append(buf, raw...)
	}
	return unix.SetsockoptString(fd, solSCTP, sctpSockoptBindxAdd, string(buf))
}

func setSctpInitMsg(fd int, v SctpInitMsgValue) error {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint16(raw[0:2], uint16(v.OStreams))
	binary.LittleEndian.PutUint16(raw[2:4], uint16(v.IStreams))
	binary.LittleEndian.PutUint16(raw[4:6], uint16(v.Attempts))
	binary.LittleEndian.PutUint16(raw[6:8], uint16(v.InitTimeo))
	return unix.SetsockoptString(fd, solSCTP, sctpInitMsg, string(raw))
}

func setSctpEvents(fd int, v SctpEventsValue) error {
	raw := make([]byte, 10)
	setFlag := func(i int, on bool) {
		if on {
			raw[i] = 1
		}
	}
	setFlag(0, v.DataIO)
	setFlag(1, v.Assoc)
	setFlag(2, v.Addr)
	setFlag(3, v.SendFailure)
	setFlag(4, v.PeerError)
	setFlag(5, v.Shutdown)
	setFlag(6, v.PartialDelivery)
	setFlag(7, v.Adaptation)
	setFlag(8, v.Auth)
	setFlag(9, v.SenderDry)
	return unix.SetsockoptString(fd, solSCTP, sctpEvents, string(raw))
}

func setSctpPathMTU(fd int, size int) error {
	return unix.SetsockoptInt(fd, solSCTP, sctpPeerAddrParams, size)
}

// recvSctpMessage reads one inbound datagram via recvmsg(2), peeking (not
// consuming) when peek is requested for DTLS-over-SCTP coexistence, and
// reports whether the payload is a notification rather than user data.
func recvSctpMessage(fd int, buf []byte, peek bool) (n int, notification bool, err error) {
	flags := 0
	if peek {
		flags |= unix.MSG_PEEK
	}
	n, _, recvFlags, _, err := unix.Recvmsg(fd, buf, nil, flags)
	if err != nil {
		return 0, false, err
	}
	notification = recvFlags&unix.MSG_NOTIFICATION != 0
	return n, notification, nil
}
