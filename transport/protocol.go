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

package transport

// Protocol is the wire family a connection was allocated for, including the
// security overlay: a TLSTCP connection is still framed and drained exactly
// like a TCP one, it just has a *tls.Conn in front of the raw descriptor.
type Protocol uint8

const (
	ProtocolTCP Protocol = iota
	ProtocolUDP
	ProtocolSCTP
	ProtocolTLSTCP
	ProtocolDTLSUDP
	ProtocolDTLSSCTP
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	case ProtocolSCTP:
		return "sctp"
	case ProtocolTLSTCP:
		return "tls"
	case ProtocolDTLSUDP:
		return "dtls-udp"
	case ProtocolDTLSSCTP:
		return "dtls-sctp"
	}
	return "unknown"
}

func (p Protocol) isStream() bool {
	switch p {
	case ProtocolTCP, ProtocolTLSTCP, ProtocolSCTP, ProtocolDTLSSCTP:
		return true
	}
	return false
}

func (p Protocol) isSCTP() bool {
	return p == ProtocolSCTP || p == ProtocolDTLSSCTP
}

func (p Protocol) isDTLS() bool {
	return p == ProtocolDTLSUDP || p == ProtocolDTLSSCTP
}

func (p Protocol) isTLS() bool {
	return p == ProtocolTLSTCP || p.isDTLS()
}
