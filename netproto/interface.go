/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package netproto enumerates the transport-layer protocols the reactor,
// socket pool and transport mux can open a connection over.
//
// NetworkProtocol is a closed, uint8-backed enum so it fits directly into
// the wire codec's length-prefixed fields and Socket Pool bookkeeping
// without a separate string table.
package netproto

import (
	"math"
	"strings"
)

// NetworkProtocol identifies a socket domain/type pair.
type NetworkProtocol uint8

const (
	// NetworkEmpty is the zero value: no protocol selected.
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

// List returns every known protocol, in declaration order, NetworkEmpty
// excluded.
func List() []NetworkProtocol {
	return []NetworkProtocol{
		NetworkUnix,
		NetworkTCP,
		NetworkTCP4,
		NetworkTCP6,
		NetworkUDP,
		NetworkUDP4,
		NetworkUDP6,
		NetworkIP,
		NetworkIP4,
		NetworkIP6,
		NetworkUnixGram,
	}
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSpace(s)
	return s
}

// Parse returns the NetworkProtocol matching s, case-insensitively, after
// trimming surrounding whitespace and quote characters. It returns
// NetworkEmpty if nothing matches.
func Parse(s string) NetworkProtocol {
	s = strings.ToLower(clean(s))

	switch s {
	case "unix":
		return NetworkUnix
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	case "unixgram":
		return NetworkUnixGram
	default:
		return NetworkEmpty
	}
}

// ParseBytes returns the NetworkProtocol matching the string form of p.
func ParseBytes(p []byte) NetworkProtocol {
	return Parse(string(p))
}

// ParseInt64 returns the NetworkProtocol whose numeric value equals d. It
// returns NetworkEmpty for any value outside the valid uint8 protocol
// range, including negative values and values above NetworkUnixGram.
func ParseInt64(d int64) NetworkProtocol {
	if d <= 0 || d > math.MaxUint8 {
		return NetworkEmpty
	}

	p := NetworkProtocol(d)
	switch p {
	case NetworkUnix, NetworkTCP, NetworkTCP4, NetworkTCP6,
		NetworkUDP, NetworkUDP4, NetworkUDP6,
		NetworkIP, NetworkIP4, NetworkIP6, NetworkUnixGram:
		return p
	default:
		return NetworkEmpty
	}
}

// IsStream reports whether the protocol is connection-oriented
// (TCP/TLS-over-TCP variants and Unix stream sockets).
func (p NetworkProtocol) IsStream() bool {
	switch p {
	case NetworkTCP, NetworkTCP4, NetworkTCP6, NetworkUnix:
		return true
	default:
		return false
	}
}

// IsDatagram reports whether the protocol is connectionless (UDP and
// Unix datagram sockets).
func (p NetworkProtocol) IsDatagram() bool {
	switch p {
	case NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkUnixGram:
		return true
	default:
		return false
	}
}
