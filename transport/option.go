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

// Option is one entry of the closed set of per-connection and global socket
// options. Exactly one of the typed fields is meaningful, selected by Name.
type Option struct {
	Name OptionName

	Bool bool
	Int  int

	Linger       LingerValue
	KeepAlive    KeepAliveValue
	SctpEvents   SctpEventsValue
	SctpInitMsg  SctpInitMsgValue
	SslSupport   SslSupportValue
	CertOptions  CertOptionsValue
	Addresses    []string
	ALPN         [][]byte
	HostnameStr  string
	SRTPProfiles string
}

type OptionName uint8

const (
	OptReuseAddress OptionName = iota
	OptTcpNoDelay
	OptSctpNoDelay
	OptLinger
	OptFreebind
	OptKeepAlive
	OptSctpEvents
	OptSctpInitMsg
	OptSctpAdditionalLocalAddresses
	OptSctpPathMTU
	OptSslSupport
	OptCertOptions
	OptAlpnList
	OptTlsHostname
	OptDtlsSrtpProfiles
	OptBroadcast
)

type LingerValue struct {
	On      bool
	Seconds int
}

type KeepAliveValue struct {
	Enable   bool
	Count    int
	Idle     int
	Interval int
}

type SctpEventsValue struct {
	DataIO           bool
	Assoc            bool
	Addr             bool
	SendFailure      bool
	PeerError        bool
	Shutdown         bool
	PartialDelivery  bool
	Adaptation       bool
	Auth             bool
	SenderDry        bool
}

type SctpInitMsgValue struct {
	OStreams  int
	IStreams  int
	Attempts  int
	InitTimeo int
}

type SslSupportValue struct {
	SSLv2   bool
	SSLv3   bool
	TLSv1   bool
	TLSv1_1 bool
	TLSv1_2 bool
	DTLSv1  bool
	DTLSv1_2 bool
}

type CertOptionsValue struct {
	KeyFile     string
	CertFile    string
	CAListFile  string
	CipherList  string
	Password    string
}
