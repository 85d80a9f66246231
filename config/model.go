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

// Package config carries the process-wide, pre-connection configuration
// surface of a running component: which role it plays, how its control
// channel is reached, the default listen/connect targets and socket
// tuning knobs the transport layer consults before any connection
// exists, and the ambient logging and TLS settings threaded through
// from the rest of this module.
//
// A RuntimeConfig is ordinarily built from a file (YAML/JSON/TOML) plus
// environment overrides through Load, then validated once with
// Validate before the reactor and socket pool are started.
package config

import (
	"github.com/nabbar/ttcn-runtime/certificates"
	"github.com/nabbar/ttcn-runtime/duration"
	"github.com/nabbar/ttcn-runtime/file/perm"
	logcfg "github.com/nabbar/ttcn-runtime/logger/config"
)

// NetworkConfig groups the default bind/connect target and the transport
// tuning knobs consulted at Listen/Connect time.
type NetworkConfig struct {
	// DefaultListeningHost/Port is the bind target used when the caller
	// omits one at Listen time.
	DefaultListeningHost string `mapstructure:"defaultListeningHost" json:"defaultListeningHost" yaml:"defaultListeningHost" toml:"defaultListeningHost"`
	DefaultListeningPort uint16 `mapstructure:"defaultListeningPort" json:"defaultListeningPort" yaml:"defaultListeningPort" toml:"defaultListeningPort"`

	// RemoteHost/Port is the default connect target used when
	// MapBehavior is "connect".
	RemoteHost string `mapstructure:"remoteHost" json:"remoteHost" yaml:"remoteHost" toml:"remoteHost"`
	RemotePort uint16 `mapstructure:"remotePort" json:"remotePort" yaml:"remotePort" toml:"remotePort"`

	// MapBehavior is one of "connect", "listen" or "" (inert: the
	// mapping exists but opens no socket on its own).
	MapBehavior string `mapstructure:"mapBehavior" json:"mapBehavior" yaml:"mapBehavior" toml:"mapBehavior" validate:"omitempty,oneof=connect listen"`

	// MapProtocol is one of "tcp", "tls", "sctp", "udp".
	MapProtocol string `mapstructure:"mapProtocol" json:"mapProtocol" yaml:"mapProtocol" toml:"mapProtocol" validate:"required,oneof=tcp tls sctp udp"`

	// Backlog is the listen backlog; zero means SOMAXCONN.
	Backlog int `mapstructure:"backlog" json:"backlog" yaml:"backlog" toml:"backlog"`

	// PureNonBlocking, when true, forbids nesting the reactor loop from
	// inside a blocking send.
	PureNonBlocking bool `mapstructure:"pureNonBlocking" json:"pureNonBlocking" yaml:"pureNonBlocking" toml:"pureNonBlocking"`

	// PollTimeout and MaxNumOfPoll bound connect-probing waits.
	PollTimeout  duration.Duration `mapstructure:"pollTimeout" json:"pollTimeout" yaml:"pollTimeout" toml:"pollTimeout"`
	MaxNumOfPoll int               `mapstructure:"maxNumOfPoll" json:"maxNumOfPoll" yaml:"maxNumOfPoll" toml:"maxNumOfPoll"`

	// Broadcast enables SO_BROADCAST on UDP sockets.
	Broadcast bool `mapstructure:"broadcast" json:"broadcast" yaml:"broadcast" toml:"broadcast"`

	// ExtendedPortEvents augments the user-plane event surface with a
	// Result event on every Listen/Connect/Close.
	ExtendedPortEvents bool `mapstructure:"extendedPortEvents" json:"extendedPortEvents" yaml:"extendedPortEvents" toml:"extendedPortEvents"`

	TCPReuseAddress  bool              `mapstructure:"tcpReuseAddress" json:"tcpReuseAddress" yaml:"tcpReuseAddress" toml:"tcpReuseAddress"`
	UDPReuseAddress  bool              `mapstructure:"udpReuseAddress" json:"udpReuseAddress" yaml:"udpReuseAddress" toml:"udpReuseAddress"`
	SCTPReuseAddress bool              `mapstructure:"sctpReuseAddress" json:"sctpReuseAddress" yaml:"sctpReuseAddress" toml:"sctpReuseAddress"`
	SSLReuseAddress  bool              `mapstructure:"sslReuseAddress" json:"sslReuseAddress" yaml:"sslReuseAddress" toml:"sslReuseAddress"`
	TCPKeepAlive     bool              `mapstructure:"tcpKeepAlive" json:"tcpKeepAlive" yaml:"tcpKeepAlive" toml:"tcpKeepAlive"`
	TCPKeepAliveIdle duration.Duration `mapstructure:"tcpKeepAliveIdle" json:"tcpKeepAliveIdle" yaml:"tcpKeepAliveIdle" toml:"tcpKeepAliveIdle"`
	SSLKeepAlive     bool              `mapstructure:"sslKeepAlive" json:"sslKeepAlive" yaml:"sslKeepAlive" toml:"sslKeepAlive"`

	Multicast      string `mapstructure:"multicast" json:"multicast,omitempty" yaml:"multicast,omitempty" toml:"multicast,omitempty"`
	BindToDevice   string `mapstructure:"bindToDevice" json:"bindToDevice,omitempty" yaml:"bindToDevice,omitempty" toml:"bindToDevice,omitempty"`
	TLSCertPerConn bool   `mapstructure:"tlsCertPerConn" json:"tlsCertPerConn" yaml:"tlsCertPerConn" toml:"tlsCertPerConn"`
}

// SCTPConfig groups the SCTP association-level init parameters and the
// per-notification opt-in/out flags.
type SCTPConfig struct {
	// Stack is "kernel" or the name of an external user-space stack
	// registered as a transport.SCTPBridge.
	Stack string `mapstructure:"stack" json:"stack" yaml:"stack" toml:"stack" validate:"omitempty,oneof=kernel external"`

	// ConnectionMethod selects one of the three SCTP connect strategies
	// described for the transport layer (0, 1 or 2).
	ConnectionMethod int `mapstructure:"connectionMethod" json:"connectionMethod" yaml:"connectionMethod" toml:"connectionMethod" validate:"gte=0,lte=2"`

	InitNumOstreams   int               `mapstructure:"sinitNumOstreams" json:"sinitNumOstreams" yaml:"sinitNumOstreams" toml:"sinitNumOstreams"`
	InitMaxInstreams  int               `mapstructure:"sinitMaxInstreams" json:"sinitMaxInstreams" yaml:"sinitMaxInstreams" toml:"sinitMaxInstreams"`
	InitMaxAttempts   int               `mapstructure:"sinitMaxAttempts" json:"sinitMaxAttempts" yaml:"sinitMaxAttempts" toml:"sinitMaxAttempts"`
	InitMaxInitTimeo  duration.Duration `mapstructure:"sinitMaxInitTimeo" json:"sinitMaxInitTimeo" yaml:"sinitMaxInitTimeo" toml:"sinitMaxInitTimeo"`

	DataIOEvent         bool `mapstructure:"dataIOEvent" json:"dataIOEvent" yaml:"dataIOEvent" toml:"dataIOEvent"`
	AssociationEvent    bool `mapstructure:"associationEvent" json:"associationEvent" yaml:"associationEvent" toml:"associationEvent"`
	AddressEvent        bool `mapstructure:"addressEvent" json:"addressEvent" yaml:"addressEvent" toml:"addressEvent"`
	SendFailureEvent    bool `mapstructure:"sendFailureEvent" json:"sendFailureEvent" yaml:"sendFailureEvent" toml:"sendFailureEvent"`
	PeerErrorEvent      bool `mapstructure:"peerErrorEvent" json:"peerErrorEvent" yaml:"peerErrorEvent" toml:"peerErrorEvent"`
	ShutdownEvent       bool `mapstructure:"shutdownEvent" json:"shutdownEvent" yaml:"shutdownEvent" toml:"shutdownEvent"`
	PartialDeliveryEvent bool `mapstructure:"partialDeliveryEvent" json:"partialDeliveryEvent" yaml:"partialDeliveryEvent" toml:"partialDeliveryEvent"`
}

// ControlConfig groups the parameters of the control-plane channel
// itself: the TCP port the host controller listens on and, when the
// main test component resides on the same host, the Unix-domain socket
// path attempted before falling back to TCP.
type ControlConfig struct {
	Product string `mapstructure:"product" json:"product" yaml:"product" toml:"product" validate:"required"`
	TCPPort uint16 `mapstructure:"tcpPort" json:"tcpPort" yaml:"tcpPort" toml:"tcpPort" validate:"required"`

	// SocketDir is the directory the Unix-domain control socket is
	// created under; defaults to os.TempDir() when empty.
	SocketDir string `mapstructure:"socketDir" json:"socketDir,omitempty" yaml:"socketDir,omitempty" toml:"socketDir,omitempty"`

	// SocketPerm is the file mode the Unix-domain control socket is
	// created with.
	SocketPerm perm.Perm `mapstructure:"socketPerm" json:"socketPerm" yaml:"socketPerm" toml:"socketPerm"`
}

// SocketPath returns the Unix-domain control socket path for this
// configuration: "<SocketDir-or-os.TempDir>/<Product>-mctr-<TCPPort>".
func (c ControlConfig) SocketPath() string {
	dir := c.SocketDir
	if dir == "" {
		dir = defaultSocketDir()
	}
	return dir + "/" + c.Product + "-mctr-" + portString(c.TCPPort)
}

// RuntimeConfig is the full process-wide, pre-connection configuration
// surface of a running component.
type RuntimeConfig struct {
	// Role identifies whether this process is the host controller, the
	// main test component, or a parallel test component.
	Role Role `mapstructure:"role" json:"role" yaml:"role" toml:"role" validate:"required"`

	Control ControlConfig `mapstructure:"control" json:"control" yaml:"control" toml:"control" validate:"required"`
	Network NetworkConfig `mapstructure:"network" json:"network" yaml:"network" toml:"network" validate:"required"`
	SCTP    SCTPConfig    `mapstructure:"sctp" json:"sctp" yaml:"sctp" toml:"sctp"`

	// TLS carries the certificate, cipher, curve and version settings
	// applied when Network.MapProtocol is "tls", or per-connection when
	// Network.TLSCertPerConn is set.
	TLS certificates.Config `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`

	// Logger carries the ambient logging configuration (stdout, file,
	// syslog destinations and format) shared by every component role.
	Logger logcfg.Options `mapstructure:"logger" json:"logger" yaml:"logger" toml:"logger"`
}
