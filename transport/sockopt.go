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

// applyPreBindOptions applies the subset of options whose contract requires
// them to be set before bind(2): ReuseAddress and Freebind.
func applyPreBindOptions(fd int, proto Protocol, opts []Option) error {
	for _, o := range opts {
		switch o.Name {
		case OptReuseAddress:
			if err := setReuseAddr(fd, o.Bool); err != nil {
				return ErrorSocket.Error(err)
			}
		case OptFreebind:
			if err := setFreebind(fd, o.Bool); err != nil {
				return ErrorSocket.Error(err)
			}
		case OptSctpAdditionalLocalAddresses:
			if !proto.isSCTP() {
				return ErrorInvalidOption.Error(nil)
			}
			// applied after bind via sctpBindx in applyPostBindOptions
		}
	}
	return nil
}

// applyPostBindOptions applies every other recognized option, in whatever
// order the caller supplied them; SctpAdditionalLocalAddresses triggers
// sctp_bindx here because the listener must already hold its first bound
// address.
func applyPostBindOptions(fd int, proto Protocol, opts []Option) error {
	for _, o := range opts {
		if o.Name == OptReuseAddress || o.Name == OptFreebind {
			continue
		}
		if err := applyOption(fd, proto, o); err != nil {
			return err
		}
	}
	return nil
}

func applyOption(fd int, proto Protocol, o Option) error {
	switch o.Name {
	case OptReuseAddress:
		return wrapSocket(setReuseAddr(fd, o.Bool))
	case OptTcpNoDelay:
		if proto.isSCTP() {
			return ErrorInvalidOption.Error(nil)
		}
		return wrapSocket(setNoDelay(fd, o.Bool))
	case OptSctpNoDelay:
		if !proto.isSCTP() {
			return ErrorInvalidOption.Error(nil)
		}
		return wrapSocket(setSctpNoDelay(fd, o.Bool))
	case OptLinger:
		return wrapSocket(setLinger(fd, o.Linger))
	case OptFreebind:
		return wrapSocket(setFreebind(fd, o.Bool))
	case OptKeepAlive:
		return wrapSocket(setKeepAlive(fd, o.KeepAlive))
	case OptSctpEvents:
		if !proto.isSCTP() {
			return ErrorInvalidOption.Error(nil)
		}
		return wrapSocket(setSctpEvents(fd, o.SctpEvents))
	case OptSctpInitMsg:
		if !proto.isSCTP() {
			return ErrorInvalidOption.Error(nil)
		}
		return wrapSocket(setSctpInitMsg(fd, o.SctpInitMsg))
	case OptSctpAdditionalLocalAddresses:
		if !proto.isSCTP() {
			return ErrorInvalidOption.Error(nil)
		}
		return wrapSocket(sctpBindx(fd, o.Addresses, 0))
	case OptSctpPathMTU:
		if !proto.isSCTP() {
			return ErrorInvalidOption.Error(nil)
		}
		return wrapSocket(setSctpPathMTU(fd, o.Int))
	case OptSslSupport, OptCertOptions, OptAlpnList, OptTlsHostname, OptDtlsSrtpProfiles:
		// Consumed by StartTLS's tls.Config construction, not applied to
		// the raw descriptor; recognized here only so SetOption does not
		// reject them before a handshake has happened.
		return nil
	case OptBroadcast:
		if proto != ProtocolUDP && proto != ProtocolDTLSUDP {
			return ErrorInvalidOption.Error(nil)
		}
		return wrapSocket(setBroadcast(fd, o.Bool))
	}
	return ErrorInvalidOption.Error(nil)
}

func wrapSocket(err error) error {
	if err == nil {
		return nil
	}
	return ErrorSocket.Error(err)
}
