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

import "github.com/nabbar/ttcn-runtime/errors"

const (
	ErrorParamsEmpty errors.CodeError = iota + errors.MinPkgTransport
	ErrorInvalidOption
	ErrorUnsupportedProtocol
	ErrorHostname
	ErrorAddressInUse
	ErrorSocket
	ErrorTemporarilyUnavailable
	ErrorInvalidConnection
	ErrorTLS
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamsEmpty)
	errors.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorParamsEmpty:
		return "transport: given parameters is empty"
	case ErrorInvalidOption:
		return "transport: unrecognized or misapplied socket option"
	case ErrorUnsupportedProtocol:
		return "transport: protocol not supported on this platform"
	case ErrorHostname:
		return "transport: could not resolve address"
	case ErrorAddressInUse:
		return "transport: address already in use"
	case ErrorSocket:
		return "transport: socket operation failed"
	case ErrorTemporarilyUnavailable:
		return "transport: operation would block"
	case ErrorInvalidConnection:
		return "transport: connection id does not designate a live descriptor"
	case ErrorTLS:
		return "transport: TLS/DTLS operation failed"
	}

	return ""
}

// ErrorKind is the stable, test-layer-observable discriminant carried by a
// Result event; it is distinct from the internal CodeError range above,
// which is only used for Go error values returned synchronously from calls
// that fail before any connection id could be produced.
type ErrorKind uint8

const (
	KindSocket ErrorKind = iota
	KindHostname
	KindInvalidConnection
	KindInvalidInputParameter
	KindTemporarilyUnavailable
	KindUnsupportedProtocol
	KindInsufficientMemory
	KindGeneral
	KindAvailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindSocket:
		return "Socket"
	case KindHostname:
		return "Hostname"
	case KindInvalidConnection:
		return "InvalidConnection"
	case KindInvalidInputParameter:
		return "InvalidInputParameter"
	case KindTemporarilyUnavailable:
		return "TemporarilyUnavailable"
	case KindUnsupportedProtocol:
		return "UnsupportedProtocol"
	case KindInsufficientMemory:
		return "InsufficientMemory"
	case KindGeneral:
		return "General"
	case KindAvailable:
		return "Available"
	}
	return "Unknown"
}
