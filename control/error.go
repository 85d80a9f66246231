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

package control

import "github.com/nabbar/ttcn-runtime/errors"

const (
	ErrorNotConnected errors.CodeError = iota + errors.MinPkgControl
	ErrorAlreadyConnected
	ErrorProtocol
	ErrorInvalidTransition
	ErrorNotInDebugMode
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorNotConnected)
	errors.RegisterIdFctMessage(ErrorNotConnected, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorNotConnected:
		return "control: endpoint has no registered control socket"
	case ErrorAlreadyConnected:
		return "control: endpoint already has a registered control socket"
	case ErrorProtocol:
		return "control: inbound message type is not allowed for this role"
	case ErrorInvalidTransition:
		return "control: message type is not valid in the current state"
	case ErrorNotInDebugMode:
		return "control: endpoint is not currently in debug mode"
	}

	return ""
}
