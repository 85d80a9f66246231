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

// EventKind discriminates the tagged union delivered to the test layer.
type EventKind uint8

const (
	EventConnectionOpened EventKind = iota
	EventConnectionClosed
	EventReceive
	EventSctp
	EventResult
)

// Event is the single type carrying every variant the transport mux emits;
// only the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	ConnID   int
	UserTag  int
	Protocol Protocol

	LocalAddr  string
	LocalPort  uint16
	RemoteAddr string
	RemotePort uint16

	Payload []byte

	SctpKind    string
	SctpDetails string

	ErrKind ErrorKind
	OSErrno int
	OSText  string
}

// Sink receives events in the order the reactor dispatches them; Listen,
// Connect, Send, SendTo and Close all deliver through the same Sink so that
// ordering across a single connection is preserved end to end.
type Sink interface {
	Dispatch(Event)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Dispatch(e Event) { f(e) }
