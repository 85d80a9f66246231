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

package buffer

// Buffer is an ordered run of octets with a read cursor that never exceeds
// the logical length, plus the append/read primitives the control codec and
// the transport framers build frames on top of.
type Buffer interface {
	// AppendBytes appends raw bytes to the end of the buffer.
	AppendBytes(b []byte)

	// AppendInt appends a signed integer using a zigzag, variable-width
	// encoding: small magnitudes cost one byte, the scheme is inherently
	// self-delimiting and symmetric with ReadInt.
	AppendInt(i int64)

	// AppendUint appends an unsigned integer using the same variable-width
	// continuation-bit scheme as AppendInt, without the zigzag step.
	AppendUint(u uint64)

	// AppendLengthPrefixedString appends an optional string: a presence
	// byte, then (if present) a variable-width length followed by the raw
	// bytes. A nil pointer encodes absence.
	AppendLengthPrefixedString(s *string)

	// AppendQualifiedName appends two length-prefixed strings back to
	// back: a namespace (module) part and a name part.
	AppendQualifiedName(namespace string, name string)

	// PeekFrameReady reports whether the buffer, from the read cursor,
	// holds at least 4 bytes plus the big-endian length those 4 bytes
	// decode to. It never advances the cursor.
	PeekFrameReady() bool

	// ReadInt decodes the next variable-width zigzag integer at the read
	// cursor and advances past it.
	ReadInt() (int64, error)

	// ReadUint decodes the next variable-width unsigned integer at the
	// read cursor and advances past it.
	ReadUint() (uint64, error)

	// ReadLengthPrefixedString decodes the next optional string written
	// by AppendLengthPrefixedString; a nil result reflects an encoded
	// absence.
	ReadLengthPrefixedString() (*string, error)

	// ReadRaw returns the next n bytes at the read cursor and advances
	// past them. The returned slice is a copy, safe to retain.
	ReadRaw(n int) ([]byte, error)

	// AdvancePastCurrentFrame skips the read cursor to the end of the
	// frame last reported ready by PeekFrameReady, regardless of how far
	// field reads have actually progressed into it. It fails with
	// ErrorFrameNotReady if no frame is currently ready.
	AdvancePastCurrentFrame() error

	// PushFront re-inserts raw bytes immediately ahead of the read
	// cursor, so the next reads see them first. Used to restore a
	// deferred message verbatim.
	PushFront(b []byte)

	// StartFrame reserves a 4-byte length placeholder at the current
	// write position and returns a mark identifying it, for later use
	// with FinalizeOutgoingFrame.
	StartFrame() int

	// FinalizeOutgoingFrame back-patches the 4-byte length placeholder
	// reserved by the most recent StartFrame with the number of bytes
	// written since, turning the just-encoded message into a
	// self-delimiting frame.
	FinalizeOutgoingFrame()

	// Len returns the number of unread bytes currently buffered.
	Len() int

	// Bytes returns the unread portion of the buffer without consuming
	// it. The returned slice must not be retained across further writes.
	Bytes() []byte

	// Reset discards all buffered content and read state.
	Reset()
}

// New returns an empty Buffer ready for append/read use.
func New() Buffer {
	return newByteBuffer()
}
