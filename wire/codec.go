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

package wire

import (
	"encoding/binary"

	"github.com/nabbar/ttcn-runtime/buffer"
)

// WriteMessage pushes one complete control frame onto buf: the outer length
// placeholder, the four-byte big-endian message type, then whatever fields
// writeFields appends, finally back-patching the length.
func WriteMessage(buf buffer.Buffer, msgType MessageType, writeFields func(buffer.Buffer)) {
	buf.StartFrame()
	appendUint32BE(buf, uint32(msgType))
	if writeFields != nil {
		writeFields(buf)
	}
	buf.FinalizeOutgoingFrame()
}

func appendUint32BE(buf buffer.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.AppendBytes(tmp[:])
}

// ReadMessage consumes exactly one complete frame from buf and returns its
// message type plus a fresh Buffer positioned over the frame's payload
// fields, ready for Read*. It reports ErrorFrameNotReady if buf does not yet
// hold a complete frame, in which case no bytes are consumed.
func ReadMessage(buf buffer.Buffer) (MessageType, buffer.Buffer, error) {
	if !buf.PeekFrameReady() {
		return 0, nil, ErrorFrameNotReady.Error(nil)
	}

	header := buf.Bytes()
	length := int(binary.BigEndian.Uint32(header[0:4]))
	if length < 4 {
		_ = buf.AdvancePastCurrentFrame()
		return 0, nil, ErrorMalformedFrame.Error(nil)
	}

	if _, err := buf.ReadRaw(4); err != nil {
		return 0, nil, ErrorMalformedFrame.Error(err)
	}
	frame, err := buf.ReadRaw(length)
	if err != nil {
		return 0, nil, ErrorMalformedFrame.Error(err)
	}
	if err = buf.AdvancePastCurrentFrame(); err != nil {
		return 0, nil, err
	}

	msgType := MessageType(binary.BigEndian.Uint32(frame[0:4]))

	payload := buffer.New()
	payload.AppendBytes(frame[4:])
	return msgType, payload, nil
}
