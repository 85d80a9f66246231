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

import "github.com/nabbar/ttcn-runtime/buffer"

// DefaultFramer treats the entire unread prefix of buf as one message: it
// is ready as soon as any bytes at all are present. Suitable for UDP
// datagrams, where one read is one message, and for raw-stream TCP
// consumers that do their own framing above this layer.
func DefaultFramer(buf buffer.Buffer, _ []int) int {
	n := buf.Len()
	if n <= 0 {
		return -1
	}
	return n
}

// FixedOffsetFramer reads a fixed-width length field at a fixed offset and
// derives the total frame length from it: args is
// [offset, width, valueOffset, multiplier, endianness], meaning "read width
// bytes at offset, interpret with the given endianness, multiply by
// multiplier, add valueOffset, and that is the full frame length."
// endianness 0 is big-endian, 1 is little-endian. width must be 1, 2, 4 or 8.
func FixedOffsetFramer(buf buffer.Buffer, args []int) int {
	if len(args) != 5 {
		return -1
	}
	offset, width, valueOffset, multiplier, endianness := args[0], args[1], args[2], args[3], args[4]
	if offset < 0 || width <= 0 {
		return -1
	}

	b := buf.Bytes()
	if len(b) < offset+width {
		return -1
	}

	field := b[offset : offset+width]
	var v uint64
	if endianness == 1 {
		for i := width - 1; i >= 0; i-- {
			v = v<<8 | uint64(field[i])
		}
	} else {
		for i := 0; i < width; i++ {
			v = v<<8 | uint64(field[i])
		}
	}

	length := int(v)*multiplier + valueOffset
	if length < 0 {
		return -1
	}
	return length
}
