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

import (
	"encoding/binary"
)

// byteBuffer is the only implementation of Buffer. Reads advance r; writes
// always append to data. r never exceeds len(data) - that invariant is
// maintained by every method that moves r.
type byteBuffer struct {
	data []byte
	r    int

	frameAt   int // read-side mark set by PeekFrameReady, -1 when none
	frameLen  int // decoded length of the frame at frameAt
	writeMark []int
}

func (b *byteBuffer) compact() {
	if b.r == 0 {
		return
	}
	if b.r < len(b.data)/2 && len(b.data) < 4096 {
		return
	}
	b.data = append([]byte(nil), b.data[b.r:]...)
	if b.frameAt >= 0 {
		b.frameAt -= b.r
	}
	for i := range b.writeMark {
		b.writeMark[i] -= b.r
	}
	b.r = 0
}

func (b *byteBuffer) AppendBytes(p []byte) {
	b.data = append(b.data, p...)
}

func zigzagEncode(i int64) uint64 {
	return uint64((i << 1) ^ (i >> 63))
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func putVarint(dst []byte, u uint64) []byte {
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}
	return append(dst, byte(u))
}

func (b *byteBuffer) AppendInt(i int64) {
	b.data = putVarint(b.data, zigzagEncode(i))
}

func (b *byteBuffer) AppendUint(u uint64) {
	b.data = putVarint(b.data, u)
}

func (b *byteBuffer) AppendLengthPrefixedString(s *string) {
	if s == nil {
		b.data = append(b.data, 0)
		return
	}
	b.data = append(b.data, 1)
	b.AppendUint(uint64(len(*s)))
	b.data = append(b.data, *s...)
}

func (b *byteBuffer) AppendQualifiedName(namespace string, name string) {
	b.AppendLengthPrefixedString(&namespace)
	b.AppendLengthPrefixedString(&name)
}

func (b *byteBuffer) available() int {
	return len(b.data) - b.r
}

func (b *byteBuffer) PeekFrameReady() bool {
	if b.available() < 4 {
		return false
	}
	length := int(binary.BigEndian.Uint32(b.data[b.r : b.r+4]))
	if b.available() < 4+length {
		return false
	}
	b.frameAt = b.r
	b.frameLen = length
	return true
}

func (b *byteBuffer) readVarint() (uint64, int, error) {
	var result uint64
	var shift uint
	for i := 0; i < 10; i++ {
		if b.r+i >= len(b.data) {
			return 0, 0, ErrorShortRead.Error(nil)
		}
		c := b.data[b.r+i]
		result |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrorMalformedVarint.Error(nil)
}

func (b *byteBuffer) ReadInt() (int64, error) {
	u, n, err := b.readVarint()
	if err != nil {
		return 0, err
	}
	b.r += n
	return zigzagDecode(u), nil
}

func (b *byteBuffer) ReadUint() (uint64, error) {
	u, n, err := b.readVarint()
	if err != nil {
		return 0, err
	}
	b.r += n
	return u, nil
}

func (b *byteBuffer) ReadLengthPrefixedString() (*string, error) {
	if b.available() < 1 {
		return nil, ErrorShortRead.Error(nil)
	}
	present := b.data[b.r]
	b.r++
	if present == 0 {
		return nil, nil
	}
	l, err := b.ReadUint()
	if err != nil {
		return nil, err
	}
	raw, err := b.ReadRaw(int(l))
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func (b *byteBuffer) ReadRaw(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrorNegativeLength.Error(nil)
	}
	if b.available() < n {
		return nil, ErrorShortRead.Error(nil)
	}
	out := make([]byte, n)
	copy(out, b.data[b.r:b.r+n])
	b.r += n
	return out, nil
}

func (b *byteBuffer) AdvancePastCurrentFrame() error {
	if b.frameAt < 0 {
		return ErrorFrameNotReady.Error(nil)
	}
	b.r = b.frameAt + 4 + b.frameLen
	b.frameAt = -1
	b.compact()
	return nil
}

func (b *byteBuffer) PushFront(p []byte) {
	out := make([]byte, 0, len(p)+b.available())
	out = append(out, p...)
	out = append(out, b.data[b.r:]...)
	b.data = out
	b.r = 0
	b.frameAt = -1
}

func (b *byteBuffer) StartFrame() int {
	mark := len(b.data)
	b.data = append(b.data, 0, 0, 0, 0)
	b.writeMark = append(b.writeMark, mark)
	return mark
}

func (b *byteBuffer) FinalizeOutgoingFrame() {
	if len(b.writeMark) == 0 {
		return
	}
	n := len(b.writeMark) - 1
	mark := b.writeMark[n]
	b.writeMark = b.writeMark[:n]
	length := len(b.data) - mark - 4
	binary.BigEndian.PutUint32(b.data[mark:mark+4], uint32(length))
}

func (b *byteBuffer) Len() int {
	return b.available()
}

func (b *byteBuffer) Bytes() []byte {
	return b.data[b.r:]
}

func (b *byteBuffer) Reset() {
	b.data = b.data[:0]
	b.r = 0
	b.frameAt = -1
	b.frameLen = 0
	b.writeMark = nil
}

// newByteBuffer is kept distinct from New() in interface.go so tests in
// this package can reach the concrete type without a further cast.
func newByteBuffer() *byteBuffer {
	return &byteBuffer{frameAt: -1}
}
