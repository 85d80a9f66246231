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

package buffer_test

import (
	"encoding/binary"

	. "github.com/nabbar/ttcn-runtime/buffer"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer round-trip", func() {
	It("reads back appended integers, strings and bytes in order", func() {
		b := New()
		b.AppendInt(-12345)
		b.AppendInt(0)
		b.AppendInt(9999999999)
		s := "hello world"
		b.AppendLengthPrefixedString(&s)
		b.AppendLengthPrefixedString(nil)
		b.AppendBytes([]byte{1, 2, 3, 4})

		i1, err := b.ReadInt()
		Expect(err).ToNot(HaveOccurred())
		Expect(i1).To(Equal(int64(-12345)))

		i2, err := b.ReadInt()
		Expect(err).ToNot(HaveOccurred())
		Expect(i2).To(Equal(int64(0)))

		i3, err := b.ReadInt()
		Expect(err).ToNot(HaveOccurred())
		Expect(i3).To(Equal(int64(9999999999)))

		ps, err := b.ReadLengthPrefixedString()
		Expect(err).ToNot(HaveOccurred())
		Expect(ps).ToNot(BeNil())
		Expect(*ps).To(Equal("hello world"))

		pn, err := b.ReadLengthPrefixedString()
		Expect(err).ToNot(HaveOccurred())
		Expect(pn).To(BeNil())

		raw, err := b.ReadRaw(4)
		Expect(err).ToNot(HaveOccurred())
		Expect(raw).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("round-trips a qualified name as two length-prefixed strings", func() {
		b := New()
		b.AppendQualifiedName("myModule", "myTestcase")

		ns, err := b.ReadLengthPrefixedString()
		Expect(err).ToNot(HaveOccurred())
		Expect(*ns).To(Equal("myModule"))

		name, err := b.ReadLengthPrefixedString()
		Expect(err).ToNot(HaveOccurred())
		Expect(*name).To(Equal("myTestcase"))
	})
})

var _ = Describe("Frame readiness and advance", func() {
	It("is not ready below 4 bytes and not ready until the declared length arrives", func() {
		b := New()
		Expect(b.PeekFrameReady()).To(BeFalse())

		b.AppendBytes([]byte{0, 0, 0, 5})
		Expect(b.PeekFrameReady()).To(BeFalse())

		b.AppendBytes([]byte("Hell"))
		Expect(b.PeekFrameReady()).To(BeFalse())

		b.AppendBytes([]byte("o"))
		Expect(b.PeekFrameReady()).To(BeTrue())
	})

	It("is idempotent: calling peek twice on the same prefix returns the same answer", func() {
		b := New()
		b.AppendBytes([]byte{0, 0, 0, 3})
		b.AppendBytes([]byte("abc"))
		Expect(b.PeekFrameReady()).To(BeTrue())
		Expect(b.PeekFrameReady()).To(BeTrue())
	})

	It("fails AdvancePastCurrentFrame when no frame is ready", func() {
		b := New()
		b.AppendBytes([]byte{0, 0, 0, 9})
		Expect(b.PeekFrameReady()).To(BeFalse())
		Expect(b.AdvancePastCurrentFrame()).To(HaveOccurred())
	})

	It("advances past the whole frame even if only part of it was read", func() {
		b := New()
		b.AppendBytes([]byte{0, 0, 0, 5})
		b.AppendBytes([]byte("Hello"))
		b.AppendBytes([]byte("NEXT"))

		Expect(b.PeekFrameReady()).To(BeTrue())
		raw, err := b.ReadRaw(2)
		Expect(err).ToNot(HaveOccurred())
		Expect(raw).To(Equal([]byte("He")))

		Expect(b.AdvancePastCurrentFrame()).To(Succeed())
		rest, err := b.ReadRaw(4)
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(Equal([]byte("NEXT")))
	})
})

var _ = Describe("PushFront", func() {
	It("replays pushed-back bytes before anything already buffered", func() {
		b := New()
		b.AppendBytes([]byte("WORLD"))
		b.PushFront([]byte("HELLO"))

		raw, err := b.ReadRaw(10)
		Expect(err).ToNot(HaveOccurred())
		Expect(raw).To(Equal([]byte("HELLOWORLD")))
	})
})

var _ = Describe("Outgoing frame finalization", func() {
	It("back-patches the reserved length prefix with the encoded payload size", func() {
		b := New()
		b.StartFrame()
		b.AppendUint(7) // message type
		s := "payload"
		b.AppendLengthPrefixedString(&s)
		b.FinalizeOutgoingFrame()

		out := b.Bytes()
		length := binary.BigEndian.Uint32(out[0:4])
		Expect(int(length)).To(Equal(len(out) - 4))
		Expect(b.PeekFrameReady()).To(BeTrue())
	})
})
