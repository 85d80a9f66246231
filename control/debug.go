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

import (
	"github.com/nabbar/ttcn-runtime/buffer"
	"github.com/nabbar/ttcn-runtime/wire"
)

// PumpInbound decodes and dispatches every complete frame currently
// buffered in buf, in arrival order, stopping at the first incomplete
// frame. It is the single entry point a control connection's reader loop
// calls on every readability notification, in both ordinary and debug mode:
// HandleInbound itself decides whether a given frame is processed or
// deferred.
func (o *endpoint) PumpInbound(buf buffer.Buffer) error {
	for buf.PeekFrameReady() {
		msgType, payload, err := wire.ReadMessage(buf)
		if err != nil {
			return err
		}

		if err = o.HandleInbound(msgType, payload); err != nil {
			return err
		}
	}

	return nil
}
