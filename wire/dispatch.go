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
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"

	"github.com/nabbar/ttcn-runtime/buffer"
	"github.com/nabbar/ttcn-runtime/logger"
)

// Handler processes one decoded message's payload fields.
type Handler func(payload buffer.Buffer) error

// unknownFrameDump is the structured record logged, CBOR-encoded, for a
// message type with no registered Handler. Kept small: a hex dump of the
// whole payload is enough to reconstruct the frame for later analysis
// without needing the field-level decoder for a type nobody registered.
type unknownFrameDump struct {
	Type    uint32 `cbor:"type"`
	Length  int    `cbor:"length"`
	Payload string `cbor:"payload_hex"`
}

// Dispatch reads exactly one frame from buf and routes it through handlers.
// A type absent from handlers (whether or not it is in the closed
// catalogue) is logged at warning level with a CBOR-encoded hex dump and
// the frame is consumed without error, matching the codec's unknown-type
// contract. It returns ErrorFrameNotReady when buf holds no complete frame.
func Dispatch(buf buffer.Buffer, log logger.Logger, handlers map[MessageType]Handler) error {
	msgType, payload, err := ReadMessage(buf)
	if err != nil {
		return err
	}

	h, ok := handlers[msgType]
	if !ok {
		logUnknown(log, msgType, payload)
		return nil
	}

	return h(payload)
}

func logUnknown(log logger.Logger, msgType MessageType, payload buffer.Buffer) {
	if log == nil {
		return
	}

	raw := payload.Bytes()
	dump := unknownFrameDump{
		Type:    uint32(msgType),
		Length:  len(raw),
		Payload: hex.EncodeToString(raw),
	}

	enc, encErr := cbor.Marshal(dump)
	if encErr != nil {
		log.Warning("wire: unhandled message type", msgType.String())
		return
	}

	log.Warning("wire: unhandled message type", hex.EncodeToString(enc))
}
