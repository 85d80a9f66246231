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
	"context"
	"sync"
	"time"

	"github.com/nabbar/ttcn-runtime/buffer"
	libctx "github.com/nabbar/ttcn-runtime/context"
	"github.com/nabbar/ttcn-runtime/logger"
	"github.com/nabbar/ttcn-runtime/reactor"
	"github.com/nabbar/ttcn-runtime/transport"
	"github.com/nabbar/ttcn-runtime/wire"
)

type controlConn struct {
	mux transport.Mux
	id  int
}

type endpoint struct {
	m sync.Mutex
	x libctx.Config[uint8] // cf const key...
	l logger.Logger

	guard *reactor.Timer

	onTransition []TransitionFunc
}

func newEndpoint(ctx context.Context, log logger.Logger) *endpoint {
	e := &endpoint{
		x: libctx.New[uint8](ctx),
		l: log,
	}
	return e
}

func (o *endpoint) log() logger.Logger {
	if o.l == nil {
		return nil
	}
	return o.l
}

func (o *endpoint) Init(role Role) error {
	o.m.Lock()
	defer o.m.Unlock()

	o.x.Store(keyRole, role)
	o.x.Store(keyState, role.initialState())
	o.x.Delete(keyConnID)
	o.x.Store(keyDebug, false)
	o.x.Store(keyDeferred, make([][]byte, 0))

	return nil
}

func (o *endpoint) Teardown() {
	o.m.Lock()
	defer o.m.Unlock()

	o.x.Delete(keyRole)
	o.x.Delete(keyState)
	o.x.Delete(keyConnID)
	o.x.Delete(keyDebug)
	o.x.Delete(keyDeferred)
}

func (o *endpoint) Role() (Role, bool) {
	if i, l := o.x.Load(keyRole); !l {
		return RoleHC, false
	} else if v, k := i.(Role); !k {
		return RoleHC, false
	} else {
		return v, true
	}
}

func (o *endpoint) State() State {
	if i, l := o.x.Load(keyState); !l {
		return StateHCIdle
	} else if v, k := i.(State); !k {
		return StateHCIdle
	} else {
		return v
	}
}

func (o *endpoint) setState(s State) {
	o.x.Store(keyState, s)
}

func (o *endpoint) SetControlConn(mux transport.Mux, connID int) error {
	o.m.Lock()
	defer o.m.Unlock()

	if _, l := o.x.Load(keyConnID); l {
		return ErrorAlreadyConnected.Error(nil)
	}

	o.x.Store(keyConnID, &controlConn{mux: mux, id: connID})
	return nil
}

func (o *endpoint) ClearControlConn() {
	o.m.Lock()
	defer o.m.Unlock()

	o.x.Delete(keyConnID)

	if role, ok := o.Role(); ok {
		from := o.State()
		to := role.exitState()
		o.setState(to)
		o.fireTransition(from, to, wire.ExitHC)
	}
}

func (o *endpoint) conn() (*controlConn, bool) {
	if i, l := o.x.Load(keyConnID); !l {
		return nil, false
	} else if v, k := i.(*controlConn); !k || v == nil {
		return nil, false
	} else {
		return v, true
	}
}

func (o *endpoint) SendMessage(msgType wire.MessageType, writeFields func(buffer.Buffer)) error {
	c, ok := o.conn()
	if !ok {
		return ErrorNotConnected.Error(nil)
	}

	buf := buffer.New()
	wire.WriteMessage(buf, msgType, writeFields)

	data := buf.Bytes()
	for len(data) > 0 {
		n, err := c.mux.Send(c.id, data, transport.SctpHint{})
		if err != nil {
			return err
		}
		data = data[n:]
	}

	return nil
}

func (o *endpoint) OnTransition(fct TransitionFunc) {
	if fct == nil {
		return
	}
	o.m.Lock()
	defer o.m.Unlock()
	o.onTransition = append(o.onTransition, fct)
}

func (o *endpoint) fireTransition(from, to State, msgType wire.MessageType) {
	for _, fct := range o.onTransition {
		if fct != nil {
			fct(from, to, msgType)
		}
	}
}

func (o *endpoint) InDebugMode() bool {
	if i, l := o.x.Load(keyDebug); !l {
		return false
	} else if v, k := i.(bool); !k {
		return false
	} else {
		return v
	}
}

func (o *endpoint) EnterDebugMode() {
	o.x.Store(keyDebug, true)
}

func (o *endpoint) deferredFrames() [][]byte {
	if i, l := o.x.Load(keyDeferred); !l {
		return nil
	} else if v, k := i.([][]byte); !k {
		return nil
	} else {
		return v
	}
}

func (o *endpoint) deferFrame(raw []byte) {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	o.x.Store(keyDeferred, append(o.deferredFrames(), cp))
}

func (o *endpoint) LeaveDebugMode(buf buffer.Buffer) {
	o.m.Lock()
	defer o.m.Unlock()

	o.x.Store(keyDebug, false)

	frames := o.deferredFrames()
	o.x.Store(keyDeferred, make([][]byte, 0))

	for i := len(frames) - 1; i >= 0; i-- {
		buf.PushFront(frames[i])
	}
}

func (o *endpoint) HandleInbound(msgType wire.MessageType, payload buffer.Buffer) error {
	if o.InDebugMode() {
		if msgType == wire.DebugCommand || msgType == wire.Stop {
			return o.dispatchTransition(msgType, payload)
		}

		fields := payload.Bytes()
		reframed := buffer.New()
		wire.WriteMessage(reframed, msgType, func(b buffer.Buffer) {
			b.AppendBytes(fields)
		})
		o.deferFrame(reframed.Bytes())
		return nil
	}

	return o.dispatchTransition(msgType, payload)
}

func (o *endpoint) dispatchTransition(msgType wire.MessageType, payload buffer.Buffer) error {
	role, ok := o.Role()
	if !ok {
		return ErrorNotConnected.Error(nil)
	}

	if !IsAllowed(role, msgType) {
		return ErrorProtocol.Error(nil)
	}

	from := o.State()
	to, err := o.transition(role, from, msgType)
	if err != nil {
		return err
	}

	o.setState(to)
	o.fireTransition(from, to, msgType)

	return nil
}

func (o *endpoint) StartGuardTimer(react reactor.TimerRegistry, d time.Duration, onExpire func()) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.guard == nil {
		o.guard = reactor.NewTimer(&guardHandler{onExpire: onExpire}, d)
	}

	_ = react.Start(o.guard, d)
}

func (o *endpoint) StopGuardTimer(react reactor.TimerRegistry) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.guard == nil {
		return
	}
	react.Stop(o.guard)
}

// guardHandler adapts a plain callback to reactor.TimerHandler for the
// testcase guard timer; it never registers for fd readiness.
type guardHandler struct {
	onExpire func()
}

func (g *guardHandler) OnReadable(fd int)          {}
func (g *guardHandler) OnWritable(fd int)          {}
func (g *guardHandler) OnError(fd int, err error)  {}
func (g *guardHandler) OnTimeout(t *reactor.Timer) {
	if g.onExpire != nil {
		g.onExpire()
	}
}
