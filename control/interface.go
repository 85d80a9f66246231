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
	"time"

	"github.com/nabbar/ttcn-runtime/buffer"
	"github.com/nabbar/ttcn-runtime/logger"
	"github.com/nabbar/ttcn-runtime/reactor"
	"github.com/nabbar/ttcn-runtime/transport"
	"github.com/nabbar/ttcn-runtime/wire"
)

// keys into the Endpoint's libctx.Config[uint8] lifecycle map.
const (
	keyRole uint8 = iota
	keyState
	keyConnID
	keyDebug
	keyDeferred
)

// TransitionFunc is invoked after a legal inbound message has moved the
// Endpoint from one state to another. handlers registered through
// OnTransition observe every transition for every role.
type TransitionFunc func(from, to State, msgType wire.MessageType)

// Endpoint is the process-wide control state machine: exactly one role, one
// registered control socket at a time, and the transition table driven by
// inbound wire messages.
type Endpoint interface {
	// Init assigns the process's role and resets it to that role's initial
	// state. It may be called again after Teardown to re-arm the same
	// Endpoint for a new run.
	Init(role Role) error

	// Teardown clears role, state and any registered control socket.
	Teardown()

	// Role returns the role assigned by Init, or false if none is set.
	Role() (Role, bool)

	// State returns the current state.
	State() State

	// SetControlConn registers mux/connID as the control socket. Fails
	// with ErrorAlreadyConnected if one is already registered.
	SetControlConn(mux transport.Mux, connID int) error

	// ClearControlConn unregisters the control socket, per the
	// exactly-once-while-connected invariant, and drives the Endpoint to
	// its role's exit state as if the peer had closed the connection.
	ClearControlConn()

	// HandleInbound dispatches one already-decoded inbound message through
	// the allowed-table check and the transition table. In debug mode,
	// everything except DebugCommand and Stop is deferred instead.
	HandleInbound(msgType wire.MessageType, payload buffer.Buffer) error

	// PumpInbound decodes and dispatches every complete frame currently
	// buffered in buf, in arrival order.
	PumpInbound(buf buffer.Buffer) error

	// SendMessage encodes msgType/fields with wire.WriteMessage and writes
	// it out the registered control socket, blocking the reactor for
	// writability if the first attempt is partial.
	SendMessage(msgType wire.MessageType, writeFields func(buffer.Buffer)) error

	// EnterDebugMode suspends ordinary dispatch: subsequent HandleInbound
	// calls defer everything but DebugCommand/Stop.
	EnterDebugMode()

	// LeaveDebugMode resumes ordinary dispatch and replays every deferred
	// frame, oldest first, back onto buf ahead of its read cursor.
	LeaveDebugMode(buf buffer.Buffer)

	// InDebugMode reports whether the Endpoint is currently deferring.
	InDebugMode() bool

	// OnTransition registers fct to be called after every successful
	// state transition. Multiple registrations all fire, in registration
	// order.
	OnTransition(fct TransitionFunc)

	// StartGuardTimer arms the testcase guard timer against react, firing
	// onExpire after d (or the timer's own Default if d is zero).
	StartGuardTimer(react reactor.TimerRegistry, d time.Duration, onExpire func())

	// StopGuardTimer disarms the guard timer if it is running.
	StopGuardTimer(react reactor.TimerRegistry)

	// CompleteConfigure moves an HC out of HC-configuring once its local
	// configuration attempt finishes; no-op for any other role or state.
	CompleteConfigure(ok bool)

	// CompleteStartup moves a freshly created PTC from PTC-initial to
	// PTC-idle once its local setup is done; no-op for any other role or
	// state.
	CompleteStartup()

	// BeginStart moves an MTC into MTC-start ahead of issuing a Start
	// command to a PTC; no-op for any other role or state.
	BeginStart()

	// BeginKill moves an MTC into MTC-kill ahead of issuing a Kill
	// command to a PTC; no-op for any other role or state.
	BeginKill()
}

// New returns an Endpoint with no role assigned; call Init before use.
func New(ctx context.Context, log logger.Logger) Endpoint {
	return newEndpoint(ctx, log)
}
