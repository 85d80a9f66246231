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

import "github.com/nabbar/ttcn-runtime/wire"

// transition computes the next state for an already-allowed inbound
// message. An error message always raises locally and drives the role to
// its exit state, regardless of the current state. Every other case not
// explicitly named here leaves the state unchanged: messages such as
// Running/Alive/ComponentStatus/LogMessage/DebugCommand are informational
// and do not move the state machine.
func (o *endpoint) transition(role Role, from State, msgType wire.MessageType) (State, error) {
	if msgType == wire.ErrorMessage {
		return role.exitState(), nil
	}

	switch role {
	case RoleHC:
		return transitionHC(from, msgType)
	case RoleMTC:
		return transitionMTC(from, msgType)
	case RolePTC:
		return transitionPTC(from, msgType)
	}

	return from, ErrorInvalidTransition.Error(nil)
}

func transitionHC(from State, msgType wire.MessageType) (State, error) {
	switch {
	case from == StateHCIdle && msgType == wire.Configure:
		return StateHCConfiguring, nil
	case from == StateHCConfiguring && msgType == wire.Configure:
		// a second configuration request while one is already pending
		// restarts the same configuring state.
		return StateHCConfiguring, nil
	case msgType == wire.KillProcess:
		return StateHCExit, nil
	case msgType == wire.ExitHC:
		return StateHCExit, nil
	}

	return from, nil
}

// CompleteConfigure moves an HC role out of HC-configuring once the local
// configuration attempt finishes, to HC-active on success or back to
// HC-idle on failure. It has no wire-message counterpart: the HC decides
// this locally rather than on an inbound frame.
func (o *endpoint) CompleteConfigure(ok bool) {
	role, set := o.Role()
	if !set || role != RoleHC {
		return
	}

	from := o.State()
	if from != StateHCConfiguring {
		return
	}

	to := StateHCIdle
	if ok {
		to = StateHCActive
	}

	o.setState(to)
	o.fireTransition(from, to, wire.ConfigureAck)
}

// CompleteStartup moves a freshly created PTC out of PTC-initial into
// PTC-idle once its local setup (parsed command line, opened logs) is
// done. Unlike the MTC, a PTC never receives Configure over the wire: its
// creation request already carried everything it needs.
func (o *endpoint) CompleteStartup() {
	role, set := o.Role()
	if !set || role != RolePTC {
		return
	}

	from := o.State()
	if from != StatePTCInitial {
		return
	}

	o.setState(StatePTCIdle)
	o.fireTransition(from, StatePTCIdle, wire.PtcCreated)
}

// BeginStart moves an MTC from MTC-controlpart into MTC-start when it is
// about to issue a Start command to a PTC; the matching StartAck drives it
// back to MTC-controlpart through the ordinary transition table. Neither
// Start nor Kill is ever received by an MTC, so these two entries have no
// inbound-message counterpart.
func (o *endpoint) BeginStart() {
	o.beginLocalMTC(StateMTCControlPart, StateMTCStart)
}

// BeginKill moves an MTC from MTC-controlpart into MTC-kill when it is
// about to issue a Kill command to a PTC.
func (o *endpoint) BeginKill() {
	o.beginLocalMTC(StateMTCControlPart, StateMTCKill)
}

func (o *endpoint) beginLocalMTC(from, to State) {
	role, set := o.Role()
	if !set || role != RoleMTC {
		return
	}
	if o.State() != from {
		return
	}
	o.setState(to)
	o.fireTransition(from, to, wire.Start)
}

func transitionMTC(from State, msgType wire.MessageType) (State, error) {
	switch {
	case from == StateMTCInitial && msgType == wire.Configure:
		return StateMTCIdle, nil
	case from == StateMTCIdle && msgType == wire.ExecuteTestcase:
		return StateMTCControlPart, nil
	case from == StateMTCControlPart && msgType == wire.PtcVerdict:
		return StateMTCTerminatingTestcase, nil
	case from == StateMTCTerminatingTestcase && msgType == wire.Continue:
		return StateMTCIdle, nil
	case from == StateMTCControlPart && msgType == wire.Continue:
		return StateMTCIdle, nil
	case msgType == wire.ExitMTC:
		return StateMTCExit, nil
	case from == StateMTCStart && msgType == wire.StartAck:
		return StateMTCControlPart, nil
	case from == StateMTCControlPart && msgType == wire.Stop:
		return StateMTCStop, nil
	case from == StateMTCStop && msgType == wire.StopAck:
		return StateMTCControlPart, nil
	case from == StateMTCKill && msgType == wire.KillAck:
		return StateMTCControlPart, nil
	case from == StateMTCControlPart && msgType == wire.Connect:
		return StateMTCConnect, nil
	case from == StateMTCConnect && msgType == wire.ConnectAck:
		return StateMTCControlPart, nil
	case from == StateMTCControlPart && msgType == wire.Disconnect:
		return StateMTCDisconnect, nil
	case from == StateMTCDisconnect && msgType == wire.DisconnectAck:
		return StateMTCControlPart, nil
	case from == StateMTCControlPart && msgType == wire.Map:
		return StateMTCMap, nil
	case from == StateMTCMap && msgType == wire.MapAck:
		return StateMTCControlPart, nil
	case from == StateMTCControlPart && msgType == wire.Unmap:
		return StateMTCUnmap, nil
	case from == StateMTCUnmap && msgType == wire.UnmapAck:
		return StateMTCControlPart, nil
	}

	return from, nil
}

func transitionPTC(from State, msgType wire.MessageType) (State, error) {
	switch {
	case from == StatePTCIdle && msgType == wire.Start:
		return StatePTCFunction, nil
	case from == StatePTCFunction && msgType == wire.Stop:
		return StatePTCStopped, nil
	case from == StatePTCStopped && msgType == wire.Start:
		return StatePTCFunction, nil
	case msgType == wire.Kill:
		return StatePTCKill, nil
	case from == StatePTCFunction && msgType == wire.Connect:
		return StatePTCConnect, nil
	case from == StatePTCConnect && msgType == wire.ConnectAck:
		return StatePTCFunction, nil
	case from == StatePTCFunction && msgType == wire.Disconnect:
		return StatePTCDisconnect, nil
	case from == StatePTCDisconnect && msgType == wire.DisconnectAck:
		return StatePTCFunction, nil
	case from == StatePTCFunction && msgType == wire.Map:
		return StatePTCMap, nil
	case from == StatePTCMap && msgType == wire.MapAck:
		return StatePTCFunction, nil
	case from == StatePTCFunction && msgType == wire.Unmap:
		return StatePTCUnmap, nil
	case from == StatePTCUnmap && msgType == wire.UnmapAck:
		return StatePTCFunction, nil
	}

	return from, nil
}
