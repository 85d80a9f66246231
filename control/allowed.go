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

// allowedHC, allowedMTC and allowedPTC mirror the role table: the set of
// inbound message types a process playing that role may legally receive.
// Anything outside the set is a protocol error raised to the peer.
var allowedHC = set(
	wire.ErrorMessage, wire.Configure, wire.CreateMTC, wire.CreatePTC,
	wire.KillProcess, wire.ExitHC, wire.DebugCommand,
)

var allowedMTCOnly = set(
	wire.ErrorMessage, wire.CreateAck, wire.StartAck, wire.Stop, wire.StopAck,
	wire.KillAck, wire.Running, wire.Alive, wire.DoneAck, wire.KilledAck,
	wire.CancelDone, wire.ComponentStatus, wire.ConnectListen, wire.Connect,
	wire.ConnectAck, wire.Disconnect, wire.DisconnectAck, wire.Map, wire.MapAck,
	wire.Unmap, wire.UnmapAck, wire.DebugCommand, wire.ExecuteControl,
	wire.ExecuteTestcase, wire.PtcVerdict, wire.Continue, wire.ExitMTC,
	wire.Configure,
)

// allowedPTC is "the same common set as MTC plus Start and Kill, minus
// MTC-only variants": ExecuteControl/ExecuteTestcase/ExitMTC/Configure are
// MTC-only (a PTC never receives a testcase script or process-wide
// configuration directly from the controller), CreateAck is MTC-only since
// only the MTC is told about newly created components.
var allowedPTC = derive(allowedMTCOnly, addRemove{
	add:    []wire.MessageType{wire.Start, wire.Kill},
	remove: []wire.MessageType{wire.ExecuteControl, wire.ExecuteTestcase, wire.ExitMTC, wire.Configure, wire.CreateAck},
})

type addRemove struct {
	add    []wire.MessageType
	remove []wire.MessageType
}

func set(types ...wire.MessageType) map[wire.MessageType]struct{} {
	m := make(map[wire.MessageType]struct{}, len(types))
	for _, t := range types {
		m[t] = struct{}{}
	}
	return m
}

func derive(base map[wire.MessageType]struct{}, diff addRemove) map[wire.MessageType]struct{} {
	m := make(map[wire.MessageType]struct{}, len(base))
	for t := range base {
		m[t] = struct{}{}
	}
	for _, t := range diff.remove {
		delete(m, t)
	}
	for _, t := range diff.add {
		m[t] = struct{}{}
	}
	return m
}

// IsAllowed reports whether msgType is a legal inbound message for role.
func IsAllowed(role Role, msgType wire.MessageType) bool {
	var table map[wire.MessageType]struct{}
	switch role {
	case RoleHC:
		table = allowedHC
	case RoleMTC:
		table = allowedMTCOnly
	case RolePTC:
		table = allowedPTC
	default:
		return false
	}
	_, ok := table[msgType]
	return ok
}
