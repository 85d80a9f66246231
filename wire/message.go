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

// MessageType is the closed, wire-stable integer catalogue every control
// frame's type field is drawn from.
type MessageType uint32

const (
	Version MessageType = iota

	Configure
	ConfigureAck
	ConfigureNak

	CreateMTC
	CreatePTC
	CreateAck
	CreateNak

	Start
	StartAck
	Stop
	StopAck
	Kill
	KillAck
	KillProcess

	Running
	Alive
	Done
	DoneAck
	Killed
	KilledAck
	CancelDone

	ComponentStatus

	ConnectListen
	Connect
	ConnectAck
	Disconnect
	DisconnectAck
	Map
	MapAck
	Unmap
	UnmapAck

	ExecuteControl
	ExecuteTestcase
	PtcVerdict
	MtcReady
	PtcCreated

	Continue
	ExitHC
	ExitMTC

	LogMessage
	ErrorMessage
	DebugCommand
)

// Error is the role table's generic protocol-error notification; it is
// carried as ErrorMessage on the wire, the two names referring to the same
// message type.
const Error = ErrorMessage

func (t MessageType) String() string {
	switch t {
	case Version:
		return "Version"
	case Configure:
		return "Configure"
	case ConfigureAck:
		return "ConfigureAck"
	case ConfigureNak:
		return "ConfigureNak"
	case CreateMTC:
		return "CreateMTC"
	case CreatePTC:
		return "CreatePTC"
	case CreateAck:
		return "CreateAck"
	case CreateNak:
		return "CreateNak"
	case Start:
		return "Start"
	case StartAck:
		return "StartAck"
	case Stop:
		return "Stop"
	case StopAck:
		return "StopAck"
	case Kill:
		return "Kill"
	case KillAck:
		return "KillAck"
	case KillProcess:
		return "KillProcess"
	case Running:
		return "Running"
	case Alive:
		return "Alive"
	case Done:
		return "Done"
	case DoneAck:
		return "DoneAck"
	case Killed:
		return "Killed"
	case KilledAck:
		return "KilledAck"
	case CancelDone:
		return "CancelDone"
	case ComponentStatus:
		return "ComponentStatus"
	case ConnectListen:
		return "ConnectListen"
	case Connect:
		return "Connect"
	case ConnectAck:
		return "ConnectAck"
	case Disconnect:
		return "Disconnect"
	case DisconnectAck:
		return "DisconnectAck"
	case Map:
		return "Map"
	case MapAck:
		return "MapAck"
	case Unmap:
		return "Unmap"
	case UnmapAck:
		return "UnmapAck"
	case ExecuteControl:
		return "ExecuteControl"
	case ExecuteTestcase:
		return "ExecuteTestcase"
	case PtcVerdict:
		return "PtcVerdict"
	case MtcReady:
		return "MtcReady"
	case PtcCreated:
		return "PtcCreated"
	case Continue:
		return "Continue"
	case ExitHC:
		return "ExitHC"
	case ExitMTC:
		return "ExitMTC"
	case LogMessage:
		return "LogMessage"
	case ErrorMessage:
		return "ErrorMessage"
	case DebugCommand:
		return "DebugCommand"
	}
	return "Unknown"
}

// Known reports whether t is a member of the closed catalogue above.
func (t MessageType) Known() bool {
	return t <= DebugCommand
}
