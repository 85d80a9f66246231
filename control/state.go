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

// State enumerates every Endpoint Role value the control state machine can
// occupy, across all three roles.
type State uint8

const (
	StateHCIdle State = iota
	StateHCConfiguring
	StateHCActive
	StateHCOverloaded
	StateHCExit

	StateMTCInitial
	StateMTCIdle
	StateMTCControlPart
	StateMTCTestcase
	StateMTCPaused
	StateMTCTerminatingTestcase
	StateMTCTerminatingExecution
	StateMTCStart
	StateMTCStop
	StateMTCKill
	StateMTCConnect
	StateMTCDisconnect
	StateMTCMap
	StateMTCUnmap
	StateMTCExit

	StatePTCInitial
	StatePTCIdle
	StatePTCFunction
	StatePTCStart
	StatePTCStop
	StatePTCKill
	StatePTCConnect
	StatePTCDisconnect
	StatePTCMap
	StatePTCUnmap
	StatePTCStopped
	StatePTCExit
)

var stateNames = map[State]string{
	StateHCIdle:        "HC-idle",
	StateHCConfiguring: "HC-configuring",
	StateHCActive:      "HC-active",
	StateHCOverloaded:  "HC-overloaded",
	StateHCExit:        "HC-exit",

	StateMTCInitial:              "MTC-initial",
	StateMTCIdle:                 "MTC-idle",
	StateMTCControlPart:          "MTC-controlpart",
	StateMTCTestcase:             "MTC-testcase",
	StateMTCPaused:               "MTC-paused",
	StateMTCTerminatingTestcase:  "MTC-terminating-testcase",
	StateMTCTerminatingExecution: "MTC-terminating-execution",
	StateMTCStart:                "MTC-start",
	StateMTCStop:                 "MTC-stop",
	StateMTCKill:                 "MTC-kill",
	StateMTCConnect:              "MTC-connect",
	StateMTCDisconnect:           "MTC-disconnect",
	StateMTCMap:                  "MTC-map",
	StateMTCUnmap:                "MTC-unmap",
	StateMTCExit:                 "MTC-exit",

	StatePTCInitial:    "PTC-initial",
	StatePTCIdle:       "PTC-idle",
	StatePTCFunction:   "PTC-function",
	StatePTCStart:      "PTC-start",
	StatePTCStop:       "PTC-stop",
	StatePTCKill:       "PTC-kill",
	StatePTCConnect:    "PTC-connect",
	StatePTCDisconnect: "PTC-disconnect",
	StatePTCMap:        "PTC-map",
	StatePTCUnmap:      "PTC-unmap",
	StatePTCStopped:    "PTC-stopped",
	StatePTCExit:       "PTC-exit",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "Unknown"
}

// exitState returns the terminal state for an abrupt control-socket close,
// per role.
func (r Role) exitState() State {
	switch r {
	case RoleHC:
		return StateHCExit
	case RoleMTC:
		return StateMTCExit
	case RolePTC:
		return StatePTCExit
	}
	return StateHCExit
}
