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

package reactor

import (
	"time"
)

// Interest is a bitmask of the readiness conditions a registration cares
// about.
type Interest uint8

const (
	InterestRead Interest = 1 << iota
	InterestWrite
	InterestError
)

func (i Interest) Has(o Interest) bool {
	return i&o == o
}

// Handler is the sum type registered with a Reactor: every registration is
// either fd-only (OnTimeout is never invoked) or fd-plus-timer (both inbound
// readiness and a periodic/one-shot deadline can drive it).
type Handler interface {
	// OnReadable fires when fd is readable.
	OnReadable(fd int)

	// OnWritable fires when fd is writable.
	OnWritable(fd int)

	// OnError fires when fd reports an error condition.
	OnError(fd int, err error)
}

// TimerHandler is implemented by handlers that also own a timer
// registration; a plain Handler that does not implement this interface is
// the fd-only member of the sum type.
type TimerHandler interface {
	Handler

	// OnTimeout fires when the handler's associated timer expires.
	OnTimeout(t *Timer)
}

// Reactor is the single-threaded readiness loop. All methods except
// TakeSnapshot and BlockForWritable are safe to call from within a
// dispatched callback; those two are the only suspension points and may be
// called recursively.
type Reactor interface {
	TimerRegistry

	// AddFD registers handler for the given interest mask on fd. Calling
	// AddFD again for an fd already registered with that handler widens
	// the mask; a different handler for an already-registered fd fails
	// with ErrorAlreadyRegistered.
	AddFD(fd int, handler Handler, mask Interest) error

	// RemoveFD narrows or clears the registration for fd/handler/mask. It
	// is always legal, including from within that fd's own callback.
	RemoveFD(fd int, handler Handler, mask Interest) error

	// TakeSnapshot computes the next deadline, waits up to it for fd
	// readiness (or returns immediately if blocking is false), then
	// dispatches every ready callback: readiness callbacks before timeout
	// callbacks, timeout callbacks in increasing deadline order.
	TakeSnapshot(blocking bool) error

	// BlockForWritable recursively drives the reactor until fd is
	// writable or closes.
	BlockForWritable(fd int) error

	// Close releases the backend's OS resources. Pending handlers are not
	// notified.
	Close() error
}

// TriState is the three-valued outcome of AnyTimeout, reflecting that the
// control language's selection construct distinguishes "already matched"
// from "might still match".
type TriState uint8

const (
	TriNo TriState = iota
	TriMaybe
	TriYes
)

// TimerRegistry tracks the active-timer list shared by the reactor's
// deadline computation and the control state machine's guard timer.
type TimerRegistry interface {
	// Start inserts timer into the active list with the given duration,
	// or its own Default if d is zero. Restarting a running timer resets
	// the deadline. A negative or non-finite duration fails with
	// ErrorInvalidTimer.
	Start(t *Timer, d time.Duration) error

	// Stop removes timer from the active list without generating a
	// timeout event.
	Stop(t *Timer)

	// Running reports whether timer is currently started and unexpired.
	Running(t *Timer) bool

	// TimedOut reports whether timer has expired as of the last
	// snapshot.
	TimedOut(t *Timer) bool

	// AnyRunning reports whether any timer is currently active.
	AnyRunning() bool

	// AnyTimeout is Yes if some timer expired by the last snapshot, Maybe
	// if one is running but unexpired, No otherwise.
	AnyTimeout() TriState

	// StopAll clears the entire active-timer list without generating
	// timeout events.
	StopAll()

	// EarliestDeadline returns the minimum expiration over active
	// timers.
	EarliestDeadline() (time.Time, bool)

	// SaveControlTimers snapshots the current active-timer list into a
	// single backup slot, for use when entering a nested testcase scope.
	SaveControlTimers()

	// RestoreControlTimers replaces the active-timer list with the
	// contents of the backup slot saved by SaveControlTimers.
	RestoreControlTimers()
}
