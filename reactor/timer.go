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

// Timer is a node in the reactor's active-timer doubly-linked list. A zero
// Timer is inactive; Start inserts it into the list and assigns expiration,
// Stop or a fired timeout removes it again.
type Timer struct {
	// Default is the duration used by Start when called with d == 0.
	Default time.Duration

	// Periodic, when true, re-arms the timer for Default (or the last
	// used duration) immediately after it fires instead of retiring it.
	Periodic bool

	// CallOnAnyEvent requests the owning handler's OnTimeout be invoked
	// even when a readiness callback already fired for the same fd in
	// the same snapshot (used by handlers that must always see both).
	CallOnAnyEvent bool

	handler TimerHandler

	started    bool
	expired    bool
	startTime  time.Time
	expiration time.Time
	duration   time.Duration

	prev *Timer
	next *Timer
	in   *timerList
}

// NewTimer returns an inactive timer bound to the given handler's
// OnTimeout, with def as the duration used when Start(t, 0) is called.
func NewTimer(handler TimerHandler, def time.Duration) *Timer {
	return &Timer{Default: def, handler: handler}
}

func (t *Timer) remove() {
	if t.in == nil {
		return
	}
	l := t.in
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		l.head = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		l.tail = t.prev
	}
	t.prev, t.next, t.in = nil, nil, nil
	t.started = false
}

// timerList is the active-timer doubly-linked list backing one
// TimerRegistry instance (or one SaveControlTimers backup slot).
type timerList struct {
	head *Timer
	tail *Timer
}

func (l *timerList) insert(t *Timer, now time.Time, d time.Duration) {
	if t.in == l {
		// already active: reset the deadline in place
		t.startTime = now
		t.duration = d
		t.expiration = now.Add(d)
		t.expired = false
		return
	}
	if t.in != nil {
		t.remove()
	}
	t.startTime = now
	t.duration = d
	t.expiration = now.Add(d)
	t.expired = false
	t.started = true
	t.in = l
	t.prev = l.tail
	t.next = nil
	if l.tail != nil {
		l.tail.next = t
	} else {
		l.head = t
	}
	l.tail = t
}

func (l *timerList) earliest() (time.Time, bool) {
	var best time.Time
	var ok bool
	for t := l.head; t != nil; t = t.next {
		if t.expired {
			continue
		}
		if !ok || t.expiration.Before(best) {
			best = t.expiration
			ok = true
		}
	}
	return best, ok
}

// expireDue walks the active list marking, in increasing deadline order,
// every timer whose expiration is at or before now as expired, invoking its
// handler's OnTimeout and either retiring it or re-arming it when Periodic.
func (l *timerList) expireDue(now time.Time) {
	for {
		var earliest *Timer
		for t := l.head; t != nil; t = t.next {
			if t.expired || t.expiration.After(now) {
				continue
			}
			if earliest == nil || t.expiration.Before(earliest.expiration) {
				earliest = t
			}
		}
		if earliest == nil {
			return
		}
		earliest.expired = true
		h := earliest.handler
		periodic := earliest.Periodic
		d := earliest.duration
		if periodic {
			earliest.startTime = now
			earliest.expiration = now.Add(d)
			earliest.expired = false
		} else {
			earliest.remove()
		}
		if h != nil {
			h.OnTimeout(earliest)
		}
	}
}

// retarget rewrites every node's owning-list pointer to l; used when a
// whole list is moved to a new home (SaveControlTimers/RestoreControlTimers
// swap the struct by value, which would otherwise leave node back-pointers
// referring to the old home).
func (l *timerList) retarget() {
	for t := l.head; t != nil; t = t.next {
		t.in = l
	}
}

func (l *timerList) stopAll() {
	for t := l.head; t != nil; {
		next := t.next
		t.remove()
		t = next
	}
}
