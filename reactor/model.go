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

type registration struct {
	handler Handler
	mask    Interest
}

// reactor is the only implementation of Reactor. dispatching guards a
// frozen/unfrozen two-phase registration update: AddFD/RemoveFD called
// from inside a callback stage their effect in pending* and it is applied
// only once the current snapshot's dispatch loop returns.
type reactor struct {
	back backend

	reg map[int]*registration

	timers   timerList
	backup   timerList
	hasBackup bool

	dispatching bool
	pendingAdd  map[int]*registration
	pendingDel  map[int]bool
}

// New constructs a Reactor backed by the epoll-class primitive on Linux and
// by poll(2) everywhere else.
func New() (Reactor, error) {
	b, err := newBackend()
	if err != nil {
		return nil, err
	}
	return &reactor{
		back:       b,
		reg:        make(map[int]*registration),
		pendingAdd: make(map[int]*registration),
		pendingDel: make(map[int]bool),
	}, nil
}

func (r *reactor) AddFD(fd int, handler Handler, mask Interest) error {
	if handler == nil {
		return ErrorParamsEmpty.Error(nil)
	}
	if r.dispatching {
		r.pendingAdd[fd] = &registration{handler: handler, mask: mask}
		return nil
	}
	return r.applyAdd(fd, handler, mask)
}

func (r *reactor) applyAdd(fd int, handler Handler, mask Interest) error {
	if existing, ok := r.reg[fd]; ok {
		if existing.handler != handler {
			return ErrorAlreadyRegistered.Error(nil)
		}
		existing.mask |= mask
		return r.back.Modify(fd, existing.mask)
	}
	r.reg[fd] = &registration{handler: handler, mask: mask}
	return r.back.Add(fd, mask)
}

func (r *reactor) RemoveFD(fd int, handler Handler, mask Interest) error {
	if r.dispatching {
		r.pendingDel[fd] = true
		return nil
	}
	return r.applyRemove(fd, mask)
}

func (r *reactor) applyRemove(fd int, mask Interest) error {
	existing, ok := r.reg[fd]
	if !ok {
		return ErrorNotRegistered.Error(nil)
	}
	existing.mask &^= mask
	if existing.mask == 0 {
		delete(r.reg, fd)
		return r.back.Remove(fd)
	}
	return r.back.Modify(fd, existing.mask)
}

func (r *reactor) commitPending() {
	for fd, del := range r.pendingDel {
		if del {
			_ = r.applyRemove(fd, InterestRead|InterestWrite|InterestError)
		}
	}
	r.pendingDel = make(map[int]bool)
	for fd, reg := range r.pendingAdd {
		_ = r.applyAdd(fd, reg.handler, reg.mask)
	}
	r.pendingAdd = make(map[int]*registration)
}

func (r *reactor) TakeSnapshot(blocking bool) error {
	deadline, hasDeadline := r.timers.earliest()

	timeout := time.Duration(-1)
	if !blocking {
		timeout = 0
	} else if hasDeadline {
		d := time.Until(deadline)
		if d < 0 {
			d = 0
		}
		timeout = d
	}

	ready, err := r.back.Wait(timeout)
	if err != nil {
		return ErrorFatalWait.Error(err)
	}

	r.dispatching = true
	for _, rd := range ready {
		reg, ok := r.reg[rd.fd]
		if !ok || r.pendingDel[rd.fd] {
			continue
		}
		if rd.ready.Has(InterestError) && reg.mask.Has(InterestError) {
			reg.handler.OnError(rd.fd, ErrorFatalWait.Error(nil))
			continue
		}
		if rd.ready.Has(InterestRead) && reg.mask.Has(InterestRead) {
			reg.handler.OnReadable(rd.fd)
		}
		if rd.ready.Has(InterestWrite) && reg.mask.Has(InterestWrite) {
			reg.handler.OnWritable(rd.fd)
		}
	}

	r.timers.expireDue(time.Now())
	r.dispatching = false
	r.commitPending()

	return nil
}

func (r *reactor) BlockForWritable(fd int) error {
	for {
		if _, ok := r.reg[fd]; !ok {
			return ErrorNotRegistered.Error(nil)
		}
		ready, err := r.back.Wait(0)
		if err != nil {
			return ErrorFatalWait.Error(err)
		}
		for _, rd := range ready {
			if rd.fd == fd && (rd.ready.Has(InterestWrite) || rd.ready.Has(InterestError)) {
				return nil
			}
		}
		if err := r.TakeSnapshot(true); err != nil {
			return err
		}
	}
}

func (r *reactor) Close() error {
	return r.back.Close()
}

// --- TimerRegistry ---

func (r *reactor) Start(t *Timer, d time.Duration) error {
	if t == nil {
		return ErrorParamsEmpty.Error(nil)
	}
	if d == 0 {
		d = t.Default
	}
	if d < 0 {
		return ErrorInvalidTimer.Error(nil)
	}
	r.timers.insert(t, time.Now(), d)
	return nil
}

func (r *reactor) Stop(t *Timer) {
	if t == nil {
		return
	}
	t.remove()
}

func (r *reactor) Running(t *Timer) bool {
	return t != nil && t.started && t.in == &r.timers && !t.expired
}

func (r *reactor) TimedOut(t *Timer) bool {
	return t != nil && t.expired
}

func (r *reactor) AnyRunning() bool {
	return r.timers.head != nil
}

func (r *reactor) AnyTimeout() TriState {
	hasRunning := false
	for t := r.timers.head; t != nil; t = t.next {
		if t.expired {
			return TriYes
		}
		hasRunning = true
	}
	if hasRunning {
		return TriMaybe
	}
	return TriNo
}

func (r *reactor) StopAll() {
	r.timers.stopAll()
}

func (r *reactor) EarliestDeadline() (time.Time, bool) {
	return r.timers.earliest()
}

func (r *reactor) SaveControlTimers() {
	r.backup = r.timers
	r.backup.retarget()
	r.timers = timerList{}
	r.hasBackup = true
}

func (r *reactor) RestoreControlTimers() {
	if !r.hasBackup {
		return
	}
	r.timers = r.backup
	r.timers.retarget()
	r.backup = timerList{}
	r.hasBackup = false
}
