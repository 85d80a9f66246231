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

//go:build linux

package reactor

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// epollBackend is the scalable, edge-triggered readiness primitive required
// by the reactor on Linux. A sparse fd-to-mask map backs Modify/Remove since
// epoll itself does not expose the currently registered mask.
type epollBackend struct {
	mu   sync.Mutex
	fd   int
	mask map[int]Interest
	cap  int
}

func newBackend() (backend, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	c := rlimitNoFile()
	return &epollBackend{fd: fd, mask: make(map[int]Interest), cap: c}, nil
}

func rlimitNoFile() int {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 1024
	}
	return int(rl.Cur)
}

func toEpollEvents(mask Interest) uint32 {
	var ev uint32
	if mask.Has(InterestRead) {
		ev |= unix.EPOLLIN
	}
	if mask.Has(InterestWrite) {
		ev |= unix.EPOLLOUT
	}
	ev |= unix.EPOLLERR | unix.EPOLLHUP
	return ev
}

func (b *epollBackend) Add(fd int, mask Interest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ev := unix.EpollEvent{Events: toEpollEvents(mask), Fd: int32(fd)}
	if err := unix.EpollCtl(b.fd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return err
	}
	b.mask[fd] = mask
	return nil
}

func (b *epollBackend) Modify(fd int, mask Interest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ev := unix.EpollEvent{Events: toEpollEvents(mask), Fd: int32(fd)}
	if err := unix.EpollCtl(b.fd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return err
	}
	b.mask[fd] = mask
	return nil
}

func (b *epollBackend) Remove(fd int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.mask, fd)
	return unix.EpollCtl(b.fd, unix.EPOLL_CTL_DEL, fd, nil)
}

func (b *epollBackend) Capacity() int {
	return b.cap
}

func (b *epollBackend) Close() error {
	return unix.Close(b.fd)
}

func (b *epollBackend) Wait(timeout time.Duration) ([]readyFD, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	events := make([]unix.EpollEvent, 128)
	for {
		n, err := unix.EpollWait(b.fd, events, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		out := make([]readyFD, 0, n)
		for i := 0; i < n; i++ {
			var r Interest
			if events[i].Events&(unix.EPOLLIN|unix.EPOLLHUP) != 0 {
				r |= InterestRead
			}
			if events[i].Events&unix.EPOLLOUT != 0 {
				r |= InterestWrite
			}
			if events[i].Events&unix.EPOLLERR != 0 {
				r |= InterestError
			}
			out = append(out, readyFD{fd: int(events[i].Fd), ready: r})
		}
		return out, nil
	}
}
