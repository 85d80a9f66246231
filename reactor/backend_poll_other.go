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

//go:build !linux

package reactor

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollBackendFallback is the POSIX poll(2)-based fallback required wherever
// the epoll-class primitive is unavailable. A dense fd set is rebuilt into a
// pollfd array on every Wait call; that is the accepted cost of the
// fallback configuration.
type pollBackendFallback struct {
	mu   sync.Mutex
	mask map[int]Interest
}

func newBackend() (backend, error) {
	return &pollBackendFallback{mask: make(map[int]Interest)}, nil
}

func (b *pollBackendFallback) Add(fd int, mask Interest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mask[fd] = mask
	return nil
}

func (b *pollBackendFallback) Modify(fd int, mask Interest) error {
	return b.Add(fd, mask)
}

func (b *pollBackendFallback) Remove(fd int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.mask, fd)
	return nil
}

func (b *pollBackendFallback) Capacity() int {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 1024
	}
	return int(rl.Cur)
}

func (b *pollBackendFallback) Close() error {
	return nil
}

func toPollEvents(mask Interest) int16 {
	var ev int16
	if mask.Has(InterestRead) {
		ev |= unix.POLLIN
	}
	if mask.Has(InterestWrite) {
		ev |= unix.POLLOUT
	}
	return ev
}

func (b *pollBackendFallback) Wait(timeout time.Duration) ([]readyFD, error) {
	b.mu.Lock()
	fds := make([]int, 0, len(b.mask))
	for fd := range b.mask {
		fds = append(fds, fd)
	}
	sort.Ints(fds)
	pfds := make([]unix.PollFd, len(fds))
	for i, fd := range fds {
		pfds[i] = unix.PollFd{Fd: int32(fd), Events: toPollEvents(b.mask[fd])}
	}
	b.mu.Unlock()

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	for {
		n, err := unix.Poll(pfds, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		out := make([]readyFD, 0, n)
		for _, p := range pfds {
			var r Interest
			if p.Revents&(unix.POLLIN|unix.POLLHUP) != 0 {
				r |= InterestRead
			}
			if p.Revents&unix.POLLOUT != 0 {
				r |= InterestWrite
			}
			if p.Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
				r |= InterestError
			}
			if r != 0 {
				out = append(out, readyFD{fd: int(p.Fd), ready: r})
			}
		}
		return out, nil
	}
}
