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

import "time"

// readyFD is one fd reported ready by a backend's Wait call.
type readyFD struct {
	fd    int
	ready Interest
}

// backend is the OS-level readiness primitive the Reactor drives. Two
// implementations are provided: an epoll-class backend on Linux (backend_epoll.go)
// and a poll(2)-based fallback everywhere else (backend_poll.go), selected at
// compile time by build tag so the capability is queried from the OS once at
// startup rather than probed per call.
type backend interface {
	// Add registers fd for the given interest mask.
	Add(fd int, mask Interest) error

	// Modify changes the interest mask already registered for fd.
	Modify(fd int, mask Interest) error

	// Remove unregisters fd.
	Remove(fd int) error

	// Wait blocks up to timeout (or indefinitely when timeout < 0, or
	// returns immediately when timeout == 0) for readiness, retrying
	// transparently on EINTR.
	Wait(timeout time.Duration) ([]readyFD, error)

	// Capacity reports the backend's fd-count ceiling, queried from the
	// OS at construction time.
	Capacity() int

	// Close releases the backend's OS resources.
	Close() error
}
