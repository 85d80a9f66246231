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

package transport

import "golang.org/x/sys/unix"

func unixClose(fd int) {
	_ = unix.Close(fd)
}

func unixBind(fd int, sa unix.Sockaddr) error {
	return unix.Bind(fd, sa)
}

func unixListen(fd int, backlog int) error {
	return unix.Listen(fd, backlog)
}

func unixConnect(fd int, sa unix.Sockaddr) error {
	err := unix.Connect(fd, sa)
	if err == nil {
		return nil
	}
	return err
}

func isEINPROGRESS(err error) bool {
	return err == unix.EINPROGRESS
}

func errnoOf(err error) int {
	if e, ok := err.(unix.Errno); ok {
		return int(e)
	}
	return 0
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func setBlocking(fd int, blocking bool) error {
	return unix.SetNonblock(fd, !blocking)
}

func unixAccept(fd int) (int, unix.Sockaddr, error) {
	nfd, sa, err := unix.Accept4(fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	return nfd, sa, err
}

func unixRead(fd int, b []byte) (int, error) {
	return unix.Read(fd, b)
}

func unixWrite(fd int, b []byte) (int, error) {
	return unix.Write(fd, b)
}

func unixRecvfrom(fd int, b []byte) (int, unix.Sockaddr, error) {
	return unix.Recvfrom(fd, b, 0)
}

func unixSendto(fd int, b []byte, sa unix.Sockaddr) error {
	return unix.Sendto(fd, b, 0, sa)
}
