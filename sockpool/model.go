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

package sockpool

// freeSlot is one entry in the FIFO free-list: the connection id and the
// allocation counter value at the moment it was freed, so Alloc can tell
// how many other allocations have intervened since.
type freeSlot struct {
	connID  int
	freedAt uint64
}

// pool is the only implementation of Pool.
type pool struct {
	descs      []*Descriptor
	freeList   []freeSlot
	allocCount uint64
	quarantine uint64
	parentOf   map[int]int
}

func (p *pool) Alloc(kind Kind, fd int, tlsRole TLSRole, parent int) (int, error) {
	p.allocCount++

	var connID int
	reused := false
	if len(p.freeList) > 0 {
		head := p.freeList[0]
		if p.allocCount-head.freedAt >= p.quarantine {
			connID = head.connID
			p.freeList = p.freeList[1:]
			reused = true
		}
	}
	if !reused {
		connID = len(p.descs)
		p.descs = append(p.descs, nil)
	}

	d := &Descriptor{
		ConnID:     connID,
		Kind:       kind,
		TLSRole:    tlsRole,
		Fd:         fd,
		Parent:     parent,
		PendingLen: -1,
	}

	if parent >= 0 && parent < len(p.descs) && p.descs[parent] != nil {
		pd := p.descs[parent]
		d.Framer = pd.Framer
		d.FramerArgs = pd.FramerArgs
		d.CloseFramer = pd.CloseFramer
		d.UserTag = pd.UserTag
		d.TLSRole = pd.TLSRole
		d.TLSParams = pd.TLSParams
		d.LocalAddr = pd.LocalAddr
		d.LocalPort = pd.LocalPort
	}

	p.descs[connID] = d
	return connID, nil
}

func (p *pool) Free(connID int) error {
	if connID < 0 || connID >= len(p.descs) || p.descs[connID] == nil {
		return ErrorInvalidConnection.Error(nil)
	}
	p.descs[connID] = nil
	p.freeList = append(p.freeList, freeSlot{connID: connID, freedAt: p.allocCount})
	return nil
}

func (p *pool) Lookup(connID int) (*Descriptor, error) {
	if connID < 0 || connID >= len(p.descs) || p.descs[connID] == nil {
		return nil, ErrorInvalidConnection.Error(nil)
	}
	return p.descs[connID], nil
}

func (p *pool) Valid(connID int) bool {
	return connID >= 0 && connID < len(p.descs) && p.descs[connID] != nil
}

func (p *pool) IterLive(fn func(*Descriptor) bool) {
	for _, d := range p.descs {
		if d == nil {
			continue
		}
		if !fn(d) {
			return
		}
	}
}
