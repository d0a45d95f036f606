// This file is part of m88sound.
//
// m88sound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m88sound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m88sound.  If not, see <https://www.gnu.org/licenses/>.

package sound

import (
	"encoding/binary"
	"sync/atomic"
)

// bytes in one sample of one channel
const sampleWidth = 2

type providerRef struct {
	p Provider
}

// Callback adapts a Provider to the byte oriented pull model used by audio
// devices. The device asks for a number of bytes and Callback fills them with
// little-endian 16bit data from the Provider. Any shortfall is filled with
// silence.
//
// Callback is intended to be used from a single audio goroutine. The Provider
// can be changed from any goroutine with SetProvider().
type Callback struct {
	provider atomic.Pointer[providerRef]
	scratch  []int16
}

// NewCallback is the preferred method of initialisation for the Callback
// type. A nil Provider is allowed and results in silence.
func NewCallback(p Provider) *Callback {
	cb := &Callback{}
	cb.SetProvider(p)
	return cb
}

// SetProvider changes the source of data.
func (cb *Callback) SetProvider(p Provider) {
	cb.provider.Store(&providerRef{p: p})
}

// Fill buf with data from the Provider. Returns the number of frames that
// were obtained from the Provider. The remainder of buf is always zeroed.
func (cb *Callback) Fill(buf []byte) int {
	ref := cb.provider.Load()
	if ref == nil {
		clear(buf)
		return 0
	}
	return fillBytes(ref.p, buf, &cb.scratch)
}

// FillBytes fills buf with little-endian 16bit data from the Provider and
// zeroes any shortfall. Returns the number of frames obtained from the
// Provider. A nil Provider results in silence.
//
// FillBytes allocates scratch space on every call. Audio callbacks should
// prefer the Callback type.
func FillBytes(p Provider, buf []byte) int {
	var scratch []int16
	return fillBytes(p, buf, &scratch)
}

func fillBytes(p Provider, buf []byte, scratch *[]int16) int {
	if p == nil {
		clear(buf)
		return 0
	}

	channels := p.Channels()
	if channels <= 0 {
		channels = 2
	}

	samples := len(buf) / (channels * sampleWidth)
	if len(*scratch) < samples*channels {
		*scratch = make([]int16, samples*channels)
	}
	s := *scratch

	got := p.Get(s[:samples*channels], samples)
	got = max(0, min(got, samples))

	n := got * channels
	for i, v := range s[:n] {
		binary.LittleEndian.PutUint16(buf[i*sampleWidth:], uint16(v))
	}
	clear(buf[n*sampleWidth:])

	return got
}

// Read implements the io.Reader interface. The buffer is always filled
// completely so the error is always nil.
func (cb *Callback) Read(buf []byte) (int, error) {
	cb.Fill(buf)
	return len(buf), nil
}
