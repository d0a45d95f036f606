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
	"slices"
	"sync"
)

// MixRate is the rate at which all sources are mixed by the Bus. It is the
// natural output rate of the FM sound chip and is not related to the rate of
// the audio device.
const MixRate = 55467

// ConversionRate is the number of frames per second of virtual time that
// Update() actually asks the Bus for. Virtual time is converted in units of
// 1/50th of the mixing rate so this is slightly lower than MixRate.
const ConversionRate = MixRate / 50 * 50

// Bus mixes the data from all connected sources. It is safe to use from more
// than one goroutine. Connect() and Disconnect() will typically be called by
// the emulation goroutine and Get() by whatever goroutine is filling the
// output buffer.
type Bus struct {
	// crit guards the list of sources and the mixing accumulator. it is held
	// for the entirety of a mix pass
	crit sync.Mutex

	// connected sources. a source appears at most once
	sources []Source

	// the rate sources have been told to mix at
	rate int

	// the maximum number of frames that can be mixed by one call to Get()
	capacity int

	// scratch accumulator for the narrow form of Get(). it is zeroed at the
	// start of every mix and never used outside of the critical section
	mixing []int32
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(rate int, capacity int) *Bus {
	b := &Bus{
		rate: rate,
	}
	b.Resize(capacity)
	return b
}

// Resize changes the maximum number of frames that can be produced by a
// single call to Get() or GetWide().
func (b *Bus) Resize(capacity int) {
	b.crit.Lock()
	defer b.crit.Unlock()

	if capacity < 0 {
		capacity = 0
	}
	b.capacity = capacity
	b.mixing = make([]int32, capacity*2)
}

// Capacity returns the maximum number of frames that can be produced by a
// single call to Get() or GetWide().
func (b *Bus) Capacity() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.capacity
}

// SetRate changes the mixing rate and informs every connected source.
func (b *Bus) SetRate(rate int) {
	b.crit.Lock()
	defer b.crit.Unlock()

	b.rate = rate
	for _, s := range b.sources {
		s.SetRate(rate)
	}
}

// Rate returns the mixing rate.
func (b *Bus) Rate() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.rate
}

// Connect adds a source to the bus and sets its rate to the mixing rate.
// Returns false if the source is nil or is already connected.
func (b *Bus) Connect(src Source) bool {
	if src == nil {
		return false
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	for _, s := range b.sources {
		if s == src {
			return false
		}
	}

	b.sources = append(b.sources, src)
	src.SetRate(b.rate)

	return true
}

// Disconnect removes the source from the bus. The Mix() function of the
// source will not be called again once Disconnect() has returned. Returns
// false if the source was not connected.
func (b *Bus) Disconnect(src Source) bool {
	b.crit.Lock()
	defer b.crit.Unlock()

	for i, s := range b.sources {
		if s == src {
			b.sources = slices.Delete(b.sources, i, i+1)
			return true
		}
	}

	return false
}

// DisconnectAll removes every source from the bus.
func (b *Bus) DisconnectAll() {
	b.crit.Lock()
	defer b.crit.Unlock()
	clear(b.sources)
	b.sources = b.sources[:0]
}

// Sources returns the number of connected sources.
func (b *Bus) Sources() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return len(b.sources)
}

// clamp the number of frames requested to the capacity of the bus and to the
// length of the destination. the critical section must be held.
func (b *Bus) clamp(samples int, destLen int) int {
	return min(samples, b.capacity, destLen/2)
}

// Get mixes the next samples frames from every connected source into dest.
// Output is attenuated by 6dB and saturated to the 16bit range. The number
// of frames is clamped to the capacity of the bus and to the length of dest.
// Returns the number of frames written.
func (b *Bus) Get(dest []int16, samples int) int {
	b.crit.Lock()
	defer b.crit.Unlock()

	samples = b.clamp(samples, len(dest))
	if samples <= 0 {
		return 0
	}

	mixing := b.mixing[:samples*2]
	clear(mixing)
	for _, s := range b.sources {
		s.Mix(mixing, samples)
	}

	for i, v := range mixing {
		dest[i] = limit(v >> 1)
	}

	return samples
}

// GetWide mixes the next samples frames from every connected source into
// dest. Unlike Get() the data is not attenuated or saturated. The number of
// frames is clamped in the same way as Get(). Returns the number of frames
// written.
func (b *Bus) GetWide(dest []int32, samples int) int {
	b.crit.Lock()
	defer b.crit.Unlock()

	samples = b.clamp(samples, len(dest))
	if samples <= 0 {
		return 0
	}

	dest = dest[:samples*2]
	clear(dest)
	for _, s := range b.sources {
		s.Mix(dest, samples)
	}

	return samples
}

// limit value to the range of a signed 16bit integer.
func limit(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
