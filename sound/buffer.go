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
	"sync"
)

// fixed point unit of the resampling phase
const phaseOne = 1 << 16

// mixer is the part of the Bus used by the output buffer.
type mixer interface {
	Get(dest []int16, samples int) int
}

// outputBuffer sits between the Bus and the audio device. Update() pushes
// frames into it at the conversion rate and the audio device pulls frames
// from it at the device rate. Frames are resampled by linear interpolation as
// they are pulled.
//
// When the ring is full the oldest frames are dropped. The sources have
// already advanced to produce the newest frames so dropping those instead
// would desynchronise the audio from the virtual clock.
type outputBuffer struct {
	crit sync.Mutex

	src mixer

	// ring of interleaved stereo frames at the conversion rate
	ring  []int16
	size  int
	read  int
	count int

	mixRate int
	rate    int

	// resampling. step is the distance between output frames in input frames,
	// as a 16.16 fixed point value. p0 and p1 are the input frames either side
	// of the current phase
	step  uint32
	phase uint32
	p0    [2]int32
	p1    [2]int32

	// mix directly from the bus when the ring is empty
	fillWhenEmpty bool

	// scratch space for frames produced by the bus
	scratch []int16
	chunk   int

	// number of frames dropped because of a full ring
	dropped int
}

// init prepares the buffer for bufferSize frames at rate. mixRate is the
// number of frames pushed for every second of virtual time and must be the
// rate Update() really produces or the ring will drift towards underflow or
// overflow. chunk is the maximum number of frames the mixer will produce in
// one call.
func (ob *outputBuffer) init(src mixer, mixRate int, rate int, bufferSize int, chunk int) {
	ob.crit.Lock()
	defer ob.crit.Unlock()

	ob.src = src
	ob.mixRate = mixRate
	ob.rate = rate

	// the ring holds the same duration as the device buffer, measured at the
	// mixing rate. rounded up to a multiple of 16
	ob.size = int((int64(bufferSize)*int64(mixRate)/int64(rate) + 15) &^ 15)
	ob.ring = make([]int16, ob.size*2)
	ob.read = 0
	ob.count = 0
	ob.dropped = 0

	ob.step = uint32((uint64(mixRate) << 16) / uint64(rate))
	ob.phase = phaseOne
	ob.p0 = [2]int32{}
	ob.p1 = [2]int32{}

	ob.chunk = chunk
	ob.scratch = make([]int16, chunk*2)
}

// cleanup releases the buffer. Get() will return no frames until init() is
// called again.
func (ob *outputBuffer) cleanup() {
	ob.crit.Lock()
	defer ob.crit.Unlock()

	ob.src = nil
	ob.ring = nil
	ob.scratch = nil
	ob.size = 0
	ob.read = 0
	ob.count = 0
	ob.chunk = 0
}

// Fill mixes samples frames from the bus into the ring.
func (ob *outputBuffer) Fill(samples int) {
	ob.crit.Lock()
	defer ob.crit.Unlock()
	ob.fill(samples)
}

// fill is the unlocked implementation of Fill(). returns the number of frames
// mixed.
func (ob *outputBuffer) fill(samples int) int {
	if ob.src == nil || ob.chunk == 0 {
		return 0
	}

	var mixed int
	for samples > 0 {
		n := ob.src.Get(ob.scratch, min(samples, ob.chunk))
		if n == 0 {
			break
		}
		ob.push(ob.scratch[:n*2])
		samples -= n
		mixed += n
	}

	return mixed
}

// push interleaved frames into the ring, dropping the oldest frames if
// necessary.
func (ob *outputBuffer) push(frames []int16) {
	for i := 0; i < len(frames); i += 2 {
		w := (ob.read + ob.count) % ob.size
		ob.ring[w*2] = frames[i]
		ob.ring[w*2+1] = frames[i+1]
		if ob.count == ob.size {
			ob.read = (ob.read + 1) % ob.size
			ob.dropped++
		} else {
			ob.count++
		}
	}
}

// pop the oldest frame from the ring into p1, moving the previous p1 into p0.
// returns false if the ring is empty.
func (ob *outputBuffer) pop() bool {
	if ob.count == 0 {
		return false
	}
	ob.p0 = ob.p1
	ob.p1[0] = int32(ob.ring[ob.read*2])
	ob.p1[1] = int32(ob.ring[ob.read*2+1])
	ob.read = (ob.read + 1) % ob.size
	ob.count--
	return true
}

// Get implements the Provider interface. Frames are produced at the device
// rate. Returns fewer frames than requested if the ring underflows, unless
// FillWhenEmpty has been set.
func (ob *outputBuffer) Get(dest []int16, samples int) int {
	ob.crit.Lock()
	defer ob.crit.Unlock()

	if ob.size == 0 {
		return 0
	}

	samples = min(samples, len(dest)/2)

	var n int
	for n < samples {
		for ob.phase >= phaseOne {
			if !ob.pop() {
				if !ob.fillWhenEmpty || ob.fill(ob.chunk) == 0 {
					return n
				}
				continue // for loop
			}
			ob.phase -= phaseOne
		}

		f := int64(ob.phase)
		l := int64(ob.p0[0]) + ((int64(ob.p1[0]-ob.p0[0]) * f) >> 16)
		r := int64(ob.p0[1]) + ((int64(ob.p1[1]-ob.p0[1]) * f) >> 16)
		dest[n*2] = int16(l)
		dest[n*2+1] = int16(r)

		ob.phase += ob.step
		n++
	}

	return n
}

// Rate implements the Provider interface.
func (ob *outputBuffer) Rate() int {
	ob.crit.Lock()
	defer ob.crit.Unlock()
	return ob.rate
}

// Channels implements the Provider interface.
func (ob *outputBuffer) Channels() int {
	return 2
}

// Avail implements the Provider interface. With FillWhenEmpty the frames
// that one mix pass of the bus would add are included.
func (ob *outputBuffer) Avail() int {
	ob.crit.Lock()
	defer ob.crit.Unlock()

	if ob.size == 0 {
		return 0
	}
	count := ob.count
	if ob.fillWhenEmpty {
		count += ob.chunk
	}
	return int(int64(count) * int64(ob.rate) / int64(ob.mixRate))
}

// Buffered returns the number of frames, at the mixing rate, waiting in the
// ring and the number of frames dropped since the buffer was initialised.
func (ob *outputBuffer) Buffered() (int, int) {
	ob.crit.Lock()
	defer ob.crit.Unlock()
	return ob.count, ob.dropped
}

func (ob *outputBuffer) setFillWhenEmpty(fill bool) {
	ob.crit.Lock()
	defer ob.crit.Unlock()
	ob.fillWhenEmpty = fill
}
