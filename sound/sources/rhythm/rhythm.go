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

package rhythm

import (
	"fmt"
	"math"
	"sync"
)

// Instrument identifies one of the six instruments of the rhythm unit.
type Instrument int

// List of valid Instrument values.
const (
	BD Instrument = iota
	SD
	TOP
	HH
	TOM
	RIM
	NumInstruments
)

var instrumentNames = [NumInstruments]string{"BD", "SD", "TOP", "HH", "TOM", "RIM"}

func (i Instrument) String() string {
	if i < 0 || i >= NumInstruments {
		return fmt.Sprintf("instrument(%d)", int(i))
	}
	return instrumentNames[i]
}

// MaxLevel is the loudest level of an instrument. Each step below MaxLevel
// attenuates the instrument by 0.75dB.
const MaxLevel = 31

// multiplier for each level in 8.8 fixed point
var levelTable [MaxLevel + 1]int32

func init() {
	for i := range levelTable {
		db := float64(MaxLevel-i) * -0.75
		levelTable[i] = int32(math.Round(256 * math.Pow(10, db/20)))
	}
}

const logTag = "rhythm"

type instrument struct {
	// original mono data
	pcm     []int16
	pcmRate int

	// data resampled to the mixing rate
	data []int16

	pos     int
	playing bool
	level   int
	left    bool
	right   bool
}

// Rhythm implements the sound.Source interface.
type Rhythm struct {
	crit sync.Mutex

	rate        int
	instruments [NumInstruments]instrument
}

// NewRhythm is the preferred method of initialisation for the Rhythm type.
// No instrument has any data until Load(), LoadPCM() or Synthesise() is
// called.
func NewRhythm() *Rhythm {
	r := &Rhythm{}
	for i := range r.instruments {
		r.instruments[i].level = MaxLevel
		r.instruments[i].left = true
		r.instruments[i].right = true
	}
	return r
}

func (r *Rhythm) String() string {
	r.crit.Lock()
	defer r.crit.Unlock()

	s := ""
	for i := range r.instruments {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%d", Instrument(i), len(r.instruments[i].pcm))
	}
	return s
}

// SetRate implements the sound.Source interface.
func (r *Rhythm) SetRate(rate int) bool {
	if rate <= 0 {
		return false
	}

	r.crit.Lock()
	defer r.crit.Unlock()

	r.rate = rate
	for i := range r.instruments {
		r.resample(&r.instruments[i])
	}

	return true
}

// resample the original data of the instrument to the mixing rate. the
// critical section must be held.
func (r *Rhythm) resample(ins *instrument) {
	ins.playing = false
	ins.pos = 0

	if r.rate == 0 || len(ins.pcm) == 0 || ins.pcmRate <= 0 {
		ins.data = nil
		return
	}

	n := int(int64(len(ins.pcm)) * int64(r.rate) / int64(ins.pcmRate))
	ins.data = make([]int16, n)

	step := (uint64(ins.pcmRate) << 16) / uint64(r.rate)
	var phase uint64
	for i := range ins.data {
		idx := int(phase >> 16)
		frac := int64(phase & 0xffff)

		a := int64(ins.pcm[idx])
		b := a
		if idx+1 < len(ins.pcm) {
			b = int64(ins.pcm[idx+1])
		}
		ins.data[i] = int16(a + ((b-a)*frac)>>16)

		phase += step
	}
}

// Channels implements the sound.Source interface.
func (r *Rhythm) Channels() int {
	return 2
}

// LoadPCM replaces the data for an instrument with mono data at the given
// rate.
func (r *Rhythm) LoadPCM(inst Instrument, pcm []int16, rate int) error {
	if inst < 0 || inst >= NumInstruments {
		return fmt.Errorf("rhythm: no instrument %d", int(inst))
	}
	if rate <= 0 {
		return fmt.Errorf("rhythm: %s: invalid sample rate (%d)", inst, rate)
	}

	r.crit.Lock()
	defer r.crit.Unlock()

	ins := &r.instruments[inst]
	ins.pcm = pcm
	ins.pcmRate = rate
	r.resample(ins)

	return nil
}

// Loaded returns true if the instrument has data.
func (r *Rhythm) Loaded(inst Instrument) bool {
	if inst < 0 || inst >= NumInstruments {
		return false
	}
	r.crit.Lock()
	defer r.crit.Unlock()
	return len(r.instruments[inst].pcm) > 0
}

// KeyOn starts the instrument from the beginning of its data.
func (r *Rhythm) KeyOn(inst Instrument) {
	if inst < 0 || inst >= NumInstruments {
		return
	}
	r.crit.Lock()
	defer r.crit.Unlock()
	ins := &r.instruments[inst]
	ins.pos = 0
	ins.playing = len(ins.data) > 0
}

// KeyOff stops the instrument.
func (r *Rhythm) KeyOff(inst Instrument) {
	if inst < 0 || inst >= NumInstruments {
		return
	}
	r.crit.Lock()
	defer r.crit.Unlock()
	r.instruments[inst].playing = false
}

// SetLevel changes the level of the instrument. The level is clamped to the
// range 0 to MaxLevel.
func (r *Rhythm) SetLevel(inst Instrument, level int) {
	if inst < 0 || inst >= NumInstruments {
		return
	}
	r.crit.Lock()
	defer r.crit.Unlock()
	r.instruments[inst].level = min(max(level, 0), MaxLevel)
}

// SetPan selects which sides of the stereo field the instrument is heard in.
func (r *Rhythm) SetPan(inst Instrument, left bool, right bool) {
	if inst < 0 || inst >= NumInstruments {
		return
	}
	r.crit.Lock()
	defer r.crit.Unlock()
	r.instruments[inst].left = left
	r.instruments[inst].right = right
}

// Mix implements the sound.Source interface.
func (r *Rhythm) Mix(dest []int32, samples int) {
	r.crit.Lock()
	defer r.crit.Unlock()

	for i := range r.instruments {
		ins := &r.instruments[i]
		if !ins.playing {
			continue // for loop
		}

		lv := levelTable[ins.level]
		n := min(samples, len(ins.data)-ins.pos)
		for s := 0; s < n; s++ {
			o := (int32(ins.data[ins.pos+s]) * lv) >> 8
			if ins.left {
				dest[s*2] += o
			}
			if ins.right {
				dest[s*2+1] += o
			}
		}

		ins.pos += n
		if ins.pos >= len(ins.data) {
			ins.playing = false
		}
	}
}
