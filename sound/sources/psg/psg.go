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

package psg

import (
	"fmt"
	"math"
	"sync"
)

// NumTones is the number of tone channels.
const NumTones = 3

// MaxVolume is the loudest volume of a channel.
const MaxVolume = 15

// amplitude of each volume level. the loudest level of every channel summed
// together stays within the 16bit range
var volumeTable [MaxVolume + 1]int32

func init() {
	for i := 1; i <= MaxVolume; i++ {
		db := float64(MaxVolume-i) * -2.0
		volumeTable[i] = int32(math.Round(8000 * math.Pow(10, db/20)))
	}
}

type pan struct {
	left  bool
	right bool
}

type tone struct {
	hz     float64
	volume int
	pan    pan

	// the top bit of the phase is the output of the square wave
	phase uint32
	step  uint32
}

type noise struct {
	hz     float64
	volume int
	pan    pan

	// 16.16 fixed point. the shift register is clocked every time the
	// integer part overflows
	phase uint32
	step  uint32

	lfsr uint32
}

// PSG implements the sound.Source interface.
type PSG struct {
	crit sync.Mutex

	rate  int
	tones [NumTones]tone
	noise noise
}

// NewPSG is the preferred method of initialisation for the PSG type. All
// channels are silent and centred.
func NewPSG() *PSG {
	p := &PSG{}
	for i := range p.tones {
		p.tones[i].pan = pan{left: true, right: true}
	}
	p.noise.pan = pan{left: true, right: true}
	p.noise.lfsr = 1
	return p
}

func (p *PSG) String() string {
	p.crit.Lock()
	defer p.crit.Unlock()
	return fmt.Sprintf("tone: %.1fHz/%d %.1fHz/%d %.1fHz/%d noise: %.1fHz/%d",
		p.tones[0].hz, p.tones[0].volume,
		p.tones[1].hz, p.tones[1].volume,
		p.tones[2].hz, p.tones[2].volume,
		p.noise.hz, p.noise.volume)
}

// SetRate implements the sound.Source interface.
func (p *PSG) SetRate(rate int) bool {
	if rate <= 0 {
		return false
	}

	p.crit.Lock()
	defer p.crit.Unlock()

	p.rate = rate
	for i := range p.tones {
		p.tones[i].step = p.toneStep(p.tones[i].hz)
	}
	p.noise.step = p.noiseStep(p.noise.hz)

	return true
}

// the critical section must be held.
func (p *PSG) toneStep(hz float64) uint32 {
	if p.rate == 0 || hz <= 0 {
		return 0
	}
	return uint32(math.Min(hz/float64(p.rate), 0.5) * (1 << 32))
}

// the critical section must be held.
func (p *PSG) noiseStep(hz float64) uint32 {
	if p.rate == 0 || hz <= 0 {
		return 0
	}
	return uint32(hz / float64(p.rate) * (1 << 16))
}

// Channels implements the sound.Source interface.
func (p *PSG) Channels() int {
	return 2
}

// SetTone sets the frequency of a tone channel. A frequency of zero stops the
// channel.
func (p *PSG) SetTone(ch int, hz float64) error {
	if ch < 0 || ch >= NumTones {
		return fmt.Errorf("psg: no tone channel %d", ch)
	}

	p.crit.Lock()
	defer p.crit.Unlock()

	p.tones[ch].hz = hz
	p.tones[ch].step = p.toneStep(hz)

	return nil
}

// SetVolume sets the volume of a tone channel. The volume is clamped to the
// range 0 to MaxVolume.
func (p *PSG) SetVolume(ch int, volume int) error {
	if ch < 0 || ch >= NumTones {
		return fmt.Errorf("psg: no tone channel %d", ch)
	}

	p.crit.Lock()
	defer p.crit.Unlock()

	p.tones[ch].volume = min(max(volume, 0), MaxVolume)

	return nil
}

// SetPan selects which sides of the stereo field a tone channel is heard in.
func (p *PSG) SetPan(ch int, left bool, right bool) error {
	if ch < 0 || ch >= NumTones {
		return fmt.Errorf("psg: no tone channel %d", ch)
	}

	p.crit.Lock()
	defer p.crit.Unlock()

	p.tones[ch].pan = pan{left: left, right: right}

	return nil
}

// SetNoise sets the rate at which the noise generator is clocked.
func (p *PSG) SetNoise(hz float64) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.noise.hz = hz
	p.noise.step = p.noiseStep(hz)
}

// SetNoiseVolume sets the volume of the noise channel. The volume is clamped
// to the range 0 to MaxVolume.
func (p *PSG) SetNoiseVolume(volume int) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.noise.volume = min(max(volume, 0), MaxVolume)
}

// Reset silences all channels.
func (p *PSG) Reset() {
	p.crit.Lock()
	defer p.crit.Unlock()
	for i := range p.tones {
		p.tones[i].hz = 0
		p.tones[i].step = 0
		p.tones[i].volume = 0
		p.tones[i].phase = 0
	}
	p.noise.hz = 0
	p.noise.step = 0
	p.noise.volume = 0
	p.noise.lfsr = 1
}

// Mix implements the sound.Source interface.
func (p *PSG) Mix(dest []int32, samples int) {
	p.crit.Lock()
	defer p.crit.Unlock()

	for i := range p.tones {
		t := &p.tones[i]
		if t.volume == 0 || t.step == 0 {
			continue // for loop
		}

		v := volumeTable[t.volume]
		for s := 0; s < samples; s++ {
			o := v
			if t.phase&0x80000000 != 0 {
				o = -v
			}
			if t.pan.left {
				dest[s*2] += o
			}
			if t.pan.right {
				dest[s*2+1] += o
			}
			t.phase += t.step
		}
	}

	n := &p.noise
	if n.volume == 0 || n.step == 0 {
		return
	}

	v := volumeTable[n.volume]
	for s := 0; s < samples; s++ {
		n.phase += n.step
		for n.phase >= 1<<16 {
			n.phase -= 1 << 16

			// 17 bit shift register with taps at bits 0 and 3
			bit := (n.lfsr ^ (n.lfsr >> 3)) & 1
			n.lfsr = (n.lfsr >> 1) | (bit << 16)
		}

		o := v
		if n.lfsr&1 == 0 {
			o = -v
		}
		if n.pan.left {
			dest[s*2] += o
		}
		if n.pan.right {
			dest[s*2+1] += o
		}
	}
}
