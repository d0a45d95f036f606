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

package fm

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// size of the sine table is 1<<sineBits
const sineBits = 10

// amplitude of the sine table and of a fully open envelope
const (
	sineScale = 1 << 14
	envMax    = 1 << 14
)

// the top sineBits of a 32bit phase index the sine table
const phaseShift = 32 - sineBits

var sineTable [1 << sineBits]int32

func init() {
	for i := range sineTable {
		sineTable[i] = int32(math.Round(sineScale * math.Sin(2*math.Pi*float64(i)/float64(len(sineTable)))))
	}
}

// MaxLevel is the loudest output level of a voice.
const MaxLevel = 127

// the amplitude of a voice at MaxLevel
const peakAmplitude = 12000

// Voice implements the sound.Source interface.
type Voice struct {
	crit sync.Mutex

	rate int

	hz    float64
	ratio float64
	index float64

	carrier   uint32
	modulator uint32
	cstep     uint32
	mstep     uint32

	// modulation depth in sine table entries per unit of modulator output
	depth int32

	level int32
	left  bool
	right bool

	env        int32
	keyOn      bool
	release    time.Duration
	releaseDec int32
}

// NewVoice is the preferred method of initialisation for the Voice type. The
// voice starts with a modulator at the same frequency as the carrier and a
// modulation index of one.
func NewVoice() *Voice {
	v := &Voice{
		ratio:   1,
		index:   1,
		level:   MaxLevel,
		left:    true,
		right:   true,
		release: 300 * time.Millisecond,
	}
	v.depth = depth(v.index)
	return v
}

func (v *Voice) String() string {
	v.crit.Lock()
	defer v.crit.Unlock()
	return fmt.Sprintf("%.1fHz ratio=%.2f index=%.2f level=%d key=%v", v.hz, v.ratio, v.index, v.level, v.keyOn)
}

func depth(index float64) int32 {
	return int32(index * float64(len(sineTable)) / (2 * math.Pi))
}

// SetRate implements the sound.Source interface.
func (v *Voice) SetRate(rate int) bool {
	if rate <= 0 {
		return false
	}

	v.crit.Lock()
	defer v.crit.Unlock()

	v.rate = rate
	v.updateSteps()

	return true
}

// the critical section must be held.
func (v *Voice) updateSteps() {
	if v.rate == 0 {
		v.cstep = 0
		v.mstep = 0
		v.releaseDec = envMax
		return
	}

	step := func(hz float64) uint32 {
		return uint32(math.Min(math.Max(hz, 0)/float64(v.rate), 0.5) * (1 << 32))
	}
	v.cstep = step(v.hz)
	v.mstep = step(v.hz * v.ratio)

	samples := int32(v.release.Seconds() * float64(v.rate))
	v.releaseDec = max(1, envMax/max(samples, 1))
}

// Channels implements the sound.Source interface.
func (v *Voice) Channels() int {
	return 2
}

// KeyOn starts a note at frequency hz.
func (v *Voice) KeyOn(hz float64) {
	v.crit.Lock()
	defer v.crit.Unlock()

	v.hz = hz
	v.updateSteps()
	v.carrier = 0
	v.modulator = 0
	v.env = envMax
	v.keyOn = true
}

// KeyOff releases the current note.
func (v *Voice) KeyOff() {
	v.crit.Lock()
	defer v.crit.Unlock()
	v.keyOn = false
}

// IsSounding returns true if the voice is producing output.
func (v *Voice) IsSounding() bool {
	v.crit.Lock()
	defer v.crit.Unlock()
	return v.env > 0
}

// SetModulation changes the frequency ratio of the modulator to the carrier
// and the modulation index. An index of zero produces a pure sine wave.
func (v *Voice) SetModulation(ratio float64, index float64) error {
	if ratio <= 0 || index < 0 {
		return fmt.Errorf("fm: invalid modulation (ratio %.2f, index %.2f)", ratio, index)
	}

	v.crit.Lock()
	defer v.crit.Unlock()

	v.ratio = ratio
	v.index = index
	v.depth = depth(index)
	v.updateSteps()

	return nil
}

// SetRelease changes the time taken for a note to fade after KeyOff().
func (v *Voice) SetRelease(d time.Duration) {
	v.crit.Lock()
	defer v.crit.Unlock()
	v.release = max(d, 0)
	v.updateSteps()
}

// SetLevel changes the output level of the voice. The level is clamped to the
// range 0 to MaxLevel.
func (v *Voice) SetLevel(level int) {
	v.crit.Lock()
	defer v.crit.Unlock()
	v.level = int32(min(max(level, 0), MaxLevel))
}

// SetPan selects which sides of the stereo field the voice is heard in.
func (v *Voice) SetPan(left bool, right bool) {
	v.crit.Lock()
	defer v.crit.Unlock()
	v.left = left
	v.right = right
}

// Mix implements the sound.Source interface.
func (v *Voice) Mix(dest []int32, samples int) {
	v.crit.Lock()
	defer v.crit.Unlock()

	if v.env == 0 || v.cstep == 0 {
		return
	}

	amp := int64(peakAmplitude) * int64(v.level) / MaxLevel
	mask := int32(len(sineTable) - 1)

	for s := 0; s < samples; s++ {
		m := sineTable[v.modulator>>phaseShift]
		offset := (m * v.depth) >> 14
		c := sineTable[(int32(v.carrier>>phaseShift)+offset)&mask]

		o := int32(int64(c) * int64(v.env) / envMax * amp / sineScale)
		if v.left {
			dest[s*2] += o
		}
		if v.right {
			dest[s*2+1] += o
		}

		v.carrier += v.cstep
		v.modulator += v.mstep

		if !v.keyOn {
			v.env = max(0, v.env-v.releaseDec)
			if v.env == 0 {
				return
			}
		}
	}
}
