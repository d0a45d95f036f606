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

package ensemble

import (
	"fmt"
	"math"
	"time"

	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/sound/sources/fm"
	"github.com/pc88go/m88sound/sound/sources/psg"
	"github.com/pc88go/m88sound/sound/sources/rhythm"
)

const logTag = "ensemble"

// the number of steps a lead note is held for
const leadSteps = 2

// Ensemble is the collection of sources and the pattern played on them.
type Ensemble struct {
	PSG    *psg.PSG
	Melody *fm.Voice
	Lead   *fm.Voice
	Rhythm *rhythm.Rhythm

	// the sound system the sources are connected to. brought up to date
	// before any source changes state
	snd *sound.Sound

	// cancel function for the scheduled step event
	cancel func()

	interval uint32
	step     int
	steps    int

	// the number of steps remaining before the lead voice is released
	leadHold int
}

// NewEnsemble is the preferred method of initialisation for the Ensemble type.
// The rhythm unit is not loaded; LoadSamples() should be called.
func NewEnsemble() *Ensemble {
	e := &Ensemble{
		PSG:    psg.NewPSG(),
		Melody: fm.NewVoice(),
		Lead:   fm.NewVoice(),
		Rhythm: rhythm.NewRhythm(),
	}

	_ = e.PSG.SetPan(1, true, false)
	_ = e.PSG.SetPan(2, false, true)
	e.PSG.SetNoise(8000)

	_ = e.Melody.SetModulation(2, 1.5)
	e.Melody.SetRelease(200 * time.Millisecond)
	e.Melody.SetLevel(90)

	_ = e.Lead.SetModulation(1, 3)
	e.Lead.SetRelease(600 * time.Millisecond)

	e.Rhythm.SetPan(rhythm.HH, false, true)
	e.Rhythm.SetPan(rhythm.TOP, true, false)
	e.Rhythm.SetLevel(rhythm.HH, rhythm.MaxLevel-8)

	return e
}

// LoadSamples loads the rhythm samples from the directory. Instruments missing
// from the directory are synthesised. An empty directory name synthesises all
// instruments. Returns the number of instruments loaded from the directory.
func (e *Ensemble) LoadSamples(dir string) (int, error) {
	var n int
	if dir != "" {
		var err error
		n, err = e.Rhythm.Load(dir)
		if err != nil {
			return 0, fmt.Errorf("ensemble: %w", err)
		}
	}

	if n < rhythm.NumInstruments {
		for i := rhythm.Instrument(0); i < rhythm.NumInstruments; i++ {
			if !e.Rhythm.Loaded(i) {
				logger.Logf(logger.Allow, logTag, "synthesising %s", i)
			}
		}
		e.Rhythm.Synthesise()
	}

	return n, nil
}

// Connect all sources to the sound system. From then on the sound system is
// updated before the state of any source is changed.
func (e *Ensemble) Connect(snd *sound.Sound) error {
	for _, src := range e.sources() {
		if !snd.Connect(src) {
			return fmt.Errorf("ensemble: %s already connected", src)
		}
	}
	e.snd = snd
	return nil
}

// Disconnect all sources from the sound system.
func (e *Ensemble) Disconnect(snd *sound.Sound) {
	for _, src := range e.sources() {
		snd.Disconnect(src)
	}
	if e.snd == snd {
		e.snd = nil
	}
}

// update mixes everything up to the current tick so that a change of state
// takes effect at the correct point in the output
func (e *Ensemble) update() {
	if e.snd != nil {
		e.snd.Update()
	}
}

func (e *Ensemble) sources() []sound.Source {
	return []sound.Source{e.PSG, e.Melody, e.Lead, e.Rhythm}
}

// Start playing the pattern at the given tempo. The step event is added to
// the scheduler, which must be the scheduler of the machine whose tick rate
// is ticksPerSecond.
func (e *Ensemble) Start(sched sound.Scheduler, ticksPerSecond int, bpm int) error {
	if bpm <= 0 {
		return fmt.Errorf("ensemble: tempo must be positive (%d)", bpm)
	}

	interval := uint64(ticksPerSecond) * 60 / uint64(bpm*4)
	if interval == 0 || interval > math.MaxUint32 {
		return fmt.Errorf("ensemble: tempo %dbpm not possible at %d ticks per second", bpm, ticksPerSecond)
	}

	e.Stop()

	e.interval = uint32(interval)
	e.step = 0
	e.cancel = sched.AddEvent(e.interval, e.advance, true)

	// the first step sounds immediately
	e.advance()

	logger.Logf(logger.Allow, logTag, "playing at %dbpm (%d ticks per step)", bpm, e.interval)

	return nil
}

// Stop the pattern and release all notes.
func (e *Ensemble) Stop() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	e.update()

	for ch := 0; ch < psg.NumTones; ch++ {
		_ = e.PSG.SetVolume(ch, 0)
	}
	e.PSG.SetNoiseVolume(0)
	e.Melody.KeyOff()
	e.Lead.KeyOff()
	e.leadHold = 0
}

// IsPlaying returns true if the pattern is playing.
func (e *Ensemble) IsPlaying() bool {
	return e.cancel != nil
}

// Steps returns the number of steps played since the ensemble was created.
func (e *Ensemble) Steps() int {
	return e.steps
}

// Note plays the lead voice at frequency hz. The note is released
// automatically after a short time.
func (e *Ensemble) Note(hz float64) {
	e.update()
	e.Lead.KeyOn(hz)
	e.leadHold = leadSteps
}

// advance is called by the scheduler once per step
func (e *Ensemble) advance() {
	e.update()

	s := e.step

	if n := bass[s]; n != 0 {
		_ = e.PSG.SetTone(0, midiToHz(n))
		_ = e.PSG.SetVolume(0, 12)
	} else {
		_ = e.PSG.SetVolume(0, 0)
	}

	if c := chords[s]; c[0] != 0 {
		for i, n := range c {
			_ = e.PSG.SetTone(i+1, midiToHz(n))
			_ = e.PSG.SetVolume(i+1, 9)
		}
	} else if s%4 == 2 {
		_ = e.PSG.SetVolume(1, 0)
		_ = e.PSG.SetVolume(2, 0)
	}

	if n := melody[s]; n != 0 {
		e.Melody.KeyOn(midiToHz(n))
	} else {
		e.Melody.KeyOff()
	}

	d := drums[s]
	for i := rhythm.Instrument(0); i < rhythm.NumInstruments; i++ {
		if d&(1<<i) != 0 {
			e.Rhythm.KeyOn(i)
		}
	}

	// the noise channel adds a short burst to the snare
	if d&sd != 0 {
		e.PSG.SetNoiseVolume(8)
	} else {
		e.PSG.SetNoiseVolume(0)
	}

	if e.leadHold > 0 {
		e.leadHold--
		if e.leadHold == 0 {
			e.Lead.KeyOff()
		}
	}

	e.step = (e.step + 1) % patternLen
	e.steps++
}
