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

package dumppipe

import (
	"errors"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pc88go/m88sound/curated"
	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/sound"
)

// State of the Pipe.
type State int

// List of valid State values.
const (
	Idle State = iota
	Standby
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Standby:
		return "standby"
	case Recording:
		return "recording"
	}
	return "unknown"
}

// WAV format of recordings
const (
	bitDepth  = 16
	channels  = 2
	formatPCM = 1
)

const logTag = "dumppipe"

// Pipe is a sound.Provider that passes data from another Provider through
// unchanged, while optionally writing it to a file.
type Pipe struct {
	crit sync.Mutex

	src   sound.Provider
	state State

	filename string
	f        *os.File
	enc      *wav.Encoder
	buf      *audio.IntBuffer

	// frames skipped while in standby and frames written while recording
	skipped int
	written int

	// write errors are only logged once per recording
	writeErr bool
}

// New is the preferred method of initialisation for the Pipe type.
func New(src sound.Provider) *Pipe {
	return &Pipe{
		src: src,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels},
			SourceBitDepth: bitDepth,
		},
	}
}

// SetSource changes the Provider being decorated. An active recording is
// not affected but the rate of the new Provider is assumed to be the same as
// the old.
func (p *Pipe) SetSource(src sound.Provider) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.src = src
}

// DumpStart creates filename and prepares it for recording. The recording
// waits in the Standby state until the first frame that is not silent.
func (p *Pipe) DumpStart(filename string) error {
	p.crit.Lock()
	defer p.crit.Unlock()

	if p.state != Idle {
		return curated.Errorf(AlreadyDumping, p.filename)
	}
	if p.src == nil {
		return curated.Errorf(StartError, curated.Errorf(NoSource))
	}

	rate := p.src.Rate()

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(StartError, err)
	}

	enc := wav.NewEncoder(f, rate, bitDepth, channels, formatPCM)

	// writing an empty buffer causes the encoder to output the header with
	// placeholder sizes. the sizes are corrected when the encoder is closed
	p.buf.Format.SampleRate = rate
	p.buf.Data = p.buf.Data[:0]
	err = enc.Write(p.buf)
	if err != nil {
		_ = f.Close()
		return curated.Errorf(StartError, err)
	}

	p.filename = filename
	p.f = f
	p.enc = enc
	p.skipped = 0
	p.written = 0
	p.writeErr = false
	p.state = Standby

	logger.Logf(logger.Allow, logTag, "standing by to record %s (%dHz)", filename, rate)

	return nil
}

// DumpStop completes the recording. It is safe to call when there is no
// recording in progress. The Pipe is always Idle after DumpStop() returns,
// even if an error is returned.
func (p *Pipe) DumpStop() error {
	p.crit.Lock()
	defer p.crit.Unlock()

	if p.state == Idle {
		return nil
	}

	err := p.enc.Close()
	err = errors.Join(err, p.f.Close())

	logger.Logf(logger.Allow, logTag, "%s: %d frames recorded (%d leading frames of silence skipped)",
		p.filename, p.written, p.skipped)

	p.state = Idle
	p.enc = nil
	p.f = nil

	if err != nil {
		return curated.Errorf(StopError, err)
	}
	return nil
}

// IsDumping returns true if the Pipe is in the Standby or Recording state.
func (p *Pipe) IsDumping() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.state != Idle
}

// State returns the current state of the Pipe.
func (p *Pipe) State() State {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.state
}

// Filename of the most recent recording.
func (p *Pipe) Filename() string {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.filename
}

// Stats returns the number of frames written to the most recent recording
// and the number of silent frames skipped before the recording started.
func (p *Pipe) Stats() (written int, skipped int) {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.written, p.skipped
}

// Get implements the sound.Provider interface. Data is obtained from the
// source Provider exactly once per call. Any shortfall is filled with
// silence but the number of frames returned is the number obtained from the
// source.
func (p *Pipe) Get(dest []int16, samples int) int {
	p.crit.Lock()
	defer p.crit.Unlock()

	samples = max(0, min(samples, len(dest)/channels))

	var n int
	if p.src != nil {
		n = max(0, min(p.src.Get(dest, samples), samples))
	}
	clear(dest[n*channels : samples*channels])

	if p.state != Idle && n > 0 {
		p.record(dest[:n*channels])
	}

	return n
}

// record frames to the file. the critical section must be held.
func (p *Pipe) record(frames []int16) {
	if p.state == Standby {
		i := 0
		for i < len(frames) && frames[i] == 0 && frames[i+1] == 0 {
			i += channels
		}
		p.skipped += i / channels
		frames = frames[i:]
		if len(frames) == 0 {
			return
		}
		p.state = Recording
		logger.Logf(logger.Allow, logTag, "recording started after %d frames of silence", p.skipped)
	}

	p.buf.Data = p.buf.Data[:0]
	for _, v := range frames {
		p.buf.Data = append(p.buf.Data, int(v))
	}

	err := p.enc.Write(p.buf)
	if err != nil {
		if !p.writeErr {
			logger.Logf(logger.Allow, logTag, "%s: %v", p.filename, err)
			p.writeErr = true
		}
		return
	}

	p.written += len(frames) / channels
}

// Rate implements the sound.Provider interface.
func (p *Pipe) Rate() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	if p.src == nil {
		return 0
	}
	return p.src.Rate()
}

// Channels implements the sound.Provider interface.
func (p *Pipe) Channels() int {
	return channels
}

// Avail implements the sound.Provider interface.
func (p *Pipe) Avail() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	if p.src == nil {
		return 0
	}
	return p.src.Avail()
}
