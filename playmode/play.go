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

package playmode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pc88go/m88sound/ensemble"
	"github.com/pc88go/m88sound/hotkeys"
	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/machine"
	"github.com/pc88go/m88sound/performance/limiter"
	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/sound/dumppipe"
)

const logTag = "playmode"

// Options for Play().
type Options struct {
	// output for messages to the user. can be nil
	Output io.Writer

	// name of the audio backend. see Backends for valid values
	Backend string

	// clock of the machine in ticks per 10µs
	Clock int

	// tempo of the ensemble pattern in beats per minute
	Tempo int

	// directory containing the rhythm samples. an empty string will cause
	// the rhythm sounds to be synthesised
	Samples string

	// file to record to from the start. an empty string means no recording
	Record string

	// stop playing after this length of time. zero means play until the quit
	// hotkey or interrupt signal
	Duration time.Duration

	// read the terminal for hotkeys
	Hotkeys bool

	// output for the HEADLESS backend
	HeadlessOutput io.Writer
}

// the state of a single play session
type playmode struct {
	output io.Writer

	m     *machine.Machine
	snd   *sound.Sound
	prefs *sound.Preferences
	ens   *ensemble.Ensemble
	pipe  *dumppipe.Pipe

	backend Backend
	lim     *limiter.FpsLimiter

	intChan chan os.Signal
	hotkeys <-chan hotkeys.Event
}

func (pl *playmode) printf(format string, args ...any) {
	if pl.output != nil {
		fmt.Fprintf(pl.output, format, args...)
	}
}

// Play runs the emulation in real time until the quit hotkey is pressed, an
// interrupt signal is received or the duration has elapsed.
func Play(opts Options) (rerr error) {
	pl := &playmode{
		output: opts.Output,
	}

	var err error

	pl.m, err = machine.NewMachine(opts.Clock)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}

	pl.prefs, err = sound.NewPreferences()
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}

	pl.snd = sound.NewSound(sound.NewTiming(pl.m.TicksPerSecond()))
	rate := pl.prefs.Rate.Int()
	err = pl.snd.Init(pl.m, pl.m, rate, sound.BufferSize(rate, pl.prefs.BufferLength.Int()))
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	defer pl.snd.Cleanup()
	pl.snd.AttachPreferences(pl.prefs)

	pl.ens = ensemble.NewEnsemble()
	_, err = pl.ens.LoadSamples(opts.Samples)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	err = pl.ens.Connect(pl.snd)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	defer pl.ens.Disconnect(pl.snd)

	// the backend pulls through the dump pipe so that recording can be
	// started and stopped at any time
	pl.pipe = dumppipe.New(pl.snd.Provider())
	defer func() {
		if err := pl.pipe.DumpStop(); err != nil && rerr == nil {
			rerr = fmt.Errorf("playmode: %w", err)
		}
	}()

	pl.backend, err = NewBackend(opts.Backend, pl.pipe, pl.snd.Rate(), pl.snd.BufferSize(), opts.HeadlessOutput)
	if err != nil {
		return err
	}

	// the backend must be stopped before the sound system is cleaned up.
	// deferred functions run in reverse order so this happens first
	defer func() {
		if err := pl.backend.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("playmode: %w", err)
		}
	}()

	if opts.Record != "" {
		err = pl.startRecording(opts.Record)
		if err != nil {
			return err
		}
	}

	if opts.Hotkeys {
		keys, err := hotkeys.Open(hotkeys.DefaultDevice)
		if err != nil {
			// playing without hotkeys is better than not playing at all
			logger.Log(logger.Allow, logTag, err)
		} else {
			defer keys.Close()
			pl.hotkeys = keys.Events()
			pl.printf("hotkeys: r record, p precise, +/- speed, 1-7 notes, q quit\n")
		}
	}

	pl.intChan = make(chan os.Signal, 1)
	signal.Notify(pl.intChan, os.Interrupt)
	defer signal.Stop(pl.intChan)

	pl.lim, err = limiter.NewFPSLimiter(framesPerSecond)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	defer pl.lim.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = pl.backend.Start(ctx)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}

	err = pl.ens.Start(pl.m, pl.m.TicksPerSecond(), opts.Tempo)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	defer pl.ens.Stop()

	pl.printf("playing: %s\n", pl.m)

	return pl.run(opts.Duration)
}

// number of frames emulated per second of real time
const framesPerSecond = 60

// run is the emulation loop
func (pl *playmode) run(duration time.Duration) error {
	pl.snd.SetOwner()

	var emulated time.Duration

	for pl.lim.Wait() {
		quit, err := pl.eventHandler()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		// the frame is measured in real time. the number of ticks run depends
		// on the speed of the machine
		frame := pl.lim.Period()
		pl.m.RunFor(frame)
		pl.snd.Update()

		emulated += frame
		if duration > 0 && emulated >= duration {
			return nil
		}
	}

	return errors.New("playmode: limiter stopped unexpectedly")
}
