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
	"fmt"

	"github.com/pc88go/m88sound/hotkeys"
	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/paths"
)

// limits of the speed that can be set with the hotkeys
const (
	minSpeed  = 10
	maxSpeed  = 400
	speedStep = 10
)

// eventHandler services the interrupt signal and hotkeys. Returns true if
// playing should stop.
func (pl *playmode) eventHandler() (bool, error) {
	select {
	case <-pl.intChan:
		return true, nil

	case ev := <-pl.hotkeys:
		return pl.handleHotkey(ev)

	default:
	}

	return false, nil
}

func (pl *playmode) handleHotkey(ev hotkeys.Event) (bool, error) {
	logger.Logf(logger.Allow, logTag, "hotkey: %s", ev)

	switch ev.Action {
	case hotkeys.ActionQuit:
		return true, nil

	case hotkeys.ActionRecord:
		return false, pl.toggleRecording()

	case hotkeys.ActionPrecise:
		err := pl.prefs.PreciseMixing.Set(!pl.prefs.PreciseMixing.Bool())
		if err != nil {
			return false, fmt.Errorf("playmode: %w", err)
		}
		pl.printf("precise mixing: %v\n", pl.prefs.PreciseMixing.Bool())

	case hotkeys.ActionFaster:
		return false, pl.setSpeed(pl.m.Speed() + speedStep)

	case hotkeys.ActionSlower:
		return false, pl.setSpeed(pl.m.Speed() - speedStep)

	case hotkeys.ActionNote:
		if ev.Note >= 0 && ev.Note < hotkeys.NumNotes {
			pl.ens.Note(hotkeys.NoteFrequencies[ev.Note])
		}
	}

	return false, nil
}

func (pl *playmode) setSpeed(speed int) error {
	speed = min(max(speed, minSpeed), maxSpeed)
	if speed == pl.m.Speed() {
		return nil
	}
	err := pl.m.SetSpeed(speed)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	pl.printf("speed: %d%%\n", speed)
	return nil
}

// toggleRecording starts recording to a new file in the recordings directory
// or stops the current recording
func (pl *playmode) toggleRecording() error {
	if pl.pipe.IsDumping() {
		fn := pl.pipe.Filename()
		written, skipped := pl.pipe.Stats()
		err := pl.pipe.DumpStop()
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
		pl.printf("recording stopped: %s (%d frames, %d silent frames skipped)\n", fn, written, skipped)
		return nil
	}

	fn, err := paths.ResourcePath("recordings", paths.UniqueFilename("dump", "", "wav"))
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	return pl.startRecording(fn)
}

func (pl *playmode) startRecording(fn string) error {
	err := pl.pipe.DumpStart(fn)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	pl.printf("recording: %s\n", fn)
	return nil
}
