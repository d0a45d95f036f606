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
	"io"
	"os"
	"testing"

	"github.com/pc88go/m88sound/ensemble"
	"github.com/pc88go/m88sound/hotkeys"
	"github.com/pc88go/m88sound/machine"
	"github.com/pc88go/m88sound/performance/limiter"
	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/sound/dumppipe"
)

// newTestPlaymode creates a playmode with no backend. hotkey events are read
// from the supplied channel
func newTestPlaymode(t *testing.T, events chan hotkeys.Event) (*playmode, error) {
	t.Helper()

	pl := &playmode{
		output:  io.Discard,
		intChan: make(chan os.Signal, 1),
		hotkeys: events,
	}

	var err error

	pl.m, err = machine.NewMachine(40)
	if err != nil {
		return nil, err
	}

	pl.prefs, err = sound.NewPreferences()
	if err != nil {
		return nil, err
	}

	pl.snd = sound.NewSound(sound.NewTiming(pl.m.TicksPerSecond()))
	err = pl.snd.Init(pl.m, pl.m, 44100, sound.BufferSize(44100, 100))
	if err != nil {
		return nil, err
	}
	t.Cleanup(pl.snd.Cleanup)
	pl.snd.AttachPreferences(pl.prefs)

	pl.ens = ensemble.NewEnsemble()
	err = pl.ens.Connect(pl.snd)
	if err != nil {
		return nil, err
	}

	pl.pipe = dumppipe.New(pl.snd.Provider())
	t.Cleanup(func() { _ = pl.pipe.DumpStop() })

	pl.lim, err = limiter.NewFPSLimiter(framesPerSecond)
	if err != nil {
		return nil, err
	}
	t.Cleanup(pl.lim.Stop)

	return pl, nil
}
