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

package otoaudio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/sound"
)

const logTag = "otoaudio"

// the oto context is shared by all players
var (
	sharedCrit sync.Mutex
	sharedCtx  *oto.Context
	sharedRate int
)

func otoContext(rate int, bufferSize time.Duration) (*oto.Context, error) {
	sharedCrit.Lock()
	defer sharedCrit.Unlock()

	if sharedCtx != nil {
		if rate != sharedRate {
			return nil, fmt.Errorf("otoaudio: context already open at %dHz", sharedRate)
		}
		return sharedCtx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("otoaudio: %w", err)
	}
	<-ready

	sharedCtx = ctx
	sharedRate = rate

	return ctx, nil
}

// Player is an audio backend for the sound package.
type Player struct {
	crit sync.Mutex

	cb     *sound.Callback
	player *oto.Player
}

// New is the preferred method of initialisation for the Player type. The
// bufferSize is in frames at rate and is used as a hint for the size of the
// buffer of the audio device.
func New(p sound.Provider, rate int, bufferSize int) (*Player, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("otoaudio: invalid rate (%d)", rate)
	}

	d := time.Duration(bufferSize) * time.Second / time.Duration(rate)

	ctx, err := otoContext(rate, d)
	if err != nil {
		return nil, err
	}

	pl := &Player{
		cb: sound.NewCallback(p),
	}
	pl.player = ctx.NewPlayer(pl.cb)

	logger.Logf(logger.Allow, logTag, "playing at %dHz (%v buffer)", rate, d)

	return pl, nil
}

// SetProvider changes the source of the audio data. Safe to call while the
// player is running.
func (pl *Player) SetProvider(p sound.Provider) {
	pl.cb.SetProvider(p)
}

// Start playback. The context is not used because oto controls the lifetime
// of the playback goroutine.
func (pl *Player) Start(_ context.Context) error {
	pl.crit.Lock()
	defer pl.crit.Unlock()

	if pl.player == nil {
		return fmt.Errorf("otoaudio: player is closed")
	}
	pl.player.Play()

	return nil
}

// Stop playback. Playback can be restarted with Start().
func (pl *Player) Stop() {
	pl.crit.Lock()
	defer pl.crit.Unlock()

	if pl.player != nil {
		pl.player.Pause()
	}
}

// IsPlaying returns true if the player is running.
func (pl *Player) IsPlaying() bool {
	pl.crit.Lock()
	defer pl.crit.Unlock()
	return pl.player != nil && pl.player.IsPlaying()
}

// Close the player. The Player can not be used again.
func (pl *Player) Close() error {
	pl.crit.Lock()
	defer pl.crit.Unlock()

	if pl.player == nil {
		return nil
	}

	err := pl.player.Close()
	pl.player = nil
	if err != nil {
		return fmt.Errorf("otoaudio: %w", err)
	}
	return nil
}
