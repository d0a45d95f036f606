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
	"fmt"
	"io"
	"strings"

	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/sound/backend/headless"
	"github.com/pc88go/m88sound/sound/backend/otoaudio"
	"github.com/pc88go/m88sound/sound/backend/sdlaudio"
)

// Backend is the audio device the sound system is played through.
type Backend interface {
	Start(ctx context.Context) error
	Stop()
	IsPlaying() bool
	Close() error
}

// Backends is the list of backend names accepted by NewBackend().
var Backends = []string{"OTO", "SDL", "HEADLESS"}

// NewBackend creates the named backend pulling from the provider. The headless
// backend writes the audio to w, which can be nil.
func NewBackend(name string, p sound.Provider, rate int, bufferSize int, w io.Writer) (Backend, error) {
	var b Backend
	var err error

	// each case assigns to b only on success so that a failed creation
	// leaves b as a nil interface
	switch strings.ToUpper(name) {
	case "OTO":
		var pl *otoaudio.Player
		if pl, err = otoaudio.New(p, rate, bufferSize); err == nil {
			b = pl
		}
	case "SDL":
		var aud *sdlaudio.Audio
		if aud, err = sdlaudio.NewAudio(p, rate, bufferSize); err == nil {
			b = aud
		}
	case "HEADLESS":
		var hd *headless.Backend
		if hd, err = headless.New(p, rate, bufferSize, w); err == nil {
			b = hd
		}
	default:
		return nil, fmt.Errorf("playmode: unknown backend (%s)", name)
	}

	if err != nil {
		return nil, fmt.Errorf("playmode: %w", err)
	}

	return b, nil
}
