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

package sound

import (
	"fmt"

	"github.com/pc88go/m88sound/prefs"
)

// Preferences for the sound system. Values are held in memory only.
type Preferences struct {
	// use the small mixing threshold
	PreciseMixing prefs.Bool

	// mix from the bus on output buffer underflow
	FillWhenEmpty prefs.Bool

	// output rate in Hz
	Rate prefs.Int

	// length of the output buffer in milliseconds
	BufferLength prefs.Int

	group *prefs.Group
}

// default preference values
const (
	DefaultRate         = 44100
	DefaultBufferLength = 100
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Any values on the top of the prefs command line stack
// are applied.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		group: prefs.NewGroup(),
	}
	p.SetDefaults()

	p.Rate.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("sound: rate must be positive")
		}
		return nil
	})
	p.BufferLength.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("sound: buffer length must not be negative")
		}
		return nil
	})

	for k, v := range map[string]prefs.Pref{
		"sound.precise":       &p.PreciseMixing,
		"sound.fillWhenEmpty": &p.FillWhenEmpty,
		"sound.rate":          &p.Rate,
		"sound.bufferLength":  &p.BufferLength,
	} {
		if err := p.group.Add(k, v); err != nil {
			return nil, err
		}
	}

	if err := p.group.ApplyCommandLine(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all sound preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.PreciseMixing.Set(true)
	p.FillWhenEmpty.Set(false)
	p.Rate.Set(DefaultRate)
	p.BufferLength.Set(DefaultBufferLength)
}

func (p *Preferences) String() string {
	return p.group.String()
}

// Flags returns the ConfigFlags described by the preferences.
func (p *Preferences) Flags() ConfigFlags {
	var flags ConfigFlags
	if p.PreciseMixing.Bool() {
		flags |= PreciseMixing
	}
	return flags
}

// AttachPreferences applies the preferences to the sound system and arranges
// for future changes to be applied as they happen. Changes should be made
// from the emulation goroutine.
func (s *Sound) AttachPreferences(p *Preferences) {
	s.ApplyConfig(p.Flags())
	s.FillWhenEmpty(p.FillWhenEmpty.Bool())

	p.PreciseMixing.SetHookPost(func(_ prefs.Value) error {
		s.ApplyConfig(p.Flags())
		return nil
	})
	p.FillWhenEmpty.SetHookPost(func(v prefs.Value) error {
		s.FillWhenEmpty(v.(bool))
		return nil
	})

	resize := func(_ prefs.Value) error {
		rate := p.Rate.Int()
		return s.SetRate(rate, BufferSize(rate, p.BufferLength.Int()))
	}
	p.Rate.SetHookPost(resize)
	p.BufferLength.SetHookPost(resize)
}
