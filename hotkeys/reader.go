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

//go:build !windows

package hotkeys

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pc88go/m88sound/logger"
	"github.com/pkg/term"
)

// DefaultDevice is the terminal device opened by Open() when no device is
// specified.
const DefaultDevice = "/dev/tty"

// how long a read waits before checking for the reader being closed
const readTimeout = 100 * time.Millisecond

// Reader sends an Event on the Events() channel for every recognised key
// pressed in the terminal.
type Reader struct {
	t      *term.Term
	events chan Event

	quit chan bool
	done chan bool
	stop sync.Once
}

// Open the terminal device and start reading key presses.
func Open(device string) (*Reader, error) {
	if device == "" {
		device = DefaultDevice
	}

	t, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("hotkeys: %w", err)
	}

	err = t.SetReadTimeout(readTimeout)
	if err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, fmt.Errorf("hotkeys: %w", err)
	}

	r := &Reader{
		t:      t,
		events: make(chan Event, 16),
		quit:   make(chan bool),
		done:   make(chan bool),
	}

	go r.run()

	return r, nil
}

func (r *Reader) run() {
	defer close(r.done)

	b := make([]byte, 1)
	for {
		select {
		case <-r.quit:
			return
		default:
		}

		n, err := r.t.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Logf(logger.Allow, "hotkeys", "%v", err)
			return
		}
		if n == 0 {
			continue // for loop
		}

		ev := Decode(b[0])
		if ev.Action == ActionNone {
			continue // for loop
		}

		select {
		case r.events <- ev:
		default:
			// the emulation loop is not keeping up. losing a key press is
			// preferable to stalling the terminal
		}
	}
}

// Events returns the channel on which key press events are sent.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Close stops reading and restores the terminal to its original state.
func (r *Reader) Close() error {
	var err error
	r.stop.Do(func() {
		close(r.quit)
		<-r.done
		err = errors.Join(r.t.Restore(), r.t.Close())
	})
	if err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	return nil
}
