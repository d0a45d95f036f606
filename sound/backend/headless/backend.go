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

package headless

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/sound"
)

const logTag = "headless"

// bytes in one stereo 16bit frame
const frameSize = 4

// Backend implements a real-time paced audio backend.
type Backend struct {
	crit sync.Mutex

	cb  *sound.Callback
	w   io.Writer
	buf []byte

	period time.Duration

	// frames pulled from the provider and frames delivered in total
	pulled    atomic.Int64
	delivered atomic.Int64

	cancel context.CancelFunc
	done   chan bool
}

// New is the preferred method of initialisation for the Backend type. The
// bufferSize is in frames at rate. A quarter of the buffer is pulled each
// period. The writer can be nil, in which case data is discarded.
func New(p sound.Provider, rate int, bufferSize int, w io.Writer) (*Backend, error) {
	if rate <= 0 || bufferSize <= 0 {
		return nil, fmt.Errorf("headless: invalid rate or buffer size (%d, %d)", rate, bufferSize)
	}

	chunk := max(bufferSize/4, 1)

	return &Backend{
		cb:     sound.NewCallback(p),
		w:      w,
		buf:    make([]byte, chunk*frameSize),
		period: time.Duration(chunk) * time.Second / time.Duration(rate),
	}, nil
}

// SetProvider changes the source of the audio data. Safe to call while the
// backend is running.
func (b *Backend) SetProvider(p sound.Provider) {
	b.cb.SetProvider(p)
}

// Period returns the time between each pull.
func (b *Backend) Period() time.Duration {
	return b.period
}

// Step pulls one period of data from the provider. It is called by the
// backend goroutine but can be called directly when the backend is not
// running.
func (b *Backend) Step() error {
	n := b.cb.Fill(b.buf)
	b.pulled.Add(int64(n))
	b.delivered.Add(int64(len(b.buf) / frameSize))

	if b.w != nil {
		_, err := b.w.Write(b.buf)
		if err != nil {
			return fmt.Errorf("headless: %w", err)
		}
	}

	return nil
}

// Start the backend goroutine. It stops when the context is cancelled or when
// Stop() is called.
func (b *Backend) Start(ctx context.Context) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	if b.cancel != nil {
		return nil
	}

	ctx, b.cancel = context.WithCancel(ctx)
	b.done = make(chan bool)

	go func() {
		defer close(b.done)

		tck := time.NewTicker(b.period)
		defer tck.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-tck.C:
				err := b.Step()
				if err != nil {
					logger.Log(logger.Allow, logTag, err)
					return
				}
			}
		}
	}()

	return nil
}

// Stop the backend goroutine. The backend can be restarted with Start().
func (b *Backend) Stop() {
	b.crit.Lock()
	defer b.crit.Unlock()

	if b.cancel == nil {
		return
	}

	b.cancel()
	<-b.done
	b.cancel = nil
}

// IsPlaying returns true if the backend goroutine is running.
func (b *Backend) IsPlaying() bool {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.cancel != nil
}

// Close stops the backend.
func (b *Backend) Close() error {
	b.Stop()
	return nil
}

// Pulled returns the number of frames obtained from the provider and the
// number of frames delivered, including silence used to fill any shortfall.
func (b *Backend) Pulled() (int64, int64) {
	return b.pulled.Load(), b.delivered.Load()
}
