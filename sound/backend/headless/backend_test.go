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

package headless_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/sound/backend/headless"
	"github.com/pc88go/m88sound/test"
)

// rampProvider produces an endless ramp
type rampProvider struct {
	next int16
}

func (p *rampProvider) Get(dest []int16, samples int) int {
	n := min(samples, len(dest)/2)
	for i := 0; i < n; i++ {
		dest[i*2] = p.next
		dest[i*2+1] = -p.next
		p.next++
	}
	return n
}

func (p *rampProvider) Rate() int     { return 44100 }
func (p *rampProvider) Channels() int { return 2 }
func (p *rampProvider) Avail() int    { return 1 << 20 }

func TestStep(t *testing.T) {
	var w bytes.Buffer
	b, err := headless.New(&rampProvider{next: 1}, 44100, 64, &w)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, b.Step())
	test.DemandSuccess(t, b.Step())

	pulled, delivered := b.Pulled()
	test.ExpectEquality(t, pulled, 32)
	test.ExpectEquality(t, delivered, 32)
	test.ExpectEquality(t, w.Len(), 32*4)

	data := w.Bytes()
	test.ExpectEquality(t, data[0], 1)
	test.ExpectEquality(t, data[2], 0xff)
	test.ExpectEquality(t, data[3], 0xff)
}

func TestShortfall(t *testing.T) {
	snd := sound.NewSound(sound.DefaultTiming())

	// the sound system has not been initialised so the provider produces
	// nothing. the backend delivers silence in its place
	var w bytes.Buffer
	b, err := headless.New(snd.Provider(), 44100, 64, &w)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.Step())

	pulled, delivered := b.Pulled()
	test.ExpectEquality(t, pulled, 0)
	test.ExpectEquality(t, delivered, 16)
	test.ExpectSuccess(t, bytes.Equal(w.Bytes(), make([]byte, 16*4)))
}

func TestInvalid(t *testing.T) {
	_, err := headless.New(nil, 0, 64, nil)
	test.ExpectFailure(t, err)
	_, err = headless.New(nil, 44100, 0, nil)
	test.ExpectFailure(t, err)
}

func TestRunning(t *testing.T) {
	b, err := headless.New(&rampProvider{}, 44100, 441, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Period(), 110*time.Second/44100)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	test.DemandSuccess(t, b.Start(ctx))
	test.ExpectSuccess(t, b.IsPlaying())

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if p, _ := b.Pulled(); p > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	b.Stop()
	test.ExpectFailure(t, b.IsPlaying())

	pulled, _ := b.Pulled()
	test.ExpectInequality(t, pulled, 0)

	// nothing is pulled once stopped
	time.Sleep(10 * time.Millisecond)
	after, _ := b.Pulled()
	test.ExpectEquality(t, after, pulled)

	test.ExpectSuccess(t, b.Close())
}

func TestWriteError(t *testing.T) {
	// room for one and a half chunks of 16 frames
	w, err := test.NewCappedWriter(24 * 4)
	test.DemandSuccess(t, err)

	b, err := headless.New(&rampProvider{}, 44100, 64, w)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, b.Step())
	test.ExpectFailure(t, b.Step())
	test.ExpectEquality(t, w.Len(), 24*4)

	rejected, failures := w.Rejected()
	test.ExpectEquality(t, rejected, 8*4)
	test.ExpectEquality(t, failures, 1)
}
