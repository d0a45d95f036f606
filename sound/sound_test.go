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

package sound_test

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/pc88go/m88sound/curated"
	"github.com/pc88go/m88sound/logger"
	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/test"
)

// prepare a sound system with the default timing, an effective speed of 100
// and a 100ms output buffer at 44100Hz
func newTestSound(t *testing.T) (*sound.Sound, *fakeClock, *constSource) {
	t.Helper()

	clk := &fakeClock{speed: 100}
	snd := sound.NewSound(sound.DefaultTiming())
	err := snd.Init(clk, nil, 44100, sound.BufferSize(44100, 100))
	test.DemandSuccess(t, err)

	src := &constSource{left: 1000, right: 1000}
	test.DemandSuccess(t, snd.Connect(src))

	return snd, clk, src
}

func TestTiming(t *testing.T) {
	tm := sound.DefaultTiming()
	test.ExpectEquality(t, tm.FrameTicks, 1667)
	test.ExpectEquality(t, tm.PreciseThreshold, 100)
	test.ExpectEquality(t, tm.CoarseThreshold, 2000)
	test.ExpectEquality(t, tm.WatchdogInterval, 5000)
	test.ExpectEquality(t, tm.WatchdogStall, 40000)

	tm = sound.NewTiming(4000000)
	test.ExpectEquality(t, tm.FrameTicks, 66667)
	test.ExpectEquality(t, tm.PreciseThreshold, 4000)

	test.ExpectEquality(t, sound.BufferSize(44100, 100), 4400)
	test.ExpectEquality(t, sound.BufferSize(22050, 100), 2192)
}

func TestInit(t *testing.T) {
	snd, _, _ := newTestSound(t)
	test.ExpectSuccess(t, snd.IsEnabled())
	test.ExpectEquality(t, snd.Rate(), 44100)
	test.ExpectEquality(t, snd.BufferSize(), 4400)
	test.ExpectEquality(t, snd.MixRate(), sound.MixRate)
	test.ExpectEquality(t, sound.ConversionRate, 55450)
	test.ExpectEquality(t, snd.Bus().Capacity(), 4400)
	test.ExpectEquality(t, snd.Provider().Rate(), 44100)
	test.ExpectEquality(t, snd.Provider().Channels(), 2)
}

func TestInitErrors(t *testing.T) {
	snd := sound.NewSound(sound.DefaultTiming())

	err := snd.Init(nil, nil, 44100, 4400)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, sound.InitError))
	test.ExpectSuccess(t, curated.Has(err, sound.NoClockError))
	test.ExpectFailure(t, snd.IsEnabled())

	clk := &fakeClock{speed: 100}
	err = snd.Init(clk, nil, 0, 4400)
	test.ExpectSuccess(t, curated.Is(err, sound.InitError))
	test.ExpectSuccess(t, curated.Has(err, sound.RateError))
	test.ExpectFailure(t, snd.IsEnabled())

	err = snd.Init(clk, nil, 44100, -1)
	test.ExpectSuccess(t, curated.Has(err, sound.BufferSizeError))
	test.ExpectFailure(t, snd.IsEnabled())

	// a zero sized buffer is not an error but the system stays disabled
	err = snd.Init(clk, nil, 44100, 0)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, snd.IsEnabled())

	src := &constSource{}
	snd.Connect(src)
	clk.tick += 100000
	snd.Update()
	test.ExpectEquality(t, src.mixed, 0)
}

func TestUpdateBeforeInit(t *testing.T) {
	snd := sound.NewSound(sound.DefaultTiming())
	snd.Update()
	test.ExpectFailure(t, snd.IsEnabled())
	test.ExpectEquality(t, snd.Provider().Get(make([]int16, 8), 4), 0)
}

// one large delta produces the same number of samples as two smaller deltas
// of the same total
func TestSplitDelta(t *testing.T) {
	a, clkA, srcA := newTestSound(t)
	clkA.tick += 1667
	a.Update()

	b, clkB, srcB := newTestSound(t)
	clkB.tick += 833
	b.Update()
	clkB.tick += 834
	b.Update()

	test.ExpectEquality(t, srcA.mixed, 9)
	test.ExpectEquality(t, srcB.mixed, 9)
	test.ExpectEquality(t, a.SubsampleTime(), 487)
	test.ExpectEquality(t, b.SubsampleTime(), 487)
}

// the total number of samples mixed depends only on the total number of
// ticks, however they are delivered
func TestNoDrift(t *testing.T) {
	snd, clk, src := newTestSound(t)

	// the wall clock never moves so accumulation is only ever flushed by
	// reaching the frame threshold
	wc := &wallClock{t: time.Unix(0, 0)}
	snd.SetWallClock(wc.now)

	rnd := rand.New(rand.NewPCG(88, 2203))

	var total uint64
	for i := 0; i < 10000; i++ {
		d := uint32(rnd.IntN(3000) + 1)
		clk.tick += d
		total += uint64(d)
		snd.Update()

		test.DemandEquality(t, snd.SubsampleTime() >= 0 && snd.SubsampleTime() < 2000, true, i)
	}

	converted := total - uint64(snd.Accumulated())
	test.ExpectEquality(t, uint64(src.mixed), converted*(sound.MixRate/50)/100/2000)
}

func TestAccumulation(t *testing.T) {
	snd, clk, src := newTestSound(t)
	wc := &wallClock{t: time.Unix(0, 0)}
	snd.SetWallClock(wc.now)

	for i := 0; i < 33; i++ {
		clk.tick += 50
		snd.Update()
	}
	test.ExpectEquality(t, snd.Accumulated(), 1650)
	test.ExpectEquality(t, src.mixed, 0)

	// reaching a frame's worth of ticks flushes the accumulation
	clk.tick += 50
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 0)
	test.ExpectEquality(t, src.mixed, 9)

	// an update with no elapsed time does nothing
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 0)
	test.ExpectEquality(t, src.mixed, 9)
}

func TestMixingThreshold(t *testing.T) {
	snd, clk, src := newTestSound(t)
	wc := &wallClock{t: time.Unix(0, 0)}
	snd.SetWallClock(wc.now)

	snd.ApplyConfig(0)
	clk.tick += 1500
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 1500)
	test.ExpectEquality(t, src.mixed, 0)

	clk.tick += 500
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 0)
	test.ExpectEquality(t, src.mixed, 11)

	snd.ApplyConfig(sound.PreciseMixing)
	clk.tick += 1500
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 0)
}

func TestStarvation(t *testing.T) {
	snd, clk, _ := newTestSound(t)
	wc := &wallClock{t: time.Unix(0, 0)}
	snd.SetWallClock(wc.now)

	clk.tick += 50
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 50)

	wc.advance(time.Millisecond)
	clk.tick += 10
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 60)

	// ticks that have been waiting too long are flushed even though they
	// don't amount to a frame
	wc.advance(snd.Timing().StarvationDelay)
	clk.tick += 10
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 0)
	test.ExpectEquality(t, snd.SubsampleTime(), 70*(sound.MixRate/50)/100)
}

func TestWatchdog(t *testing.T) {
	clk := &fakeClock{speed: 100}
	sched := &fakeScheduler{}
	snd := sound.NewSound(sound.DefaultTiming())
	test.DemandSuccess(t, snd.Init(clk, sched, 44100, 4400))

	src := &constSource{}
	snd.Connect(src)

	test.DemandEquality(t, len(sched.events), 1)
	test.ExpectEquality(t, sched.events[0].interval, 5000)
	test.ExpectSuccess(t, sched.events[0].repeating)

	// not stalled for long enough
	clk.tick += 30000
	sched.fire()
	test.ExpectEquality(t, src.mixed, 0)

	clk.tick += 20000
	sched.fire()
	test.ExpectEquality(t, src.mixed, 277)

	// a second Init() replaces the watchdog
	test.DemandSuccess(t, snd.Init(clk, sched, 44100, 4400))
	test.ExpectSuccess(t, sched.events[0].cancelled)
	test.ExpectFailure(t, sched.events[1].cancelled)

	snd.Cleanup()
	test.ExpectSuccess(t, sched.events[1].cancelled)
	test.ExpectFailure(t, snd.IsEnabled())
	test.ExpectEquality(t, snd.Bus().Sources(), 0)
}

func TestReset(t *testing.T) {
	snd, clk, src := newTestSound(t)
	wc := &wallClock{t: time.Unix(0, 0)}
	snd.SetWallClock(wc.now)

	clk.tick += 1000
	snd.Update()
	clk.tick += 50
	snd.Update()
	test.ExpectInequality(t, snd.SubsampleTime(), 0)
	test.ExpectEquality(t, snd.Accumulated(), 50)

	// time that passes before a reset is never converted
	clk.tick += 100000
	snd.Reset()
	test.ExpectEquality(t, snd.SubsampleTime(), 0)
	test.ExpectEquality(t, snd.Accumulated(), 0)

	mixed := src.mixed
	clk.tick += 1667
	snd.Update()
	test.ExpectEquality(t, src.mixed-mixed, 9)
}

func TestWrappingCounter(t *testing.T) {
	clk := &fakeClock{tick: 0xffffff00, speed: 100}
	snd := sound.NewSound(sound.DefaultTiming())
	test.DemandSuccess(t, snd.Init(clk, nil, 44100, 4400))
	src := &constSource{}
	snd.Connect(src)

	clk.tick += 1667
	snd.Update()
	test.ExpectEquality(t, src.mixed, 9)
}

func TestInvalidSpeed(t *testing.T) {
	snd, clk, src := newTestSound(t)
	clk.speed = 0
	clk.tick += 100000
	snd.Update()
	test.ExpectEquality(t, src.mixed, 0)

	clk.speed = 100
	clk.tick += 1667
	snd.Update()
	test.ExpectEquality(t, src.mixed, 9)
}

func TestRateConversion(t *testing.T) {
	snd, clk, _ := newTestSound(t)
	p := snd.Provider()

	dest := make([]int16, 2048)
	var frames int
	var last int16

	for i := 0; i < 300; i++ {
		clk.tick += 36000
		snd.Update()
		n := p.Get(dest, 1024)
		if n > 0 {
			last = dest[(n-1)*2]
		}
		frames += n
	}

	mixed := 300 * 36000 * (sound.MixRate / 50) / 100 / 2000
	test.ExpectApproximate(t, frames, mixed*44100/sound.ConversionRate, 3)
	test.ExpectEquality(t, last, 500)

	// nothing was dropped because the buffer was drained on every update
	_, dropped := snd.Buffered()
	test.ExpectEquality(t, dropped, 0)
}

func TestOverflowDropsOldest(t *testing.T) {
	clk := &fakeClock{speed: 100}
	snd := sound.NewSound(sound.DefaultTiming())

	// output at the conversion rate so that frames pass through the
	// resampler unchanged
	test.DemandSuccess(t, snd.Init(clk, nil, sound.ConversionRate, 16))
	snd.Connect(&countingSource{})

	clk.tick += 10000
	snd.Update()

	count, dropped := snd.Buffered()
	test.ExpectEquality(t, count, 16)
	test.ExpectEquality(t, dropped, 39)
	test.ExpectEquality(t, snd.Provider().Avail(), 16)

	// the output lags the input by one frame. the first frame is the silence
	// that preceded the buffer
	dest := make([]int16, 64)
	n := snd.Provider().Get(dest, 32)
	test.ExpectEquality(t, n, 16)
	test.ExpectEquality(t, dest[0], 0)
	for i := 1; i < n; i++ {
		test.ExpectEquality(t, dest[i*2], int16(38+i), i)
	}
}

func TestUnderflow(t *testing.T) {
	snd, _, src := newTestSound(t)
	p := snd.Provider()

	dest := make([]int16, 256)
	test.ExpectEquality(t, p.Avail(), 0)
	test.ExpectEquality(t, p.Get(dest, 128), 0)
	test.ExpectEquality(t, src.mixed, 0)

	// the bus is mixed directly when the buffer is empty. one pass of the
	// bus is available
	snd.FillWhenEmpty(true)
	test.ExpectEquality(t, p.Avail(), 4400*44100/sound.ConversionRate)
	test.ExpectEquality(t, p.Get(dest, 128), 128)
	test.ExpectInequality(t, src.mixed, 0)
	test.ExpectInequality(t, p.Avail(), 0)
}

func TestOwnership(t *testing.T) {
	logger.Clear()

	snd, clk, _ := newTestSound(t)
	snd.SetOwner()

	clk.tick += 1000
	snd.Update()

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectFailure(t, strings.Contains(w.String(), "owner"))

	done := make(chan bool)
	go func() {
		clk.tick += 1000
		snd.Update()
		done <- true
	}()
	<-done

	w.Reset()
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "owner"))
}

func TestPreferences(t *testing.T) {
	p, err := sound.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Rate.Int(), sound.DefaultRate)
	test.ExpectSuccess(t, p.PreciseMixing.Bool())

	snd, clk, src := newTestSound(t)
	wc := &wallClock{t: time.Unix(0, 0)}
	snd.SetWallClock(wc.now)
	snd.AttachPreferences(p)

	// coarse mixing accumulates larger deltas
	test.ExpectSuccess(t, p.PreciseMixing.Set(false))
	clk.tick += 1500
	snd.Update()
	test.ExpectEquality(t, snd.Accumulated(), 1500)
	test.ExpectEquality(t, src.mixed, 0)

	test.ExpectFailure(t, p.Rate.Set(0))
	test.ExpectEquality(t, snd.Rate(), 44100)

	test.ExpectSuccess(t, p.Rate.Set(22050))
	test.ExpectEquality(t, snd.Rate(), 22050)
	test.ExpectEquality(t, snd.BufferSize(), 2192)
	test.ExpectSuccess(t, snd.IsEnabled())

	test.ExpectFailure(t, p.BufferLength.Set(-1))
	test.ExpectEquality(t, snd.BufferSize(), 2192)
}

// the emulation goroutine connects, disconnects and updates while the audio
// goroutine pulls from the output buffer and from the bus
func TestConcurrentAccess(t *testing.T) {
	snd, clk, _ := newTestSound(t)
	snd.FillWhenEmpty(true)

	done := make(chan bool)
	finished := make(chan bool)
	go func() {
		p := snd.Provider()
		dest := make([]int16, 512)
		for {
			select {
			case <-done:
				finished <- true
				return
			default:
			}
			p.Get(dest, 200)
			snd.Bus().Get(dest, 32)
		}
	}()

	type snapshot struct {
		src   *sharedSource
		mixed int64
	}
	var disconnected []snapshot

	for i := 0; i < 3000; i++ {
		src := &sharedSource{}
		test.DemandSuccess(t, snd.Connect(src))

		clk.tick += 500
		snd.Update()

		test.DemandSuccess(t, snd.Disconnect(src))
		disconnected = append(disconnected, snapshot{src: src, mixed: src.mixed.Load()})

		// a disconnected source is never mixed again
		for _, d := range disconnected[max(0, len(disconnected)-4):] {
			test.ExpectEquality(t, d.src.mixed.Load(), d.mixed)
		}
	}

	close(done)
	<-finished

	for i, d := range disconnected {
		test.ExpectEquality(t, d.src.mixed.Load(), d.mixed, i)
	}
}
