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
	"sync/atomic"
	"time"
)

// constSource adds the same value to every frame
type constSource struct {
	left   int32
	right  int32
	rate   int
	mixed  int
	passes int
}

func (s *constSource) SetRate(rate int) bool {
	s.rate = rate
	return true
}

func (s *constSource) Mix(dest []int32, samples int) {
	for i := 0; i < samples; i++ {
		dest[i*2] += s.left
		dest[i*2+1] += s.right
	}
	s.mixed += samples
	s.passes++
}

func (s *constSource) Channels() int {
	return 2
}

// countingSource produces a ramp. the value of each frame, once attenuated by
// the narrow mix, is the index of the frame
type countingSource struct {
	next int32
}

func (s *countingSource) SetRate(_ int) bool {
	return true
}

func (s *countingSource) Mix(dest []int32, samples int) {
	for i := 0; i < samples; i++ {
		dest[i*2] += s.next * 2
		dest[i*2+1] += s.next * 2
		s.next++
	}
}

func (s *countingSource) Channels() int {
	return 2
}

// sharedSource counts the frames mixed from it. the count can be read from
// any goroutine
type sharedSource struct {
	mixed atomic.Int64
}

func (s *sharedSource) SetRate(_ int) bool {
	return true
}

func (s *sharedSource) Mix(dest []int32, samples int) {
	for i := 0; i < samples*2; i++ {
		dest[i]++
	}
	s.mixed.Add(int64(samples))
}

func (s *sharedSource) Channels() int {
	return 2
}

type fakeClock struct {
	tick  uint32
	speed int
}

func (c *fakeClock) CPUTick() uint32 {
	return c.tick
}

func (c *fakeClock) EffectiveSpeed() int {
	return c.speed
}

type fakeEvent struct {
	interval  uint32
	fn        func()
	repeating bool
	cancelled bool
}

type fakeScheduler struct {
	events []*fakeEvent
}

func (s *fakeScheduler) AddEvent(interval uint32, fn func(), repeating bool) func() {
	e := &fakeEvent{interval: interval, fn: fn, repeating: repeating}
	s.events = append(s.events, e)
	return func() { e.cancelled = true }
}

// fire every event that hasn't been cancelled
func (s *fakeScheduler) fire() {
	for _, e := range s.events {
		if !e.cancelled {
			e.fn()
		}
	}
}

// wallClock is a controllable replacement for time.Now()
type wallClock struct {
	t time.Time
}

func (w *wallClock) now() time.Time {
	return w.t
}

func (w *wallClock) advance(d time.Duration) {
	w.t = w.t.Add(d)
}

// fixedProvider returns the frames it was created with and then nothing
type fixedProvider struct {
	frames []int16
}

func (p *fixedProvider) Get(dest []int16, samples int) int {
	n := min(samples, len(p.frames)/2, len(dest)/2)
	copy(dest, p.frames[:n*2])
	p.frames = p.frames[n*2:]
	return n
}

func (p *fixedProvider) Rate() int {
	return 44100
}

func (p *fixedProvider) Channels() int {
	return 2
}

func (p *fixedProvider) Avail() int {
	return len(p.frames) / 2
}
