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

// Package limiter provides a way of limiting events to a fixed rate.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(60)
//	defer fps.Stop()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		m.RunFor(fps.Period())
//		snd.Update()
//	}
package limiter

import (
	"fmt"
	"sync"
	"time"
)

// the limiter will not try to make up for more than this many missed periods
const maxCatchUp = 5

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	crit            sync.Mutex
	framesPerSecond int
	period          time.Duration

	tick chan bool
	quit chan bool
	done chan bool

	stop sync.Once
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
func NewFPSLimiter(framesPerSecond int) (*FpsLimiter, error) {
	lim := &FpsLimiter{
		tick: make(chan bool),
		quit: make(chan bool),
		done: make(chan bool),
	}

	err := lim.SetLimit(framesPerSecond)
	if err != nil {
		return nil, err
	}

	go lim.run()

	return lim, nil
}

// the ticker goroutine corrects for drift by measuring against the absolute
// time the next tick should occur rather than sleeping for a fixed period
func (lim *FpsLimiter) run() {
	defer close(lim.done)

	next := time.Now()
	for {
		select {
		case lim.tick <- true:
		case <-lim.quit:
			return
		}

		next = next.Add(lim.Period())

		now := time.Now()
		if d := next.Sub(now); d > 0 {
			select {
			case <-time.After(d):
			case <-lim.quit:
				return
			}
		} else if -d > lim.Period()*maxCatchUp {
			// too far behind. catching up would result in a burst of
			// ticks so start counting again from now
			next = now
		}
	}
}

// SetLimit changes the limit at which the FpsLimiter waits.
func (lim *FpsLimiter) SetLimit(framesPerSecond int) error {
	if framesPerSecond <= 0 {
		return fmt.Errorf("limiter: frames per second must be positive (%d)", framesPerSecond)
	}

	lim.crit.Lock()
	defer lim.crit.Unlock()
	lim.framesPerSecond = framesPerSecond
	lim.period = time.Second / time.Duration(framesPerSecond)

	return nil
}

// Limit returns the current frames per second.
func (lim *FpsLimiter) Limit() int {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.framesPerSecond
}

// Period returns the duration of a single frame.
func (lim *FpsLimiter) Period() time.Duration {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.period
}

// Wait will block until trigger. Returns false if the limiter has been
// stopped.
func (lim *FpsLimiter) Wait() bool {
	select {
	case <-lim.tick:
		return true
	case <-lim.done:
		return false
	}
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// Stop the limiter. Any goroutine blocked in Wait() will be released. It is
// safe to call Stop() more than once.
func (lim *FpsLimiter) Stop() {
	lim.stop.Do(func() {
		close(lim.quit)
		<-lim.done
	})
}
