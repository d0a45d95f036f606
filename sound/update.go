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
	"github.com/pc88go/m88sound/logger"
)

// fixed point scale of the sub-sample remainder. the mixing rate is divided by
// 50 and the product scaled back up by this value. keeping the rate small
// keeps the intermediate product small
const subsampleScale = 2000

// Update reconciles the output buffer with the virtual clock. It should be
// called by the emulation goroutine whenever time should be brought up to
// date, ideally just before the state of a connected source changes.
//
// Large deltas are converted to samples immediately. Deltas no larger than
// the mixing threshold are accumulated until a frame's worth of ticks has
// elapsed, or until the accumulation has been waiting for longer than the
// starvation delay.
func (s *Sound) Update() {
	if !s.enabled || s.clock == nil {
		return
	}

	now := s.clock.CPUTick()
	elapsed := now - s.prevTime

	if s.checkOwner && !s.ownerWarned && !s.owner.IsOwner() {
		logger.Log(logger.Allow, "sound", "Update() called from a goroutine other than the owner")
		s.ownerWarned = true
	}

	if elapsed > s.mixThreshold {
		s.prevTime = now

		// any accumulated ticks are converted along with the new delta
		ticks := elapsed + s.accumulated
		s.accumulated = 0
		s.output.Fill(s.convert(ticks))
		return
	}

	if elapsed == 0 {
		return
	}

	s.prevTime = now
	if s.accumulated == 0 {
		s.accumulatedSince = s.now()
	}
	s.accumulated += elapsed

	if s.accumulated >= s.timing.FrameTicks || s.now().Sub(s.accumulatedSince) >= s.timing.StarvationDelay {
		s.output.Fill(s.convert(s.accumulated))
		s.accumulated = 0
	}
}

// convert virtual ticks to a number of samples at the mixing rate:
//
//	samples = ticks * (rate / 50) / speed / 2000
//
// where speed is the effective speed of the machine (ticks per 10µs). the
// remainders of both divisions are carried into the next conversion so that
// rounding errors never accumulate.
func (s *Sound) convert(ticks uint32) int {
	speed := s.clock.EffectiveSpeed()
	if speed <= 0 {
		if !s.speedWarned {
			logger.Logf(logger.Allow, "sound", "effective speed of %d%% is invalid", speed)
			s.speedWarned = true
		}
		return 0
	}

	total := uint64(ticks)*s.rate50 + s.srem
	q := total / uint64(speed)
	s.srem = total % uint64(speed)

	a := q + uint64(s.tdiff)
	s.tdiff = int(a % subsampleScale)

	return int(a / subsampleScale)
}

// SubsampleTime returns the fraction of a sample, in units of 1/2000th of a
// sample, that has elapsed on the virtual clock but not yet been mixed.
func (s *Sound) SubsampleTime() int {
	return s.tdiff
}

// Accumulated returns the number of ticks waiting to be converted.
func (s *Sound) Accumulated() uint32 {
	return s.accumulated
}

// updateCounter is called periodically by the scheduler. the tick counter is
// only ever advanced by Update() so if the machine goes for a long time
// without an update we force one.
func (s *Sound) updateCounter() {
	if s.clock == nil {
		return
	}
	if s.clock.CPUTick()-s.prevTime > s.timing.WatchdogStall {
		s.Update()
	}
}
