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

import "time"

// Timing describes how the virtual time of the emulated machine relates to
// the scheduling decisions made by Update(). The values depend on the unit of
// the virtual tick counter and on the frame rate of the machine, so they are
// derived by NewTiming() rather than fixed.
type Timing struct {
	// the number of virtual ticks in one second of emulated time
	TicksPerSecond int

	// the number of ticks in one video frame. small deltas are accumulated
	// until at least this many ticks have elapsed
	FrameTicks uint32

	// the mixing threshold. deltas larger than the threshold are converted
	// to samples immediately. the precise threshold is used when the
	// PreciseMixing flag is given to ApplyConfig()
	PreciseThreshold uint32
	CoarseThreshold  uint32

	// interval of the watchdog event and the number of ticks without an
	// update that causes the watchdog to force one
	WatchdogInterval uint32
	WatchdogStall    uint32

	// the longest real time that accumulated ticks will be held before being
	// flushed, even if FrameTicks has not been reached
	StarvationDelay time.Duration
}

// the frame rate of the emulated machine's display. accumulation of small
// deltas is measured in frames.
const frameRate = 60

// NewTiming derives the Timing values for a virtual clock running at
// ticksPerSecond.
func NewTiming(ticksPerSecond int) Timing {
	if ticksPerSecond < frameRate {
		ticksPerSecond = frameRate
	}

	tps := uint32(ticksPerSecond)

	return Timing{
		TicksPerSecond:   ticksPerSecond,
		FrameTicks:       (tps + frameRate - 1) / frameRate,
		PreciseThreshold: max(tps/1000, 1),
		CoarseThreshold:  max(tps/50, 1),
		WatchdogInterval: max(tps/20, 1),
		WatchdogStall:    max(tps*2/5, 1),
		StarvationDelay:  5 * time.Millisecond,
	}
}

// DefaultTiming is the timing for a virtual clock with a 10µs tick.
func DefaultTiming() Timing {
	return NewTiming(100000)
}

// ConfigFlags are the options that can be given to ApplyConfig().
type ConfigFlags uint32

// List of valid ConfigFlags.
const (
	// use the small mixing threshold. sources are mixed more often, which
	// costs more CPU time but improves the timing accuracy of register
	// changes.
	PreciseMixing ConfigFlags = 1 << iota
)

// BufferSize returns the size in frames of an output buffer holding ms
// milliseconds of audio at rate. The result is a multiple of 16.
func BufferSize(rate int, ms int) int {
	return (rate * ms / 1000) &^ 15
}
