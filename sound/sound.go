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
	"time"

	"github.com/pc88go/m88sound/assert"
	"github.com/pc88go/m88sound/curated"
	"github.com/pc88go/m88sound/logger"
)

// Sound is the sound system of the emulated machine. It converts the time
// elapsed on the virtual clock into samples mixed by the Bus.
type Sound struct {
	timing Timing

	clock Clock
	sched Scheduler

	// removes the watchdog event from the scheduler
	cancelWatchdog func()

	bus    *Bus
	output outputBuffer

	// the bus is only enabled when an output buffer exists
	enabled bool

	// output rate and the size of the output buffer in frames at that rate
	rate       int
	bufferSize int

	// mixing rate divided by 50. see convert() for why
	rate50 uint64

	// virtual tick at the most recent call to Update()
	prevTime uint32

	// sub-sample remainder of the most recent conversion, in units of
	// 1/2000th of a sample. always in the range 0 to 1999
	tdiff int

	// remainder of the division by the effective speed. carrying this value
	// means that the conversion of many small deltas gives the same result as
	// the conversion of one large delta
	srem uint64

	// deltas of up to mixThreshold ticks are accumulated rather than being
	// converted immediately
	mixThreshold uint32
	accumulated  uint32

	// wall clock time that the current accumulation started
	accumulatedSince time.Time
	now              func() time.Time

	// goroutine ownership checking for Update()
	owner       assert.Owner
	checkOwner  bool
	ownerWarned bool

	// zero speed is reported only once
	speedWarned bool
}

// NewSound is the preferred method of initialisation for the Sound type. The
// sound system is disabled until Init() has been called successfully.
func NewSound(timing Timing) *Sound {
	return &Sound{
		timing:       timing,
		bus:          NewBus(MixRate, 0),
		mixThreshold: timing.PreciseThreshold,
		now:          time.Now,
	}
}

// Init attaches the sound system to the virtual clock and prepares an output
// buffer of bufferSize frames at rate. A watchdog event is installed with the
// scheduler, if one is supplied, to make sure the conversion of ticks to
// samples never stalls for long. A bufferSize of zero is valid and leaves the
// sound system disabled.
func (s *Sound) Init(clock Clock, sched Scheduler, rate int, bufferSize int) error {
	if clock == nil {
		return curated.Errorf(InitError, curated.Errorf(NoClockError))
	}

	if s.cancelWatchdog != nil {
		s.cancelWatchdog()
		s.cancelWatchdog = nil
	}

	s.clock = clock
	s.sched = sched
	s.prevTime = clock.CPUTick()
	s.accumulated = 0
	s.enabled = false

	err := s.SetRate(rate, bufferSize)
	if err != nil {
		return curated.Errorf(InitError, err)
	}

	if sched != nil {
		s.cancelWatchdog = sched.AddEvent(s.timing.WatchdogInterval, s.updateCounter, true)
	}

	logger.Logf(logger.Allow, "sound", "mixing at %dHz, output at %dHz (%d frame buffer)", MixRate, rate, bufferSize)

	return nil
}

// SetRate changes the output rate and the size of the output buffer. Any
// samples in the existing buffer are lost. The sound system is disabled if
// an error is returned or if bufferSize is zero.
func (s *Sound) SetRate(rate int, bufferSize int) error {
	s.enabled = false

	// all sources are told the mixing rate, even if the output rate is
	// unchanged
	s.bus.SetRate(MixRate)

	s.output.cleanup()

	if rate <= 0 {
		return curated.Errorf(RateError, rate)
	}
	if bufferSize < 0 {
		return curated.Errorf(BufferSizeError, bufferSize)
	}

	s.rate = rate
	s.bufferSize = bufferSize

	if bufferSize > 0 {
		s.bus.Resize(bufferSize)
		s.output.init(s.bus, ConversionRate, rate, bufferSize, bufferSize)
		s.rate50 = ConversionRate / 50
		s.tdiff = 0
		s.srem = 0
		s.enabled = true
	}

	return nil
}

// Cleanup disconnects all sources, removes the watchdog and releases the
// output buffer. The sources themselves are not affected. The audio backend
// must have been stopped before Cleanup() is called.
func (s *Sound) Cleanup() {
	if s.cancelWatchdog != nil {
		s.cancelWatchdog()
		s.cancelWatchdog = nil
	}
	s.bus.DisconnectAll()
	s.output.cleanup()
	s.enabled = false
}

// Reset clears the clock bookkeeping. Should be called whenever the emulated
// machine is reset.
func (s *Sound) Reset() {
	if s.clock != nil {
		s.prevTime = s.clock.CPUTick()
	}
	s.tdiff = 0
	s.srem = 0
	s.accumulated = 0
}

// ApplyConfig selects the mixing threshold.
func (s *Sound) ApplyConfig(flags ConfigFlags) {
	if flags&PreciseMixing == PreciseMixing {
		s.mixThreshold = s.timing.PreciseThreshold
	} else {
		s.mixThreshold = s.timing.CoarseThreshold
	}
}

// FillWhenEmpty causes the output buffer to mix directly from the bus rather
// than underflow. This keeps the audio device busy when the emulation is
// running slowly, at the cost of the sources running ahead of the virtual
// clock.
func (s *Sound) FillWhenEmpty(fill bool) {
	s.output.setFillWhenEmpty(fill)
}

// SetWallClock replaces the function used to measure how long small deltas
// have been accumulating. The default is time.Now.
func (s *Sound) SetWallClock(now func() time.Time) {
	s.now = now
}

// SetOwner claims the sound system for the calling goroutine. If Update() is
// later called from a different goroutine an entry is added to the log.
func (s *Sound) SetOwner() {
	s.owner.Claim()
	s.checkOwner = true
	s.ownerWarned = false
}

// Connect adds a source to the bus. Returns false if it is already
// connected.
func (s *Sound) Connect(src Source) bool {
	return s.bus.Connect(src)
}

// Disconnect removes a source from the bus. Returns false if it was not
// connected.
func (s *Sound) Disconnect(src Source) bool {
	return s.bus.Disconnect(src)
}

// Get mixes samples frames from the bus in the narrow form. See Bus.Get().
func (s *Sound) Get(dest []int16, samples int) int {
	return s.bus.Get(dest, samples)
}

// GetWide mixes samples frames from the bus in the wide form. See
// Bus.GetWide().
func (s *Sound) GetWide(dest []int32, samples int) int {
	return s.bus.GetWide(dest, samples)
}

// Provider returns the pull side of the output buffer, to be used by the
// audio backend.
func (s *Sound) Provider() Provider {
	return &s.output
}

// Bus returns the mixing bus.
func (s *Sound) Bus() *Bus {
	return s.bus
}

// IsEnabled returns true if the sound system has an output buffer.
func (s *Sound) IsEnabled() bool {
	return s.enabled
}

// MixRate returns the rate sources are mixed at.
func (s *Sound) MixRate() int {
	return MixRate
}

// Rate returns the output rate.
func (s *Sound) Rate() int {
	return s.rate
}

// BufferSize returns the size of the output buffer in frames at the output
// rate.
func (s *Sound) BufferSize() int {
	return s.bufferSize
}

// Timing returns the timing values used by the sound system.
func (s *Sound) Timing() Timing {
	return s.timing
}

// Buffered returns the number of frames waiting in the output buffer, at the
// mixing rate, and the number of frames dropped because the buffer was full.
func (s *Sound) Buffered() (int, int) {
	return s.output.Buffered()
}
