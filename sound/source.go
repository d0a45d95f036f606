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

// Source is implemented by any generator of PCM data that can be connected to
// the Bus. Implementations must be comparable (a pointer type is the natural
// choice) because the Bus identifies sources by equality.
type Source interface {
	// SetRate is called by the Bus with the rate at which the source will be
	// mixed. Returns false if the source cannot produce data at that rate.
	SetRate(rate int) bool

	// Mix adds the next samples of data to the accumulator. The accumulator
	// is interleaved stereo and is at least samples*2 long. Mix should add to
	// the existing values in the accumulator and not overwrite them.
	Mix(dest []int32, samples int)

	// Channels returns the number of channels the source produces.
	Channels() int
}

// Provider is the pull side of the sound system. It is implemented by the
// output buffer and by anything that decorates it.
type Provider interface {
	// Get fills dest with up to samples frames of interleaved 16bit data.
	// Returns the number of frames actually written.
	Get(dest []int16, samples int) int

	// Rate returns the sample rate of the data returned by Get().
	Rate() int

	// Channels returns the number of interleaved channels in each frame.
	Channels() int

	// Avail returns the number of frames that can be returned by Get()
	// without underflow. Get() may be able to return more than this if the
	// provider is able to generate frames on demand.
	Avail() int
}

// Clock is the virtual time of the machine being emulated.
type Clock interface {
	// CPUTick returns the monotonic virtual tick counter. The counter may
	// wrap.
	CPUTick() uint32

	// EffectiveSpeed returns the number of virtual ticks in 10µs of emulated
	// time, adjusted for the speed the machine is running at. For example, a
	// 4MHz CPU running at full speed has an effective speed of 40. Must never
	// be zero.
	EffectiveSpeed() int
}

// Scheduler allows the sound system to install a periodic event on the
// virtual time line of the emulated machine.
type Scheduler interface {
	// AddEvent calls fn after interval virtual ticks and then every interval
	// ticks if repeating is true. The returned function removes the event.
	AddEvent(interval uint32, fn func(), repeating bool) (cancel func())
}
