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

package machine

import (
	"fmt"
	"time"
)

// the unit of the effective speed
const ticksPerSpeedUnit = 10 * time.Microsecond

// Machine is a virtual machine with a clock of a fixed frequency.
type Machine struct {
	// the number of ticks in 10µs when running at full speed. a 4MHz CPU has
	// a clock of 40
	clock int

	// run speed as a percentage
	speed int

	tick uint32

	// fraction of a tick left over by RunFor(), in units of 1/10000th of a
	// tick
	fraction int64

	events   []*event
	sequence uint64
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The clock is the number of virtual ticks in 10µs of emulated time.
func NewMachine(clock int) (*Machine, error) {
	if clock <= 0 {
		return nil, fmt.Errorf("machine: clock must be positive (%d)", clock)
	}
	return &Machine{
		clock: clock,
		speed: 100,
	}, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%.2fMHz @ %d%%", float64(m.clock)/10, m.speed)
}

// CPUTick implements the sound.Clock interface.
func (m *Machine) CPUTick() uint32 {
	return m.tick
}

// EffectiveSpeed implements the sound.Clock interface.
func (m *Machine) EffectiveSpeed() int {
	return max(1, m.clock*m.speed/100)
}

// SetSpeed changes the speed of the CPU relative to the rest of the machine,
// as a percentage. A speed of 200 means that twice as many ticks make up the
// same amount of emulated time.
func (m *Machine) SetSpeed(percent int) error {
	if percent <= 0 {
		return fmt.Errorf("machine: speed must be positive (%d)", percent)
	}
	m.speed = percent
	return nil
}

// Speed returns the speed set with SetSpeed().
func (m *Machine) Speed() int {
	return m.speed
}

// TicksPerSecond returns the number of ticks in one second of emulated time
// at the current speed.
func (m *Machine) TicksPerSecond() int {
	return m.EffectiveSpeed() * int(time.Second/ticksPerSpeedUnit)
}

// Ticks returns the number of whole ticks in duration d of emulated time at
// the current speed.
func (m *Machine) Ticks(d time.Duration) uint32 {
	return uint32(int64(d) * int64(m.EffectiveSpeed()) / int64(ticksPerSpeedUnit))
}

// Run advances the tick counter by ticks, firing any events that fall due.
func (m *Machine) Run(ticks uint32) {
	target := m.tick + ticks
	for {
		e := m.next(target)
		if e == nil {
			break
		}
		m.tick = e.deadline
		m.fire(e)
	}
	m.tick = target
}

// RunFor advances the tick counter by duration d of emulated time. The part
// of a tick that d does not cover is carried into the next call.
func (m *Machine) RunFor(d time.Duration) {
	if d <= 0 {
		return
	}
	t := int64(d)*int64(m.EffectiveSpeed()) + m.fraction
	m.fraction = t % int64(ticksPerSpeedUnit)
	m.Run(uint32(t / int64(ticksPerSpeedUnit)))
}

// Reset the tick counter to zero. Scheduled events keep their intervals and
// are rescheduled relative to the new counter.
func (m *Machine) Reset() {
	for _, e := range m.events {
		e.deadline = e.interval
	}
	m.tick = 0
	m.fraction = 0
}
