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

import "slices"

type event struct {
	interval  uint32
	deadline  uint32
	fn        func()
	repeating bool

	// order in which events were added. events with the same deadline fire
	// in this order
	sequence uint64
}

// AddEvent implements the sound.Scheduler interface. An interval of zero is
// treated as an interval of one tick.
func (m *Machine) AddEvent(interval uint32, fn func(), repeating bool) func() {
	interval = max(interval, 1)

	e := &event{
		interval:  interval,
		deadline:  m.tick + interval,
		fn:        fn,
		repeating: repeating,
		sequence:  m.sequence,
	}
	m.sequence++
	m.events = append(m.events, e)

	return func() {
		m.remove(e)
	}
}

// Events returns the number of scheduled events.
func (m *Machine) Events() int {
	return len(m.events)
}

func (m *Machine) remove(e *event) {
	m.events = slices.DeleteFunc(m.events, func(o *event) bool {
		return o == e
	})
}

// next returns the earliest event due no later than target. deadlines are
// compared relative to the current tick so that wrapping of the counter is
// handled.
func (m *Machine) next(target uint32) *event {
	limit := target - m.tick

	var n *event
	for _, e := range m.events {
		d := e.deadline - m.tick
		if d > limit {
			continue
		}
		if n == nil {
			n = e
			continue
		}
		nd := n.deadline - m.tick
		if d < nd || (d == nd && e.sequence < n.sequence) {
			n = e
		}
	}

	return n
}

// fire the event and reschedule or remove it.
func (m *Machine) fire(e *event) {
	if e.repeating {
		e.deadline += e.interval
	} else {
		m.remove(e)
	}
	e.fn()
}
