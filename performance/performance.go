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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/pc88go/m88sound/machine"
	"github.com/pc88go/m88sound/sound"
)

// length of one emulated frame
const frameDuration = time.Second / 60

// the number of emulated frames between checks of the real time clock
const performanceBrake = 10

// Result of a performance check.
type Result struct {
	// real time taken and the amount of time emulated
	Elapsed  time.Duration
	Emulated time.Duration

	// frames delivered by the sound system at the output rate
	Frames int
}

// Realtime returns how many times faster than real time the sound system
// ran.
func (r Result) Realtime() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return r.Emulated.Seconds() / r.Elapsed.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("%.1fx realtime (%.2fs emulated in %.2fs, %d frames)",
		r.Realtime(), r.Emulated.Seconds(), r.Elapsed.Seconds(), r.Frames)
}

// Check the performance of the sound system. The machine is run, without any
// limit on speed, for the specified duration of real time. Data is pulled
// from the sound system just as an audio backend would. The sound system
// should have been initialised with the machine and sources connected.
func Check(output io.Writer, profile Profile, m *machine.Machine, snd *sound.Sound, duration time.Duration) (Result, error) {
	var res Result

	if !snd.IsEnabled() {
		return res, fmt.Errorf("performance: sound system is not enabled")
	}

	p := snd.Provider()
	dest := make([]int16, snd.BufferSize()*2)

	runner := func() error {
		start := time.Now()
		for {
			for i := 0; i < performanceBrake; i++ {
				m.RunFor(frameDuration)
				snd.Update()
				res.Frames += p.Get(dest, snd.BufferSize())
				res.Emulated += frameDuration
			}
			res.Elapsed = time.Since(start)
			if res.Elapsed >= duration {
				return nil
			}
		}
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil {
		return res, fmt.Errorf("performance: %w", err)
	}

	if output != nil {
		fmt.Fprintln(output, res.String())
	}

	return res, nil
}
