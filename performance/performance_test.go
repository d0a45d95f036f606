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

package performance_test

import (
	"strings"
	"testing"
	"time"

	"github.com/pc88go/m88sound/machine"
	"github.com/pc88go/m88sound/performance"
	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/sound/sources/psg"
	"github.com/pc88go/m88sound/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu, mem")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)
	test.ExpectEquality(t, p.String(), "CPU,MEM")

	p, err = performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	_, err = performance.ParseProfile("cpu,gpu")
	test.ExpectFailure(t, err)
}

func TestCheck(t *testing.T) {
	m, _ := machine.NewMachine(40)
	snd := sound.NewSound(sound.NewTiming(m.TicksPerSecond()))

	// not initialised
	_, err := performance.Check(nil, performance.ProfileNone, m, snd, time.Millisecond)
	test.ExpectFailure(t, err)

	test.DemandSuccess(t, snd.Init(m, m, 44100, sound.BufferSize(44100, 100)))
	p := psg.NewPSG()
	snd.Connect(p)
	p.SetTone(0, 440)
	p.SetVolume(0, 10)

	w := &strings.Builder{}
	res, err := performance.Check(w, performance.ProfileNone, m, snd, 50*time.Millisecond)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, res.Elapsed >= 50*time.Millisecond)
	test.ExpectInequality(t, res.Frames, 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "realtime"))

	// frames delivered match the amount of time emulated
	expected := res.Emulated.Seconds() * 44100
	test.ExpectApproximate(t, float64(res.Frames), expected, expected*0.01+10)
}
