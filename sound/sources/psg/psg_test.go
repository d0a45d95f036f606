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

package psg_test

import (
	"testing"

	"github.com/pc88go/m88sound/sound"
	"github.com/pc88go/m88sound/sound/sources/psg"
	"github.com/pc88go/m88sound/test"
)

func TestSource(t *testing.T) {
	p := psg.NewPSG()
	test.DemandImplements[sound.Source](t, p)
	test.ExpectFailure(t, p.SetRate(0))
	test.ExpectSuccess(t, p.SetRate(sound.MixRate))
	test.ExpectEquality(t, p.Channels(), 2)
}

func TestSilentByDefault(t *testing.T) {
	p := psg.NewPSG()
	p.SetRate(sound.MixRate)

	dest := make([]int32, 200)
	p.Mix(dest, 100)
	for i, v := range dest {
		test.ExpectEquality(t, v, 0, i)
	}
}

func TestChannelErrors(t *testing.T) {
	p := psg.NewPSG()
	test.ExpectFailure(t, p.SetTone(psg.NumTones, 440))
	test.ExpectFailure(t, p.SetVolume(-1, 15))
	test.ExpectFailure(t, p.SetPan(3, true, true))
	test.ExpectSuccess(t, p.SetTone(0, 440))
}

// a tone at a quarter of the mixing rate toggles every two frames
func TestSquareWave(t *testing.T) {
	p := psg.NewPSG()
	p.SetRate(1000)
	p.SetTone(0, 250)
	p.SetVolume(0, psg.MaxVolume)

	dest := make([]int32, 16)
	p.Mix(dest, 8)

	hi := dest[0]
	test.ExpectInequality(t, hi, 0)
	for i := 0; i < 8; i++ {
		exp := hi
		if (i/2)%2 == 1 {
			exp = -hi
		}
		test.ExpectEquality(t, dest[i*2], exp, i)
		test.ExpectEquality(t, dest[i*2+1], exp, i)
	}
}

func TestMixAdds(t *testing.T) {
	p := psg.NewPSG()
	p.SetRate(1000)
	p.SetTone(0, 250)
	p.SetVolume(0, psg.MaxVolume)
	p.SetPan(0, true, false)

	dest := make([]int32, 4)
	for i := range dest {
		dest[i] = 1
	}
	p.Mix(dest, 2)

	// right channel untouched because of the pan
	test.ExpectEquality(t, dest[1], 1)
	test.ExpectEquality(t, dest[3], 1)
	test.ExpectInequality(t, dest[0], 1)
}

func TestVolumeOrdering(t *testing.T) {
	loud := psg.NewPSG()
	quiet := psg.NewPSG()
	for _, p := range []*psg.PSG{loud, quiet} {
		p.SetRate(1000)
		p.SetTone(0, 250)
	}
	loud.SetVolume(0, 15)
	quiet.SetVolume(0, 20)
	quiet.SetVolume(0, 10)

	a := make([]int32, 2)
	b := make([]int32, 2)
	loud.Mix(a, 1)
	quiet.Mix(b, 1)
	test.ExpectSuccess(t, a[0] > b[0])
	test.ExpectSuccess(t, b[0] > 0)

	// three channels at full volume do not exceed the 16bit range
	test.ExpectSuccess(t, a[0]*3 <= 32767)
}

func TestNoise(t *testing.T) {
	p := psg.NewPSG()
	p.SetRate(sound.MixRate)
	p.SetNoise(8000)
	p.SetNoiseVolume(psg.MaxVolume)

	dest := make([]int32, 2000)
	p.Mix(dest, 1000)

	var pos, neg int
	for i := 0; i < len(dest); i += 2 {
		if dest[i] > 0 {
			pos++
		} else if dest[i] < 0 {
			neg++
		}
	}
	test.ExpectEquality(t, pos+neg, 1000)
	test.ExpectInequality(t, pos, 0)
	test.ExpectInequality(t, neg, 0)

	p.Reset()
	clear(dest)
	p.Mix(dest, 1000)
	test.ExpectEquality(t, dest[0], 0)
}
