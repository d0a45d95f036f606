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

package rhythm

import (
	"math"
	"math/rand/v2"
)

// rate of the synthesised kit
const synthRate = 44100

// Synthesise gives every instrument without sample data a crude synthesised
// sound.
func (r *Rhythm) Synthesise() {
	rnd := rand.New(rand.NewPCG(2608, 88))

	noise := func() float64 {
		return rnd.Float64()*2 - 1
	}

	// generate d seconds of data with f returning a value in the range -1 to
	// 1 for time t
	gen := func(d float64, f func(t float64) float64) []int16 {
		n := int(d * synthRate)
		pcm := make([]int16, n)
		for i := range pcm {
			t := float64(i) / synthRate
			pcm[i] = int16(math.Max(-1, math.Min(1, f(t))) * 24000)
		}
		return pcm
	}

	decay := func(t float64, rate float64) float64 {
		return math.Exp(-t * rate)
	}

	kit := [NumInstruments][]int16{
		BD: gen(0.3, func(t float64) float64 {
			hz := 50 + 100*decay(t, 30)
			return math.Sin(2*math.Pi*hz*t) * decay(t, 10)
		}),
		SD: gen(0.2, func(t float64) float64 {
			return (0.6*noise() + 0.4*math.Sin(2*math.Pi*180*t)) * decay(t, 20)
		}),
		TOP: gen(0.5, func(t float64) float64 {
			return noise() * decay(t, 6) * 0.5
		}),
		HH: gen(0.08, func(t float64) float64 {
			return noise() * decay(t, 50) * 0.6
		}),
		TOM: gen(0.3, func(t float64) float64 {
			hz := 100 + 60*decay(t, 15)
			return math.Sin(2*math.Pi*hz*t) * decay(t, 12)
		}),
		RIM: gen(0.05, func(t float64) float64 {
			return math.Sin(2*math.Pi*1700*t) * decay(t, 80)
		}),
	}

	for i, pcm := range kit {
		if r.Loaded(Instrument(i)) {
			continue // for loop
		}
		_ = r.LoadPCM(Instrument(i), pcm, synthRate)
	}
}
